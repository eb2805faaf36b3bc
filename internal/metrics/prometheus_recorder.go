package metrics

import (
	"net/http"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "gpilot"

// PrometheusRecorder implements Recorder with prometheus collectors.
type PrometheusRecorder struct {
	once            sync.Once
	reg             *prom.Registry
	sessions        *prom.CounterVec
	conduitDuration *prom.HistogramVec
	records         *prom.CounterVec
	conflicts       *prom.CounterVec
	queueDepth      *prom.GaugeVec
}

// NewPrometheusRecorder builds the collectors and registers them on reg. A
// nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{reg: reg}
	pr.once.Do(func() {
		pr.sessions = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_total",
			Help:      "Handheld sessions by outcome",
		}, []string{"outcome"})
		pr.conduitDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "conduit_duration_seconds",
			Help:      "Duration of one conduit run over one database",
			Buckets:   prom.DefBuckets,
		}, []string{"conduit", "outcome"})
		pr.records = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "records_total",
			Help:      "Records reconciled by action",
		}, []string{"conduit", "action"})
		pr.conflicts = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "conflicts_total",
			Help:      "Records both sides modified",
		}, []string{"conduit"})
		pr.queueDepth = prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "queue_depth",
			Help:      "Pending requests per queue bucket",
		}, []string{"bucket"})
		reg.MustRegister(pr.sessions, pr.conduitDuration, pr.records, pr.conflicts, pr.queueDepth)
	})
	return pr
}

// Registry returns the registry the collectors live on.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.reg }

// Handler serves the registry in the prometheus exposition format.
func (p *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(p.reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

func (p *PrometheusRecorder) IncSession(outcome Outcome) {
	if p == nil || p.sessions == nil {
		return
	}
	p.sessions.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) ObserveConduitDuration(conduit string, d time.Duration, outcome Outcome) {
	if p == nil || p.conduitDuration == nil {
		return
	}
	p.conduitDuration.WithLabelValues(conduit, string(outcome)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) AddRecords(conduit, action string, n int) {
	if p == nil || p.records == nil || n <= 0 {
		return
	}
	p.records.WithLabelValues(conduit, action).Add(float64(n))
}

func (p *PrometheusRecorder) AddConflicts(conduit string, n int) {
	if p == nil || p.conflicts == nil || n <= 0 {
		return
	}
	p.conflicts.WithLabelValues(conduit).Add(float64(n))
}

func (p *PrometheusRecorder) SetQueueDepth(bucket string, n int64) {
	if p == nil || p.queueDepth == nil {
		return
	}
	p.queueDepth.WithLabelValues(bucket).Set(float64(n))
}
