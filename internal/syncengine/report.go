package syncengine

import "github.com/MKhiriev/go-pilot/models"

// Report counts what one database sync did.
type Report struct {
	DB       string
	SyncType models.SyncType
	Slow     bool

	// Cases counts reconciliations per table row; index 0 counts pairs no
	// row applied to.
	Cases   [21]int
	Actions map[Action]int

	Conflicts int
	Failed    int
}

func newReport(db string, t models.SyncType) *Report {
	return &Report{DB: db, SyncType: t, Actions: make(map[Action]int)}
}

func (r *Report) record(d Decision) {
	r.Cases[d.Case]++
	if d.Action != ActionNone {
		r.Actions[d.Action]++
	}
	if d.Conflict {
		r.Conflicts++
	}
}

// Total returns the number of pairs that led to an action.
func (r *Report) Total() int {
	n := 0
	for _, c := range r.Actions {
		n += c
	}
	return n
}
