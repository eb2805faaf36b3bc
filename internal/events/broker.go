package events

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/MKhiriev/go-pilot/internal/logger"
)

const (
	brokerBuffer = 256
	writeTimeout = 5 * time.Second
)

// Broker fans events out to websocket subscribers. It implements Sink and
// http.Handler; mount it on the route clients subscribe to.
type Broker struct {
	logger *logger.Logger

	clients   map[*websocket.Conn]bool
	clientsMu sync.RWMutex

	broadcast chan Event
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// NewBroker starts the broadcast loop. Close stops it.
func NewBroker(log *logger.Logger) *Broker {
	ctx, cancel := context.WithCancel(context.Background())
	b := &Broker{
		logger:    log,
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan Event, brokerBuffer),
		ctx:       ctx,
		cancel:    cancel,
	}
	b.wg.Add(1)
	go b.broadcastLoop()
	return b
}

// Publish queues ev for every subscriber. When the queue is full the event
// is dropped.
func (b *Broker) Publish(_ context.Context, ev Event) {
	if ev.Time.IsZero() {
		ev.Time = time.Now().UTC()
	}
	select {
	case b.broadcast <- ev:
	case <-b.ctx.Done():
	default:
		b.logger.Warn().Str("func", "Broker.Publish").Str("event", string(ev.Type)).Msg("broadcast queue full, dropping event")
	}
}

func (b *Broker) broadcastLoop() {
	defer b.wg.Done()

	for {
		select {
		case <-b.ctx.Done():
			return
		case ev := <-b.broadcast:
			data, err := json.Marshal(ev)
			if err != nil {
				b.logger.Err(err).Str("func", "Broker.broadcastLoop").Msg("failed to marshal event")
				continue
			}

			b.clientsMu.RLock()
			clients := make([]*websocket.Conn, 0, len(b.clients))
			for conn := range b.clients {
				clients = append(clients, conn)
			}
			b.clientsMu.RUnlock()

			for _, conn := range clients {
				ctx, cancel := context.WithTimeout(b.ctx, writeTimeout)
				err := conn.Write(ctx, websocket.MessageText, data)
				cancel()
				if err != nil {
					b.logger.Debug().Err(err).Str("func", "Broker.broadcastLoop").Msg("failed to send to subscriber")
					b.removeClient(conn)
				}
			}
		}
	}
}

// ServeHTTP upgrades the request to a websocket and subscribes it.
func (b *Broker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		b.logger.Warn().Err(err).Str("func", "Broker.ServeHTTP").Msg("websocket upgrade failed")
		return
	}

	b.clientsMu.Lock()
	b.clients[conn] = true
	count := len(b.clients)
	b.clientsMu.Unlock()

	b.logger.Info().Str("func", "Broker.ServeHTTP").Int("subscribers", count).Msg("event subscriber connected")

	b.readLoop(conn)
}

// readLoop holds the connection until the client goes away. Client frames
// are ignored.
func (b *Broker) readLoop(conn *websocket.Conn) {
	defer b.removeClient(conn)

	for {
		if _, _, err := conn.Read(b.ctx); err != nil {
			return
		}
	}
}

func (b *Broker) removeClient(conn *websocket.Conn) {
	b.clientsMu.Lock()
	if _, ok := b.clients[conn]; !ok {
		b.clientsMu.Unlock()
		return
	}
	delete(b.clients, conn)
	count := len(b.clients)
	b.clientsMu.Unlock()

	_ = conn.Close(websocket.StatusNormalClosure, "")
	b.logger.Info().Str("func", "Broker.removeClient").Int("subscribers", count).Msg("event subscriber disconnected")
}

// Subscribers returns the number of connected clients.
func (b *Broker) Subscribers() int {
	b.clientsMu.RLock()
	defer b.clientsMu.RUnlock()
	return len(b.clients)
}

// Close disconnects every subscriber and stops the broadcast loop.
func (b *Broker) Close() error {
	b.cancel()
	b.wg.Wait()

	b.clientsMu.Lock()
	for conn := range b.clients {
		_ = conn.Close(websocket.StatusGoingAway, "daemon shutting down")
		delete(b.clients, conn)
	}
	b.clientsMu.Unlock()
	return nil
}
