package realtime

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"forneiro_pix/internal/domain/entities"
	"forneiro_pix/internal/usecase/interfaces"

	"github.com/gorilla/websocket"
)

const writeTimeout = 5 * time.Second

type wsEnvelope struct {
	Type    string                 `json:"type"`
	Payload entities.PaymentUpdate `json:"payload"`
}

// ChargeBroadcaster owns the set of connected websocket subscribers and pushes
// every status change to all of them. No server-side filtering: each client
// matches the event's id or orderId against the charge it is watching.
//
// Constructed once at startup and injected into the usecases; there is no
// package-level connection state.
type ChargeBroadcaster struct {
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

var _ interfaces.IChargeBroadcaster = (*ChargeBroadcaster)(nil)

func NewChargeBroadcaster(allowedOrigins []string) *ChargeBroadcaster {
	return &ChargeBroadcaster{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		conns: map[*websocket.Conn]struct{}{},
	}
}

// Subscribe upgrades the request and registers the connection until it closes.
// Subscribers never send meaningful frames; the read loop only drains pings and
// detects disconnects.
func (b *ChargeBroadcaster) Subscribe(w http.ResponseWriter, r *http.Request) error {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[pix][ws] upgrade failed remote=%s err=%v", r.RemoteAddr, err)
		return err
	}

	b.mu.Lock()
	b.conns[conn] = struct{}{}
	total := len(b.conns)
	b.mu.Unlock()
	log.Printf("[pix][ws] subscriber connected remote=%s total=%d", conn.RemoteAddr(), total)

	go func() {
		defer b.remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
	return nil
}

// Publish sends the update to every subscriber. A failed send is logged, the
// connection dropped, and the remaining subscribers still receive the event.
func (b *ChargeBroadcaster) Publish(update entities.PaymentUpdate) {
	msg, err := json.Marshal(wsEnvelope{Type: "payment_update", Payload: update})
	if err != nil {
		log.Printf("[pix][ws] marshal failed payment_id=%s err=%v", update.ID, err)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for conn := range b.conns {
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			log.Printf("[pix][ws] send failed remote=%s err=%v", conn.RemoteAddr(), err)
			conn.Close()
			delete(b.conns, conn)
		}
	}
	log.Printf("[pix][ws] published payment_id=%s status=%s subscribers=%d", update.ID, update.Status, len(b.conns))
}

func (b *ChargeBroadcaster) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.conns)
}

func (b *ChargeBroadcaster) remove(conn *websocket.Conn) {
	conn.Close()
	b.mu.Lock()
	delete(b.conns, conn)
	b.mu.Unlock()
}

func originChecker(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	set := map[string]struct{}{}
	for _, o := range allowed {
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			// curl/native clients send no Origin header.
			return true
		}
		_, ok := set[origin]
		return ok
	}
}
