// Package pump adapts a websocket connection into the callback-driven
// source shape the wsbridge core consumes: handlers are registered into
// single slots, fire as frames arrive, and a close handler fires exactly
// once when the read loop ends.
package pump

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/jostberg/wsbridge"
)

// Mode selects the shape inbound frames are delivered in.
type Mode int

const (
	// ModeBuffered reads each frame fully before delivery: text frames
	// arrive as string payloads, binary frames as []byte payloads.
	ModeBuffered Mode = iota + 1
	// ModeStreamed delivers each frame as an undrained io.Reader. The
	// classifier rejects this shape, so streamed mode is only useful for
	// exercising that path.
	ModeStreamed
)

// String returns "buffered", "streamed" or "unknown".
func (m Mode) String() string {
	switch m {
	case ModeBuffered:
		return "buffered"
	case ModeStreamed:
		return "streamed"
	default:
		return "unknown"
	}
}

// ParseMode maps a config mode name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "buffered":
		return ModeBuffered, nil
	case "streamed":
		return ModeStreamed, nil
	default:
		return 0, fmt.Errorf("unknown pump mode %q", s)
	}
}

// Pump drives a single websocket connection and fires registered handlers
// for inbound events. It never reconnects and never retries; the caller
// owns the connection's lifecycle.
type Pump struct {
	conn *websocket.Conn
	mode Mode

	mu        sync.Mutex
	onMessage func(wsbridge.Event)
	onClose   func()

	closeOnce sync.Once
}

// New wraps an established connection. The pump does not close conn on its
// own except to honor context cancellation during Run.
func New(conn *websocket.Conn, mode Mode) *Pump {
	return &Pump{conn: conn, mode: mode}
}

// OnMessage sets the inbound event handler. A nil handler clears the slot;
// events arriving while no handler is set are discarded.
func (p *Pump) OnMessage(fn func(wsbridge.Event)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onMessage = fn
}

// OnClose sets the close handler, fired at most once when the read loop
// ends for any reason. A nil handler clears the slot.
func (p *Pump) OnClose(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onClose = fn
}

// Run reads frames until the connection closes or ctx is canceled, firing
// OnMessage per frame and OnClose once on the way out. It returns nil on a
// clean close from the peer, ctx.Err() on cancellation, and a read error
// otherwise.
func (p *Pump) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			p.conn.Close()
		case <-done:
		}
	}()

	defer p.fireClose()

	for {
		ev, err := p.read()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("read frame: %w", err)
		}
		p.dispatch(ev)
	}
}

// read produces the next raw event in the pump's delivery shape.
func (p *Pump) read() (wsbridge.Event, error) {
	var data any
	switch p.mode {
	case ModeStreamed:
		_, r, err := p.conn.NextReader()
		if err != nil {
			return wsbridge.Event{}, err
		}
		data = r
	default:
		typ, buf, err := p.conn.ReadMessage()
		if err != nil {
			return wsbridge.Event{}, err
		}
		if typ == websocket.TextMessage {
			data = string(buf)
		} else {
			data = buf
		}
	}

	return wsbridge.Event{
		ID:     uuid.NewString(),
		Origin: p.conn.RemoteAddr().String(),
		Time:   time.Now(),
		Data:   data,
	}, nil
}

func (p *Pump) dispatch(ev wsbridge.Event) {
	p.mu.Lock()
	fn := p.onMessage
	p.mu.Unlock()

	if fn == nil {
		log.Printf("pump: no handler for event %s, discarding", ev.ID)
		return
	}
	fn(ev)
}

func (p *Pump) fireClose() {
	p.closeOnce.Do(func() {
		p.mu.Lock()
		fn := p.onClose
		p.mu.Unlock()
		if fn != nil {
			fn()
		}
	})
}
