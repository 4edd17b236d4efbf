package wsbridge

import (
	"time"
)

// Event is a single raw delivery from a message source, before its payload
// has been classified.
type Event struct {
	ID     string    // source-assigned event ID (idempotency key)
	Origin string    // remote address or URL the event arrived from
	Time   time.Time // when the source received the event
	Data   any       // raw payload, shape unknown until classified
}

// Message classifies the event payload. See Classify for the shapes
// accepted and the errors returned for the rest.
func (e Event) Message() (Message, error) {
	return Classify(e.Data)
}
