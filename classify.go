package wsbridge

import (
	"errors"
	"fmt"
	"io"
)

// Classification failures. Both are recoverable per-message conditions:
// callers typically drop the event and keep consuming.
var (
	// ErrUnsupportedPayload marks a payload delivered in a known but
	// unhandled shape: a deferred-read stream rather than a materialized
	// value. Sources configured for buffered delivery never produce it.
	ErrUnsupportedPayload = errors.New("unsupported payload shape")

	// ErrUnrecognizedPayload marks a payload that matches no known shape.
	// A correctly configured source never produces it, so it usually
	// points at the source, not the message.
	ErrUnrecognizedPayload = errors.New("unrecognized payload shape")
)

// Classify inspects the raw payload of an inbound event and returns it as a
// typed Message.
//
// A []byte payload becomes a binary message holding its own copy of the
// bytes; the source may reuse its buffer as soon as Classify returns. A
// string payload becomes a text message.
//
// An io.Reader payload is a deferred-read shape: draining it could block,
// and Classify never blocks. It is rejected with ErrUnsupportedPayload.
// Every other type is rejected with ErrUnrecognizedPayload. Both errors
// name the concrete payload type and match with errors.Is.
func Classify(data any) (Message, error) {
	switch v := data.(type) {
	case []byte:
		return Message{kind: KindBinary, data: append([]byte(nil), v...)}, nil
	case string:
		return Text(v), nil
	case io.Reader:
		return Message{}, fmt.Errorf("%w: %T", ErrUnsupportedPayload, data)
	default:
		return Message{}, fmt.Errorf("%w: %T", ErrUnrecognizedPayload, data)
	}
}
