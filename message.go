package wsbridge

import (
	"bytes"
	"fmt"
)

// Kind identifies which variant a Message holds.
type Kind int

const (
	// KindText is a textual payload, delivered by the source as a string.
	KindText Kind = iota + 1
	// KindBinary is a binary payload, delivered by the source as a byte
	// buffer.
	KindBinary
)

// String returns "text", "binary" or "invalid".
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBinary:
		return "binary"
	default:
		return "invalid"
	}
}

// Message is a classified inbound payload holding exactly one variant,
// either text or binary. The zero Message holds neither and reports an
// invalid Kind.
//
// Message contains a byte slice and is not comparable with ==; compare
// messages with Equal.
type Message struct {
	kind Kind
	text string
	data []byte
}

// Text returns a text Message holding s.
func Text(s string) Message {
	return Message{kind: KindText, text: s}
}

// Binary returns a binary Message holding a copy of p. The message owns the
// copy; the caller keeps ownership of p.
func Binary(p []byte) Message {
	return Message{kind: KindBinary, data: append([]byte(nil), p...)}
}

// Kind reports which variant the message holds.
func (m Message) Kind() Kind { return m.kind }

// Text returns the textual payload, or "" for non-text messages.
func (m Message) Text() string { return m.text }

// Binary returns the binary payload, or nil for non-binary messages. The
// returned slice is the message's backing store and must not be modified.
func (m Message) Binary() []byte { return m.data }

// Bytes returns the payload as bytes regardless of variant: the UTF-8 bytes
// of a text message, or the content of a binary one. The slice returned for
// a binary message is the backing store and must not be modified.
func (m Message) Bytes() []byte {
	if m.kind == KindText {
		return []byte(m.text)
	}
	return m.data
}

// Equal reports whether two messages hold the same variant with the same
// content. A text message never equals a binary one, even when the binary
// content is the UTF-8 encoding of the text.
func (m Message) Equal(o Message) bool {
	if m.kind != o.kind {
		return false
	}
	switch m.kind {
	case KindText:
		return m.text == o.text
	case KindBinary:
		return bytes.Equal(m.data, o.data)
	default:
		return true
	}
}

// String returns a short debug form such as text("hi") or binary(4B).
func (m Message) String() string {
	switch m.kind {
	case KindText:
		return fmt.Sprintf("text(%q)", m.text)
	case KindBinary:
		return fmt.Sprintf("binary(%dB)", len(m.data))
	default:
		return "invalid"
	}
}
