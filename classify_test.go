package wsbridge

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestClassify_Binary(t *testing.T) {
	payload := []byte{0x00, 0x01, 0xFF, 0x10}
	msg, err := Classify(payload)
	if err != nil {
		t.Fatalf("got %v, want nil", err)
	}
	if msg.Kind() != KindBinary {
		t.Fatalf("got kind %v, want %v", msg.Kind(), KindBinary)
	}
	if !bytes.Equal(msg.Binary(), payload) {
		t.Fatalf("got %v, want %v", msg.Binary(), payload)
	}
}

func TestClassify_BinaryCopiesInput(t *testing.T) {
	payload := []byte{1, 2, 3}
	msg, err := Classify(payload)
	if err != nil {
		t.Fatal(err)
	}

	// The source may reuse its read buffer immediately after Classify
	// returns; the message must not see the mutation.
	payload[0] = 99

	if msg.Binary()[0] != 1 {
		t.Errorf("mutating the source buffer changed the message: got %v", msg.Binary())
	}
}

func TestClassify_Text(t *testing.T) {
	msg, err := Classify("hello")
	if err != nil {
		t.Fatalf("got %v, want nil", err)
	}
	if msg.Kind() != KindText {
		t.Fatalf("got kind %v, want %v", msg.Kind(), KindText)
	}
	if msg.Text() != "hello" {
		t.Fatalf("got %q, want %q", msg.Text(), "hello")
	}
}

func TestClassify_ReaderUnsupported(t *testing.T) {
	_, err := Classify(bytes.NewReader([]byte("deferred")))
	if !errors.Is(err, ErrUnsupportedPayload) {
		t.Fatalf("got %v, want %v", err, ErrUnsupportedPayload)
	}
	if errors.Is(err, ErrUnrecognizedPayload) {
		t.Error("unsupported payload must not match the unrecognized sentinel")
	}
}

func TestClassify_UnknownShapes(t *testing.T) {
	for _, data := range []any{nil, 42, 3.14, struct{}{}, []string{"x"}, time.Now()} {
		_, err := Classify(data)
		if !errors.Is(err, ErrUnrecognizedPayload) {
			t.Errorf("Classify(%T): got %v, want %v", data, err, ErrUnrecognizedPayload)
		}
		if errors.Is(err, ErrUnsupportedPayload) {
			t.Errorf("Classify(%T): matched the unsupported sentinel", data)
		}
	}
}

func TestClassify_ErrorNamesConcreteType(t *testing.T) {
	_, err := Classify(42)
	if err == nil {
		t.Fatal("expected an error for an int payload")
	}
	if !strings.Contains(err.Error(), "int") {
		t.Errorf("error %q should name the payload type", err.Error())
	}
}

func TestEvent_Message(t *testing.T) {
	ev := Event{
		ID:     "ev-1",
		Origin: "ws://127.0.0.1:18900/ws",
		Time:   time.Now(),
		Data:   "ping",
	}
	msg, err := ev.Message()
	if err != nil {
		t.Fatalf("got %v, want nil", err)
	}
	if !msg.Equal(Text("ping")) {
		t.Errorf("got %v, want %v", msg, Text("ping"))
	}

	ev.Data = struct{ x int }{1}
	if _, err := ev.Message(); !errors.Is(err, ErrUnrecognizedPayload) {
		t.Errorf("got %v, want %v", err, ErrUnrecognizedPayload)
	}
}
