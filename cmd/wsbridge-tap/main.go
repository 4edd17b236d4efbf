package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"

	"github.com/jostberg/wsbridge"
	"github.com/jostberg/wsbridge/internal/config"
	"github.com/jostberg/wsbridge/internal/pump"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	mode, err := pump.ParseMode(cfg.Tap.Mode)
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	pingInterval := time.Duration(cfg.Tap.PingInterval) * time.Second

	// Connect to the websocket peer.
	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}
	conn, _, err := dialer.Dial(cfg.Tap.URL, nil)
	if err != nil {
		log.Fatalf("failed to connect to %s: %v", cfg.Tap.URL, err)
	}
	defer conn.Close()
	log.Printf("tap: connected to %s (mode %s)", cfg.Tap.URL, mode)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := pump.New(conn, mode)
	p.OnMessage(report)

	// The close slot and the pong handler must both be installed before the
	// read loop starts; the connection's handler slots are not synchronized.
	closed := wsbridge.Once(func(n wsbridge.Notifier) { p.OnClose(n) })
	ponged := wsbridge.Once(func(n wsbridge.Notifier) {
		conn.SetPongHandler(func(string) error {
			n()
			return nil
		})
	})

	runErr := make(chan error, 1)
	go func() { runErr <- p.Run(ctx) }()

	// Measure round-trip time to the first pong.
	pingAt := time.Now()
	if err := ping(conn); err != nil {
		log.Printf("tap: ping: %v", err)
	}
	go func() {
		select {
		case <-ponged:
			log.Printf("tap: first pong after %s", time.Since(pingAt).Round(time.Millisecond))
		case <-closed:
		}
	}()

	go pingLoop(ctx, conn, pingInterval)

	// Graceful shutdown.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stop:
		log.Printf("received %s, shutting down", sig)
		cancel()
		<-runErr
	case <-closed:
		log.Printf("tap: connection closed")
		if err := <-runErr; err != nil {
			log.Fatalf("tap: %v", err)
		}
	}
}

// report logs the classification outcome for one inbound event.
func report(ev wsbridge.Event) {
	msg, err := ev.Message()
	switch {
	case err == nil:
		log.Printf("tap: event %s from %s: %s", ev.ID, ev.Origin, summarize(msg))
	case errors.Is(err, wsbridge.ErrUnrecognizedPayload):
		log.Printf("tap: error: dropping event %s: %v", ev.ID, err)
	default:
		log.Printf("tap: dropping event %s: %v", ev.ID, err)
	}
}

// summarize renders a message for the log line, keeping text previews short.
func summarize(msg wsbridge.Message) string {
	switch msg.Kind() {
	case wsbridge.KindText:
		return fmt.Sprintf("text %q", truncate(msg.Text(), 80))
	case wsbridge.KindBinary:
		return fmt.Sprintf("binary %dB", len(msg.Binary()))
	default:
		return "invalid"
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

// pingLoop sends a ping on every tick so idle connections keep producing
// pong events.
func pingLoop(ctx context.Context, conn *websocket.Conn, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := ping(conn); err != nil {
				log.Printf("tap: ping: %v", err)
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func ping(conn *websocket.Conn) error {
	return conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second))
}
