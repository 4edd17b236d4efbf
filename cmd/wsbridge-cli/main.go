package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/websocket"

	"github.com/jostberg/wsbridge"
	"github.com/jostberg/wsbridge/internal/config"
	"github.com/jostberg/wsbridge/internal/pump"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "send":
		handleSend(os.Args[2:])
	case "status":
		handleStatus()
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func handleSend(args []string) {
	var url, text, binHex string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--url":
			if i+1 < len(args) {
				url = args[i+1]
				i++
			}
		case "--text":
			if i+1 < len(args) {
				text = args[i+1]
				i++
			}
		case "--binary":
			if i+1 < len(args) {
				binHex = args[i+1]
				i++
			}
		default:
			// Allow positional: send "message"
			if text == "" && binHex == "" {
				text = args[i]
			}
		}
	}

	if text == "" && binHex == "" {
		fmt.Fprintln(os.Stderr, `usage: wsbridge-cli send [--url ws://...] (--text "message" | --binary deadbeef)`)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if url == "" {
		url = cfg.Tap.URL
	}

	msgType := websocket.TextMessage
	payload := []byte(text)
	if binHex != "" {
		payload, err = hex.DecodeString(binHex)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: invalid hex payload: %v\n", err)
			os.Exit(1)
		}
		msgType = websocket.BinaryMessage
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}
	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: connect to %s: %v\n", url, err)
		os.Exit(1)
	}
	defer conn.Close()

	p := pump.New(conn, pump.ModeBuffered)

	// Keep only the first reply.
	events := make(chan wsbridge.Event, 1)
	p.OnMessage(func(ev wsbridge.Event) {
		select {
		case events <- ev:
		default:
		}
	})
	closed := wsbridge.Once(func(n wsbridge.Notifier) { p.OnClose(n) })

	go p.Run(context.Background())

	if err := conn.WriteMessage(msgType, payload); err != nil {
		fmt.Fprintf(os.Stderr, "error: write: %v\n", err)
		os.Exit(1)
	}

	select {
	case ev := <-events:
		msg, err := ev.Message()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(msg)
	case <-closed:
		fmt.Fprintln(os.Stderr, "error: connection closed before a reply arrived")
		os.Exit(1)
	case <-time.After(10 * time.Second):
		fmt.Fprintln(os.Stderr, "error: timed out waiting for a reply")
		os.Exit(1)
	}
}

func handleStatus() {
	statusURL := os.Getenv("WSBRIDGE_STATUS_URL")
	if statusURL == "" {
		statusURL = "http://localhost:18900"
	}

	resp, err := http.Get(statusURL + "/health")
	if err != nil {
		fmt.Fprintf(os.Stderr, "echo server unreachable: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		fmt.Println("echo server: ok")
	} else {
		fmt.Fprintf(os.Stderr, "echo server: unhealthy (status %d)\n", resp.StatusCode)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`wsbridge-cli - one-shot websocket client for the wsbridge tools

Commands:
  send [--url ws://...] --text "message"   Send a text frame, print the classified reply
  send [--url ws://...] --binary deadbeef  Send a binary frame (hex), print the classified reply
  status                                   Check echo server health
  help                                     Show this help

Environment:
  WSBRIDGE_URL          Default websocket URL for send
  WSBRIDGE_STATUS_URL   Echo server base URL for status (default: http://localhost:18900)`)
}
