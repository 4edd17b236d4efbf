package echo

import (
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/net/netutil"
)

// Server is a websocket peer that echoes every text and binary frame back
// to its sender. It serves as a local counterpart for wsbridge-tap.
type Server struct {
	addr     string
	maxConns int
	upgrader websocket.Upgrader
	srv      *http.Server
}

// NewServer creates an echo server.
//   - addr: listen address (e.g. ":18900")
//   - maxConns: cap on concurrently accepted connections
func NewServer(addr string, maxConns int) *Server {
	return &Server{
		addr:     addr,
		maxConns: maxConns,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Start begins listening for websocket clients. It blocks until the server
// is stopped or encounters a fatal listener error.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/health", s.handleHealth)

	s.srv = &http.Server{
		Addr:              s.addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("echo listen: %w", err)
	}
	ln = netutil.LimitListener(ln, s.maxConns)
	log.Printf("echo: listening on %s (max %d conns)", ln.Addr(), s.maxConns)
	return s.srv.Serve(ln)
}

// Close shuts the server down, dropping open connections.
func (s *Server) Close() error {
	if s.srv != nil {
		return s.srv.Close()
	}
	return nil
}

// handleWS upgrades the request and echoes frames until the peer closes.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("echo: upgrade from %s: %v", r.RemoteAddr, err)
		return
	}
	defer conn.Close()

	log.Printf("echo: %s connected", conn.RemoteAddr())

	for {
		typ, buf, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived) {
				log.Printf("echo: %s read: %v", conn.RemoteAddr(), err)
			}
			break
		}
		if err := conn.WriteMessage(typ, buf); err != nil {
			log.Printf("echo: %s write: %v", conn.RemoteAddr(), err)
			break
		}
	}

	log.Printf("echo: %s disconnected", conn.RemoteAddr())
}

// handleHealth returns 200 OK so a running echo server can be probed.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "ok")
}
