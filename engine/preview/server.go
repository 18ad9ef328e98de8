package preview

import (
	"fmt"
	"log"
	"net"
	"net/http"

	"github.com/gorilla/websocket"
)

// Local tooling only, so any origin may connect.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Server exposes a bake output directory over HTTP plus a /ws endpoint
// announcing each finished model, so a browser tab can live-reload
// sprites while a batch runs. It satisfies the pipeline's Notifier.
type Server struct {
	hub  *Hub
	http *http.Server
	ln   net.Listener
	log  *log.Logger
}

// NewServer builds a server over one sprite directory.
func NewServer(dir string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{hub: NewHub(logger), log: logger}

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(dir)))
	mux.HandleFunc("/ws", s.handleWS)
	s.http = &http.Server{Handler: mux}
	return s
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Printf("preview: upgrade failed: %v", err)
		return
	}
	c := s.hub.add(ws)
	c.readPump(s.hub)
}

// Start binds addr and serves in the background. The bound address is
// available from Addr afterwards, so ":0" works in tests.
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("preview listen: %w", err)
	}
	s.ln = ln

	go func() {
		if err := s.http.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.log.Printf("preview: server: %v", err)
		}
	}()
	s.log.Printf("preview: serving on http://%s", ln.Addr())
	return nil
}

// Addr returns the bound address, or "" before Start.
func (s *Server) Addr() string {
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// ModelBaked announces one finished model to all viewers.
func (s *Server) ModelBaked(name string) {
	s.hub.Broadcast(Event{Type: "model", Name: name})
}

// Close stops the HTTP server and disconnects all viewers. Skipping it
// leaves the socket listening.
func (s *Server) Close() error {
	var err error
	if s.ln != nil {
		err = s.http.Close()
		s.ln = nil
	}
	s.hub.CloseAll()
	return err
}
