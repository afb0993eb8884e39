package bridge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
)

const (
	maxPayloadBytes   = 256 << 20
	readHeaderTimeout = 10 * time.Second
)

// Server is the loopback transport between the hosted page and the
// dispatcher. The page is a remote origin without a framework runtime, so
// an injected script reaches the host over HTTP on 127.0.0.1.
type Server struct {
	dispatcher    *Dispatcher
	auth          *TokenAuth
	hub           *Hub
	allowedOrigin string
	upgrader      websocket.Upgrader

	listener net.Listener
	srv      *http.Server
}

// NewServer creates a transport that accepts browser requests from allowedOrigin only
func NewServer(d *Dispatcher, auth *TokenAuth, hub *Hub, allowedOrigin string) *Server {
	s := &Server{
		dispatcher:    d,
		auth:          auth,
		hub:           hub,
		allowedOrigin: allowedOrigin,
	}
	s.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return s.originAllowed(r.Header.Get("Origin"))
		},
	}
	return s
}

// OriginOf returns scheme://host of a URL, the form browsers send in Origin
func OriginOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// originAllowed accepts the configured origin and non-browser callers
func (s *Server) originAllowed(origin string) bool {
	return origin == "" || origin == s.allowedOrigin
}

// Handler returns the HTTP routes of the bridge
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("POST /invoke/{command}", s.auth.Wrap(http.HandlerFunc(s.handleInvoke)))
	mux.Handle("GET /events", s.auth.Wrap(http.HandlerFunc(s.handleEvents)))
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return s.cors(mux)
}

// cors answers preflights and tags responses for the allowed origin
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if !s.originAllowed(origin) {
			writeJSON(w, http.StatusForbidden, map[string]string{"error": "origin not allowed"})
			return
		}
		if origin != "" {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
			h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			h.Add("Vary", "Origin")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleInvoke runs a command
// POST /invoke/{command}
func (s *Server) handleInvoke(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("command")
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	result, err := s.dispatcher.Invoke(r.Context(), name, payload)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, ErrUnknownCommand):
			status = http.StatusNotFound
		case errors.Is(err, ErrInvalidPayload), errors.Is(err, ErrUnsupportedScheme):
			status = http.StatusBadRequest
		}
		log.Printf("[Bridge] %s failed: %v", name, err)
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"result": result})
}

// handleEvents upgrades to a websocket that receives bridge events
// GET /events
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Bridge] Websocket upgrade failed: %v", err)
		return
	}
	s.hub.Add(conn)

	// drain reads so close frames are processed
	go func() {
		defer s.hub.Remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Start listens on an ephemeral loopback port
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return fmt.Errorf("failed to listen for bridge: %w", err)
	}
	s.listener = ln
	s.srv = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		if err := s.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Printf("[Bridge] Server error: %v", err)
		}
	}()
	log.Printf("[Bridge] Listening on %s", s.URL())
	return nil
}

// URL returns the base URL of the running server
func (s *Server) URL() string {
	if s.listener == nil {
		return ""
	}
	return "http://" + s.listener.Addr().String()
}

// Stop shuts the server down and disconnects pages
func (s *Server) Stop(ctx context.Context) error {
	s.hub.CloseAll()
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := sonic.Marshal(v)
	if err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}
