// Package api serves the bridge over a local HTTP and WebSocket method channel.
package api

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/dixieflatline76/setwallpaper/config"
	"github.com/dixieflatline76/setwallpaper/pkg/bridge"
	"github.com/dixieflatline76/setwallpaper/util/log"
	"github.com/gorilla/websocket"
	"golang.org/x/net/netutil"
	"golang.org/x/time/rate"
)

// Invoker runs bridge requests. *bridge.Handler implements it.
type Invoker interface {
	Handle(ctx context.Context, req bridge.Request) bridge.Result
}

// Options configures a Server.
type Options struct {
	Addr      string
	RateLimit float64 // invocations per second, 0 for unlimited
	RateBurst int
	// AllowedOrigins lists browser origins, beyond loopback pages, that may call the channel.
	AllowedOrigins []string
}

// DefaultOptions returns the options used by NewServer when none are given.
func DefaultOptions() Options {
	return Options{Addr: config.DefaultListenAddr, RateLimit: 2, RateBurst: 4}
}

// Server is the local REST/WebSocket method channel.
type Server struct {
	httpServer *http.Server
	mux        *http.ServeMux
	upgrader   websocket.Upgrader
	invoker    Invoker
	limiter    *rate.Limiter
	origins    originPolicy

	// WebSocket management
	clients   map[*client]bool
	clientsMu sync.Mutex
}

// client serializes writes to one WebSocket connection.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) writeJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// NewServer creates a new API server.
func NewServer(invoker Invoker, opts Options) *Server {
	if opts.Addr == "" {
		opts.Addr = config.DefaultListenAddr
	}
	s := &Server{
		mux:     http.NewServeMux(),
		origins: newOriginPolicy(opts.AllowedOrigins),
		invoker: invoker,
		limiter: newLimiter(opts.RateLimit, opts.RateBurst),
		clients: make(map[*client]bool),
	}
	s.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return s.origins.allows(r.Header.Get("Origin"))
		},
	}
	s.setupRoutes()
	s.httpServer = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func newLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Limit(rps), max(burst, 1))
}

// SetRateLimit changes the invocation rate for subsequent requests.
func (s *Server) SetRateLimit(rps float64, burst int) {
	if rps <= 0 {
		s.limiter.SetLimit(rate.Inf)
		return
	}
	s.limiter.SetLimit(rate.Limit(rps))
	s.limiter.SetBurst(max(burst, 1))
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/health", s.enableCORS(s.handleHealth))
	s.mux.HandleFunc("/invoke", s.enableCORS(s.handleInvoke))
	s.mux.HandleFunc("/ws", s.handleWebSocket)
}

// enableCORS rejects disallowed origins and adds CORS headers for the rest.
func (s *Server) enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if !s.origins.allows(origin) {
			http.Error(w, "Origin not allowed", http.StatusForbidden)
			return
		}
		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// maxConnections bounds simultaneous local clients.
const maxConnections = 32

// Start serves on the configured address. It blocks until Stop is called.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	defer ln.Close()
	log.Printf("Method channel listening on %s", ln.Addr())
	if err := s.httpServer.Serve(netutil.LimitListener(ln, maxConnections)); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop gracefully shuts the server down and closes WebSocket clients.
func (s *Server) Stop(ctx context.Context) error {
	s.clientsMu.Lock()
	for c := range s.clients {
		c.conn.Close()
		delete(s.clients, c)
	}
	s.clientsMu.Unlock()

	return s.httpServer.Shutdown(ctx)
}

// Event is pushed to every WebSocket client.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// EventWallpaperChanged is broadcast after a wallpaper is applied.
const EventWallpaperChanged = "wallpaper_changed"

// Broadcast sends ev to all connected clients, dropping clients that fail.
func (s *Server) Broadcast(ev Event) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()

	for c := range s.clients {
		if err := c.writeJSON(ev); err != nil {
			log.Printf("Failed to broadcast to client: %v", err)
			c.conn.Close()
			delete(s.clients, c)
		}
	}
}
