package api

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"sync"

	"github.com/dixieflatline76/setwallpaper/config"
	"github.com/dixieflatline76/setwallpaper/pkg/bridge"
	"github.com/dixieflatline76/setwallpaper/util/log"
	"github.com/google/uuid"
)

// maxRequestBytes bounds an invocation envelope. Images travel by path, never inline.
const maxRequestBytes = 64 << 10

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status":  "running",
		"version": config.AppVersion,
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleInvoke runs one bridge request and writes its tagged result.
func (s *Server) handleInvoke(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	// Browsers send text/plain and form bodies cross-origin without a preflight.
	if mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err != nil || mediaType != "application/json" {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return
	}
	if !s.limiter.Allow() {
		http.Error(w, "Too many requests", http.StatusTooManyRequests)
		return
	}

	var req bridge.Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		var be *bridge.Error
		if errors.As(err, &be) {
			writeResult(w, bridge.Fail(be))
			return
		}
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	writeResult(w, s.invoker.Handle(r.Context(), req))
}

func writeResult(w http.ResponseWriter, res bridge.Result) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		log.Printf("Failed to write result: %v", err)
	}
}

// wsRequest is one method call on the WebSocket channel.
type wsRequest struct {
	ID     string          `json:"id"`
	Method string          `json:"method"`
	Args   json.RawMessage `json:"args,omitempty"`
}

// wsResponse answers the wsRequest with the same ID. Error is set for
// transport failures that never reached the bridge.
type wsResponse struct {
	ID     string         `json:"id"`
	Type   string         `json:"type"`
	Result *bridge.Result `json:"result,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// handleWebSocket upgrades the connection and serves method calls until it closes.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	conn.SetReadLimit(maxRequestBytes)

	c := &client{conn: conn}
	s.clientsMu.Lock()
	s.clients[c] = true
	s.clientsMu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	defer func() {
		cancel()
		wg.Wait()
		s.clientsMu.Lock()
		delete(s.clients, c)
		s.clientsMu.Unlock()
		conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg wsRequest
		if err := json.Unmarshal(data, &msg); err != nil {
			_ = c.writeJSON(wsResponse{Type: "error", Error: "invalid message: " + err.Error()})
			continue
		}
		if msg.ID == "" {
			msg.ID = uuid.NewString()
		}
		if msg.Method == "ping" {
			_ = c.writeJSON(wsResponse{ID: msg.ID, Type: "pong"})
			continue
		}
		if !s.limiter.Allow() {
			_ = c.writeJSON(wsResponse{ID: msg.ID, Type: "error", Error: "too many requests"})
			continue
		}

		wg.Add(1)
		go func(msg wsRequest) {
			defer wg.Done()
			res := s.invoke(ctx, msg)
			if err := c.writeJSON(wsResponse{ID: msg.ID, Type: "result", Result: &res}); err != nil {
				log.Printf("Failed to answer %s: %v", msg.ID, err)
			}
		}(msg)
	}
}

func (s *Server) invoke(ctx context.Context, msg wsRequest) bridge.Result {
	method, berr := bridge.ParseMethod(msg.Method)
	if berr != nil {
		return bridge.Fail(berr)
	}
	return s.invoker.Handle(ctx, bridge.Request{Method: method, Args: msg.Args})
}
