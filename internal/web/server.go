package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/agusx1211/perlin-noise/internal/render"
	"github.com/agusx1211/perlin-noise/internal/state"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
)

// Server serves a live preview of the current field. The daemon calls
// Update after every regeneration; connected WebSocket clients receive
// the new state as JSON and reload the image.
type Server struct {
	mu       sync.RWMutex
	state    state.State
	png      []byte
	version  int
	clients  map[*websocketClient]bool
	upgrader websocket.Upgrader
}

type websocketClient struct {
	conn   *websocket.Conn
	send   chan []byte
	server *Server
}

// Snapshot is the JSON document served on /api/state and pushed on /ws.
type Snapshot struct {
	state.State
	Version int `json:"version"`
}

func NewServer() *Server {
	return &Server{
		clients: make(map[*websocketClient]bool),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/field.png", s.handleField)
	mux.HandleFunc("/api/state", s.handleState)
	mux.HandleFunc("/ws", s.handleWebSocket)
	return mux
}

func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	log.Printf("[web] server starting on http://0.0.0.0%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// Update stores the rendered field and notifies every client.
func (s *Server) Update(st state.State, img image.Image) error {
	var buf bytes.Buffer
	if err := render.Encode(&buf, render.PNG, img); err != nil {
		return fmt.Errorf("encode preview: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = st
	s.png = buf.Bytes()
	s.version++

	data, err := json.Marshal(s.snapshotLocked())
	if err != nil {
		return err
	}
	for client := range s.clients {
		select {
		case client.send <- data:
		default:
			close(client.send)
			delete(s.clients, client)
		}
	}
	return nil
}

func (s *Server) snapshotLocked() Snapshot {
	return Snapshot{State: s.state, Version: s.version}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexHTML))
}

func (s *Server) handleField(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	data := s.png
	s.mu.RUnlock()

	if data == nil {
		http.Error(w, "no field rendered yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", render.PNG.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	w.Write(data)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	snap := s.snapshotLocked()
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[web] websocket upgrade error: %v", err)
		return
	}

	client := &websocketClient{
		conn:   conn,
		send:   make(chan []byte, 16),
		server: s,
	}

	s.mu.Lock()
	s.clients[client] = true
	initial, err := json.Marshal(s.snapshotLocked())
	if err == nil {
		client.send <- initial
	}
	s.mu.Unlock()

	go client.writePump()
	go client.readPump()
}

// ClientCount returns the number of connected WebSocket clients.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (c *websocketClient) readPump() {
	defer func() {
		c.server.mu.Lock()
		if c.server.clients[c] {
			delete(c.server.clients, c)
			close(c.send)
		}
		c.server.mu.Unlock()
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (c *websocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Perlin Noise</title>
<style>
body { background: #111; color: #ddd; font-family: monospace; margin: 2em; }
img { image-rendering: pixelated; max-width: 100%; border: 1px solid #333; }
</style>
</head>
<body>
<img id="field" src="/field.png" alt="noise field">
<pre id="state"></pre>
<script>
const img = document.getElementById("field");
const pre = document.getElementById("state");
function connect() {
  const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
  ws.onmessage = (ev) => {
    const s = JSON.parse(ev.data);
    pre.textContent = JSON.stringify(s, null, 2);
    img.src = "/field.png?v=" + s.version;
  };
  ws.onclose = () => setTimeout(connect, 2000);
}
connect();
</script>
</body>
</html>
`
