package driver

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/escbadge/minibadge/internal/matrix"
)

// WSPreview serves the frame stream over a websocket so a browser can
// stand in for the hardware.
type WSPreview struct {
	mu        sync.Mutex
	clients   map[*websocket.Conn]bool
	frameID   uint64
	startTime time.Time
	srv       *http.Server
	log       zerolog.Logger
}

type previewFrame struct {
	T       int64       `json:"t"`
	FrameID uint64      `json:"frame_id"`
	Pixels  [9][3]uint8 `json:"pixels"`
}

// NewWSPreview starts listening on addr with /ws and /health routes.
func NewWSPreview(addr string, log zerolog.Logger) *WSPreview {
	p := &WSPreview{
		clients:   map[*websocket.Conn]bool{},
		startTime: time.Now(),
		log:       log,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", p.handleWS)
	mux.HandleFunc("/health", p.handleHealth)
	p.srv = &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := p.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn().Err(err).Str("addr", addr).Msg("preview server stopped")
		}
	}()
	return p
}

func (p *WSPreview) handleWS(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	p.mu.Lock()
	p.clients[conn] = true
	p.mu.Unlock()

	go func() {
		defer func() {
			p.mu.Lock()
			delete(p.clients, conn)
			p.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (p *WSPreview) handleHealth(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	defer p.mu.Unlock()
	resp := map[string]any{
		"frame_id": p.frameID,
		"uptime_s": time.Since(p.startTime).Seconds(),
		"clients":  len(p.clients),
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// Write broadcasts the frame to every connected client.
func (p *WSPreview) Write(f *matrix.Frame) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frameID++
	msg := previewFrame{T: time.Now().UnixNano(), FrameID: p.frameID}
	for i, px := range f {
		msg.Pixels[i] = [3]uint8{px.R, px.G, px.B}
	}
	b, _ := json.Marshal(msg)
	for c := range p.clients {
		c.SetWriteDeadline(time.Now().Add(200 * time.Millisecond))
		if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
			p.log.Debug().Err(err).Msg("write frame")
		}
	}
	return nil
}

func (p *WSPreview) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	return p.srv.Shutdown(ctx)
}
