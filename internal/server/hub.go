package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/shouni/hyperreal-character-studio/pkg/domain"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
	sendBufferSize = 16
)

// StateMessage は WebSocket で配信する状態遷移の通知です。
type StateMessage struct {
	Type  string              `json:"type"`
	State domain.LoadingState `json:"state"`
}

type wsClient struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func (c *wsClient) close() {
	c.once.Do(func() {
		close(c.send)
	})
}

// Hub は WebSocket クライアントへ状態遷移をブロードキャストします。
// 最後に配信した状態を保持し、新しいクライアントには登録と同時にそれを送ります。
type Hub struct {
	upgrader websocket.Upgrader
	mu       sync.RWMutex
	clients  map[*wsClient]struct{}
	last     domain.LoadingState
}

// NewHub は Hub を作成します。
// allowedOrigins が空の場合はすべての Origin を許可します。
func NewHub(initial domain.LoadingState, allowedOrigins []string) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		clients: make(map[*wsClient]struct{}),
		last:    initial,
	}
}

// originChecker は Origin ヘッダーが許可リストに含まれるかを判定する関数を返します。
// Origin ヘッダーのない（ブラウザ以外からの）接続は許可します。
func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return func(r *http.Request) bool { return true }
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[strings.TrimSuffix(o, "/")] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}

// Broadcast は全クライアントに状態を送信します。送信バッファが詰まったクライアントは切断します。
func (h *Hub) Broadcast(state domain.LoadingState) {
	msg, err := json.Marshal(StateMessage{Type: "state", State: state})
	if err != nil {
		slog.Error("状態メッセージのエンコードに失敗しました", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = state
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			slog.Warn("送信バッファが溢れたため WebSocket クライアントを切断します")
			delete(h.clients, c)
			c.close()
		}
	}
}

// ClientCount は接続中のクライアント数を返します。
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeWS は接続をアップグレードし、最初に最新の状態を送信します。
// 登録と最新状態の送信は同じロックの中で行うため、その間の遷移を取りこぼしません。
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("WebSocket へのアップグレードに失敗しました", "error", err)
		return
	}

	c := &wsClient{conn: conn, send: make(chan []byte, sendBufferSize)}

	h.mu.Lock()
	initial, _ := json.Marshal(StateMessage{Type: "state", State: h.last})
	c.send <- initial
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go h.writePump(c)
	go h.readPump(c)
}

func (h *Hub) unregister(c *wsClient) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		c.close()
	}
	h.mu.Unlock()
}

// readPump はクライアントからの切断と pong を検知するためだけに読み込みます。
func (h *Hub) readPump(c *wsClient) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *wsClient) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Close は全クライアントを切断します。
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		c.close()
	}
}
