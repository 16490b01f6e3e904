// Package realtime は新規注文を管理画面へ WebSocket で流す。
package realtime

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait = 5 * time.Second
	// 送信待ちがこれを超えたクライアントは切る
	sendBuffer = 16
)

// Event は配信するメッセージ
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// EventOrderCreated は注文確定時のイベント
const EventOrderCreated = "order.created"

type client struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

// close は送信キューを閉じる。writer が接続を閉じる。
func (c *client) close() {
	c.once.Do(func() { close(c.send) })
}

// writer はキューの中身を順に書く。書き込みは接続ごとにこの goroutine だけ。
func (c *client) writer() {
	defer c.conn.Close()
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	_ = c.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
}

// Hub は接続中のクライアントへブロードキャストする
type Hub struct {
	mu       sync.Mutex
	clients  map[*client]struct{}
	upgrader websocket.Upgrader
}

// NewHub は許可するOriginを受け取る。空なら同一オリジンのみ。
func NewHub(allowedOrigins ...string) *Hub {
	allowed := map[string]bool{}
	for _, o := range allowedOrigins {
		if o != "" {
			allowed[o] = true
		}
	}
	h := &Hub{clients: map[*client]struct{}{}}
	h.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || allowed[origin] {
				return true
			}
			return origin == "http://"+r.Host || origin == "https://"+r.Host
		},
	}
	return h
}

// Serve は接続をアップグレードし、切断まで読み捨てる
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	go c.writer()

	defer h.drop(c)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return nil
		}
	}
}

// Broadcast は各クライアントのキューに積むだけで、書き込みは待たない。
// キューが詰まっているクライアントは切る。
func (h *Hub) Broadcast(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		slog.Error("realtime marshal", "err", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			slog.Warn("realtime client too slow, dropping")
			delete(h.clients, c)
			c.close()
		}
	}
}

// Clients は接続数
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	c.close()
}
