package ws

import (
	"encoding/json"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// writeWait, tek bir yazma için izin verilen süre.
	writeWait = 10 * time.Second

	// pongWait, client'tan heartbeat ya da pong beklenen en uzun süre.
	pongWait = 90 * time.Second

	// pingPeriod, sunucunun ping frame'i gönderme aralığı. pongWait'ten kısa olmalı.
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 4096
	sendBufferSize = 256
)

// Client, tek bir admin WebSocket bağlantısı.
// ReadPump ve WritePump ayrı goroutine'lerde çalışır.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	userID string
	send   chan []byte
	mu     sync.Mutex // conn yazmalarını korur

	// closed, send kapatıldığında true olur. hub.mu ile korunur.
	closed bool

	subMu  sync.RWMutex
	tables map[string]bool
}

func newClient(hub *Hub, conn *websocket.Conn, userID string) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		userID: userID,
		send:   make(chan []byte, sendBufferSize),
		tables: make(map[string]bool),
	}
}

func (c *Client) isSubscribed(table string) bool {
	c.subMu.RLock()
	defer c.subMu.RUnlock()
	return c.tables[table]
}

// subscribe, geçerli tabloları ekler ya da çıkarır ve güncel listeyi döner.
// Bilinmeyen tablo adları yok sayılır.
func (c *Client) subscribe(tables []string, on bool) []string {
	c.subMu.Lock()
	defer c.subMu.Unlock()

	for _, t := range tables {
		if !isSubscribable(t) {
			log.Printf("[ws] user %s tried to subscribe to unknown table %q", c.userID, t)
			continue
		}
		if on {
			c.tables[t] = true
		} else {
			delete(c.tables, t)
		}
	}

	current := make([]string, 0, len(c.tables))
	for t := range c.tables {
		current = append(current, t)
	}
	sort.Strings(current)
	return current
}

// ReadPump, bağlantıdan gelen mesajları bağlantı kapanana kadar okur.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregisterClient(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("[ws] failed to set read deadline for user %s: %v", c.userID, err)
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[ws] unexpected close for user %s: %v", c.userID, err)
			}
			return
		}

		var event Event
		if err := json.Unmarshal(raw, &event); err != nil {
			log.Printf("[ws] invalid message from user %s: %v", c.userID, err)
			continue
		}

		c.handleEvent(event)
	}
}

func (c *Client) handleEvent(event Event) {
	switch event.Op {
	case OpHeartbeat:
		if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("[ws] failed to set read deadline for user %s: %v", c.userID, err)
			return
		}
		c.sendEvent(Event{Op: OpHeartbeatAck})

	case OpSubscribe, OpUnsubscribe:
		var data SubscribeData
		if !decodeData(event.Data, &data) {
			log.Printf("[ws] invalid %s payload from user %s", event.Op, c.userID)
			return
		}
		tables := c.subscribe(data.Tables, event.Op == OpSubscribe)
		c.sendEvent(Event{Op: OpSubscribed, Data: SubscribedData{Tables: tables}})

	default:
		log.Printf("[ws] unknown op from user %s: %s", c.userID, event.Op)
	}
}

// decodeData, Event.Data'yı (any) hedef struct'a çevirir.
func decodeData(data any, dst any) bool {
	raw, err := json.Marshal(data)
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

// sendEvent, client'a tek bir event kuyruğa alır. Buffer doluysa client düşürülür.
// Hub client'ı kapattıktan sonra gelen cevaplar sessizce atılır.
func (c *Client) sendEvent(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[ws] failed to marshal event for user %s: %v", c.userID, err)
		return
	}
	c.hub.enqueue(c, data)
}

// WritePump, send channel'ındaki mesajları bağlantıya yazar ve periyodik ping gönderir.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				c.writeMessage(websocket.CloseMessage, nil)
				return
			}
			if err := c.writeMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			if err := c.writeMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) writeMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(messageType, data)
}
