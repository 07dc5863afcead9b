package ws

import (
	"encoding/json"
	"log"
	"sync"
	"sync/atomic"
)

// EventPublisher, service katmanının değişiklik yayınlamak için kullandığı interface.
// Service'ler Hub'ın tamamına değil sadece bu method'a bağımlıdır.
type EventPublisher interface {
	PublishTableChange(change TableChange)
}

// Hub, bağlı tüm admin client'larını yönetir.
//
// register/unregister channel'ları Run goroutine'inde işlenir.
// Yayın sırasında client map'i RLock ile okunur.
type Hub struct {
	clients map[*Client]struct{}
	mu      sync.RWMutex

	register   chan *Client
	unregister chan *Client
	quit       chan struct{}
	quitOnce   sync.Once

	seq atomic.Int64
}

// NewHub, yeni bir Hub oluşturur. Run ayrı bir goroutine'de çağrılmalıdır.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		quit:       make(chan struct{}),
	}
}

// Run, register/unregister isteklerini Shutdown çağrılana kadar işler.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-h.quit:
			return
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = struct{}{}
	log.Printf("[ws] client connected: user=%s (total: %d)", client.userID, len(h.clients))
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	client.closed = true
	close(client.send)
	log.Printf("[ws] client disconnected: user=%s (remaining: %d)", client.userID, len(h.clients))
}

func (h *Hub) registerClient(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.quit:
		return false
	}
}

func (h *Hub) unregisterClient(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.quit:
	}
}

// drop, buffer'ı dolu client'ı Run goroutine'i üzerinden çıkarır.
// Yayın RLock altında yapıldığı için unregister ayrı goroutine'den gönderilir.
func (h *Hub) drop(c *Client) {
	go h.unregisterClient(c)
}

// PublishTableChange, değişikliği o tabloya abone olan tüm client'lara iletir.
func (h *Hub) PublishTableChange(change TableChange) {
	event := Event{Op: OpTableChange, Data: change, Seq: h.seq.Add(1)}

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[ws] failed to marshal table change: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		if !client.isSubscribed(change.Table) {
			continue
		}
		h.trySend(client, data)
	}
}

// enqueue, tek bir client'a data kuyruğa alır.
// Client hub tarafından kapatılmışsa hiçbir şey yapmaz.
func (h *Hub) enqueue(c *Client, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	h.trySend(c, data)
}

// trySend, h.mu tutulurken çağrılmalıdır. Buffer doluysa client düşürülür.
func (h *Hub) trySend(c *Client, data []byte) {
	if c.closed {
		return
	}
	select {
	case c.send <- data:
	default:
		log.Printf("[ws] send buffer full for user %s, dropping connection", c.userID)
		h.drop(c)
	}
}

// ConnectionCount, bağlı client sayısını döner.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Shutdown, Run döngüsünü durdurur ve tüm bağlantıları kapatır.
func (h *Hub) Shutdown() {
	h.quitOnce.Do(func() { close(h.quit) })

	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		client.closed = true
		close(client.send)
	}
	h.clients = make(map[*Client]struct{})
	log.Println("[ws] hub shut down, all connections closed")
}

// NopPublisher, hiçbir şey yayınlamayan EventPublisher.
type NopPublisher struct{}

func (NopPublisher) PublishTableChange(TableChange) {}
