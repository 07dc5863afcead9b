// Package ws, admin paneline gerçek zamanlı tablo değişikliği bildirimlerini sağlar.
//
// Akış:
//  1. Admin /ws?token=JWT ile bağlanır, sunucu "ready" gönderir.
//  2. Client {"op":"subscribe","d":{"tables":["messages"]}} ile tablolara abone olur.
//  3. Service bir satır eklediğinde/güncellediğinde/sildiğinde Hub.PublishTableChange çağırır.
//  4. Hub, event'i sadece o tabloya abone olan client'lara iletir.
//
// Sadece form gönderimleri (messages, franchise_applications) yayınlanır.
// Galeri ve menü değişiklikleri yayınlanmaz, panel bunları elle yeniler.
package ws

// Event, WebSocket üzerinden iletilen bir mesaj.
// Seq her outbound event'te artar, client kayıp event'i seq boşluğundan anlar.
type Event struct {
	Op   string `json:"op"`
	Data any    `json:"d,omitempty"`
	Seq  int64  `json:"seq,omitempty"`
}

// Client → Server operasyonları
const (
	OpHeartbeat   = "heartbeat"
	OpSubscribe   = "subscribe"
	OpUnsubscribe = "unsubscribe"
)

// Server → Client operasyonları
const (
	OpReady        = "ready"
	OpHeartbeatAck = "heartbeat_ack"
	OpSubscribed   = "subscribed"
	OpTableChange  = "table_change"
)

// Yayınlanan tablolar.
const (
	TableMessages  = "messages"
	TableFranchise = "franchise_applications"
)

// Değişiklik türleri.
const (
	EventInsert = "INSERT"
	EventUpdate = "UPDATE"
	EventDelete = "DELETE"
)

// SubscribableTables, client'ların abone olabileceği tablolar.
var SubscribableTables = []string{TableMessages, TableFranchise}

func isSubscribable(table string) bool {
	for _, t := range SubscribableTables {
		if t == table {
			return true
		}
	}
	return false
}

// TableChange, tek bir satır değişikliğinin payload'ı.
// INSERT'te Old, DELETE'te New boştur. UPDATE ikisini de taşır.
type TableChange struct {
	Table     string `json:"table"`
	EventType string `json:"eventType"`
	New       any    `json:"new,omitempty"`
	Old       any    `json:"old,omitempty"`
}

// SubscribeData, subscribe/unsubscribe isteğinin payload'ı.
type SubscribeData struct {
	Tables []string `json:"tables"`
}

// ReadyData, bağlantı kurulunca gönderilen ilk event'in payload'ı.
type ReadyData struct {
	UserID string   `json:"user_id"`
	Tables []string `json:"tables"`
}

// SubscribedData, aboneliğin güncel hali.
type SubscribedData struct {
	Tables []string `json:"tables"`
}
