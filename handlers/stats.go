package handlers

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/akinalp/pisi/pkg"
	"github.com/akinalp/pisi/services"
)

// Pinger, veritabanı bağlantısını kontrol eder (*database.DB).
type Pinger interface {
	Ping(ctx context.Context) error
}

// ConnectionCounter, açık WebSocket bağlantı sayısını döner (*ws.Hub).
type ConnectionCounter interface {
	ConnectionCount() int
}

// DashboardStats, admin paneli başlığındaki sayaçlar.
type DashboardStats struct {
	UnreadMessages  int `json:"unread_messages"`
	UnreadFranchise int `json:"unread_franchise"`
	LiveConnections int `json:"live_connections"`
}

// StatsHandler, sağlık kontrolü ve admin sayaçları.
type StatsHandler struct {
	db               Pinger
	hub              ConnectionCounter
	messageService   services.MessageService
	franchiseService services.FranchiseService
}

// NewStatsHandler, constructor.
func NewStatsHandler(
	db Pinger,
	hub ConnectionCounter,
	messageService services.MessageService,
	franchiseService services.FranchiseService,
) *StatsHandler {
	return &StatsHandler{
		db:               db,
		hub:              hub,
		messageService:   messageService,
		franchiseService: franchiseService,
	}
}

// Health godoc
// GET /api/health
// Veritabanına ulaşılamıyorsa 503 döner.
func (h *StatsHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		pkg.ErrorWithMessage(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	pkg.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Dashboard godoc
// GET /api/admin/stats
func (h *StatsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	var stats DashboardStats

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		n, err := h.messageService.UnreadCount(ctx)
		stats.UnreadMessages = n
		return err
	})
	g.Go(func() error {
		n, err := h.franchiseService.UnreadCount(ctx)
		stats.UnreadFranchise = n
		return err
	})
	if err := g.Wait(); err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}

	stats.LiveConnections = h.hub.ConnectionCount()
	pkg.JSON(w, http.StatusOK, stats)
}
