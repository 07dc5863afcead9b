// Package main — Handler katmanı başlatma.
//
// initHandlers, tüm HTTP handler'larını oluşturur.
// Handler'lar "thin" dir — sadece HTTP parse + service call + response write.
package main

import (
	"github.com/akinalp/pisi/config"
	"github.com/akinalp/pisi/database"
	"github.com/akinalp/pisi/handlers"
	"github.com/akinalp/pisi/ws"
)

// Handlers, tüm handler instance'larını tutan container struct.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Gallery   *handlers.GalleryHandler
	Arrange   *handlers.ArrangeHandler
	Staging   *handlers.StagingHandler
	Menu      *handlers.MenuHandler
	Branch    *handlers.BranchHandler
	Message   *handlers.MessageHandler
	Franchise *handlers.FranchiseHandler
	Content   *handlers.ContentHandler
	Stats     *handlers.StatsHandler
	WS        *ws.Handler
}

// initHandlers, tüm handler'ları service ve rate limiter dependency'leri ile oluşturur.
func initHandlers(svcs *Services, limiters *RateLimiters, db *database.DB, hub *ws.Hub, cfg *config.Config) *Handlers {
	return &Handlers{
		Auth:      handlers.NewAuthHandler(svcs.Auth, limiters.Login),
		Gallery:   handlers.NewGalleryHandler(svcs.Gallery, svcs.Upload),
		Arrange:   handlers.NewArrangeHandler(svcs.Arrange),
		Staging:   handlers.NewStagingHandler(svcs.Staging, svcs.Upload),
		Menu:      handlers.NewMenuHandler(svcs.Menu),
		Branch:    handlers.NewBranchHandler(svcs.Branch, svcs.Upload),
		Message:   handlers.NewMessageHandler(svcs.Message),
		Franchise: handlers.NewFranchiseHandler(svcs.Franchise),
		Content:   handlers.NewContentHandler(svcs.About, svcs.Settings, svcs.Home, svcs.Upload),
		Stats:     handlers.NewStatsHandler(db, hub, svcs.Message, svcs.Franchise),
		WS:        ws.NewHandler(hub, svcs.Auth, cfg.Server.CORSOrigins),
	}
}
