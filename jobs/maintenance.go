package jobs

import (
	"context"

	"github.com/akinalp/pisi/config"
	"github.com/akinalp/pisi/services"
)

// Maintenance, bakım görevlerinin bağımlılıkları.
type Maintenance struct {
	Auth    services.AuthService
	Staging services.StagingService
	Menu    services.MenuService
}

// RegisterMaintenance, süresi dolmuş oturum, bekleyen yükleme temizliği ve
// arama index'inin yeniden kurulması görevlerini kaydeder.
func RegisterMaintenance(s *Scheduler, cfg config.JobsConfig, m Maintenance) error {
	jobs := []struct {
		name string
		spec string
		fn   Func
	}{
		{"session-cleanup", cfg.SessionCleanup, func(ctx context.Context) (int64, error) {
			return m.Auth.PurgeExpiredSessions(ctx)
		}},
		{"staging-cleanup", cfg.StagingCleanup, func(context.Context) (int64, error) {
			n, err := m.Staging.PurgeExpired()
			return int64(n), err
		}},
		{"search-reindex", cfg.SearchReindex, func(ctx context.Context) (int64, error) {
			n, err := m.Menu.Reindex(ctx)
			return int64(n), err
		}},
	}

	for _, j := range jobs {
		if _, err := s.Register(j.name, j.spec, j.fn); err != nil {
			return err
		}
	}
	return nil
}
