package services

import (
	"context"

	"github.com/akinalp/pisi/models"
	"github.com/akinalp/pisi/pkg/email"
	"github.com/akinalp/pisi/repository"
	"github.com/akinalp/pisi/ws"
)

// FranchiseService, franchise başvurularının iş mantığı.
type FranchiseService interface {
	Create(ctx context.Context, req *models.CreateFranchiseRequest) (*models.FranchiseApplication, error)
	List(ctx context.Context, filter models.ReadFilter) ([]*models.FranchiseApplication, error)
	Get(ctx context.Context, id string) (*models.FranchiseApplication, error)
	MarkRead(ctx context.Context, id string, isRead bool) (*models.FranchiseApplication, error)
	Delete(ctx context.Context, id string) error
	UnreadCount(ctx context.Context) (int, error)
}

type franchiseService struct {
	franchiseRepo repository.FranchiseRepository
	publisher     ws.EventPublisher
	notifier      *email.Notifier
}

// NewFranchiseService, constructor.
func NewFranchiseService(
	franchiseRepo repository.FranchiseRepository,
	publisher ws.EventPublisher,
	notifier *email.Notifier,
) FranchiseService {
	return &franchiseService{
		franchiseRepo: franchiseRepo,
		publisher:     publisher,
		notifier:      notifier,
	}
}

func (s *franchiseService) Create(ctx context.Context, req *models.CreateFranchiseRequest) (*models.FranchiseApplication, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	app := &models.FranchiseApplication{
		FullName:      req.FullName,
		Email:         req.Email,
		Phone:         req.Phone,
		City:          req.City,
		Budget:        req.Budget,
		HasExperience: req.HasExperience,
		Message:       req.Message,
	}
	if err := s.franchiseRepo.Create(ctx, app); err != nil {
		return nil, err
	}

	s.publish(ws.EventInsert, app, nil)

	if s.notifier != nil {
		notice := email.FranchiseNotice{
			FullName:      app.FullName,
			Email:         app.Email,
			Phone:         app.Phone,
			City:          app.City,
			Budget:        deref(app.Budget),
			HasExperience: app.HasExperience,
			Message:       deref(app.Message),
		}
		s.notifier.Go(ctx, func(ctx context.Context) error {
			return s.notifier.NotifyNewFranchise(ctx, notice)
		})
	}

	return app, nil
}

func (s *franchiseService) List(ctx context.Context, filter models.ReadFilter) ([]*models.FranchiseApplication, error) {
	return s.franchiseRepo.List(ctx, filter)
}

func (s *franchiseService) Get(ctx context.Context, id string) (*models.FranchiseApplication, error) {
	return s.franchiseRepo.GetByID(ctx, id)
}

func (s *franchiseService) MarkRead(ctx context.Context, id string, isRead bool) (*models.FranchiseApplication, error) {
	old, err := s.franchiseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if old.IsRead == isRead {
		return old, nil
	}

	if err := s.franchiseRepo.SetRead(ctx, id, isRead); err != nil {
		return nil, err
	}

	updated := *old
	updated.IsRead = isRead
	s.publish(ws.EventUpdate, &updated, old)
	return &updated, nil
}

func (s *franchiseService) Delete(ctx context.Context, id string) error {
	old, err := s.franchiseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.franchiseRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ws.EventDelete, nil, old)
	return nil
}

func (s *franchiseService) UnreadCount(ctx context.Context) (int, error) {
	return s.franchiseRepo.CountUnread(ctx)
}

// publish, olayı yayınlar. nil pointer any'e sarılırsa omitempty çalışmaz.
func (s *franchiseService) publish(eventType string, newApp, oldApp *models.FranchiseApplication) {
	change := ws.TableChange{Table: ws.TableFranchise, EventType: eventType}
	if newApp != nil {
		change.New = newApp
	}
	if oldApp != nil {
		change.Old = oldApp
	}
	s.publisher.PublishTableChange(change)
}
