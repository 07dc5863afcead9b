package services

import (
	"context"

	"github.com/akinalp/pisi/models"
	"github.com/akinalp/pisi/pkg/email"
	"github.com/akinalp/pisi/repository"
	"github.com/akinalp/pisi/ws"
)

// MessageService, iletişim formu mesajlarının iş mantığı.
//
// Her yazma işleminden sonra "messages" tablosu için bir değişiklik olayı
// yayınlanır; admin paneli gelen kutusunu bu olaylarla canlı tutar.
type MessageService interface {
	Create(ctx context.Context, req *models.CreateMessageRequest) (*models.Message, error)
	List(ctx context.Context, filter models.ReadFilter) ([]*models.Message, error)
	Get(ctx context.Context, id string) (*models.Message, error)
	MarkRead(ctx context.Context, id string, isRead bool) (*models.Message, error)
	Delete(ctx context.Context, id string) error
	UnreadCount(ctx context.Context) (int, error)
}

type messageService struct {
	messageRepo repository.MessageRepository
	publisher   ws.EventPublisher
	notifier    *email.Notifier
}

// NewMessageService, constructor.
func NewMessageService(
	messageRepo repository.MessageRepository,
	publisher ws.EventPublisher,
	notifier *email.Notifier,
) MessageService {
	return &messageService{
		messageRepo: messageRepo,
		publisher:   publisher,
		notifier:    notifier,
	}
}

func (s *messageService) Create(ctx context.Context, req *models.CreateMessageRequest) (*models.Message, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	msg := &models.Message{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	s.publisher.PublishTableChange(ws.TableChange{
		Table:     ws.TableMessages,
		EventType: ws.EventInsert,
		New:       msg,
	})

	if s.notifier != nil {
		notice := email.MessageNotice{
			Name:    msg.Name,
			Email:   msg.Email,
			Phone:   deref(msg.Phone),
			Subject: deref(msg.Subject),
			Body:    msg.Message,
		}
		s.notifier.Go(ctx, func(ctx context.Context) error {
			return s.notifier.NotifyNewMessage(ctx, notice)
		})
	}

	return msg, nil
}

func (s *messageService) List(ctx context.Context, filter models.ReadFilter) ([]*models.Message, error) {
	return s.messageRepo.List(ctx, filter)
}

func (s *messageService) Get(ctx context.Context, id string) (*models.Message, error) {
	return s.messageRepo.GetByID(ctx, id)
}

func (s *messageService) MarkRead(ctx context.Context, id string, isRead bool) (*models.Message, error) {
	old, err := s.messageRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if old.IsRead == isRead {
		return old, nil
	}

	if err := s.messageRepo.SetRead(ctx, id, isRead); err != nil {
		return nil, err
	}

	updated := *old
	updated.IsRead = isRead
	s.publisher.PublishTableChange(ws.TableChange{
		Table:     ws.TableMessages,
		EventType: ws.EventUpdate,
		New:       &updated,
		Old:       old,
	})
	return &updated, nil
}

func (s *messageService) Delete(ctx context.Context, id string) error {
	old, err := s.messageRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.messageRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.publisher.PublishTableChange(ws.TableChange{
		Table:     ws.TableMessages,
		EventType: ws.EventDelete,
		Old:       old,
	})
	return nil
}

func (s *messageService) UnreadCount(ctx context.Context) (int, error) {
	return s.messageRepo.CountUnread(ctx)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
