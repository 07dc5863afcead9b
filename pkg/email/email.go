// Package email, yönetici bildirim e-postalarının gönderimi için soyutlama sağlar.
//
// Sender interface'i gönderim sağlayıcısını gizler. Resend API ve SMTP
// (go-mail) implementasyonları vardır. EMAIL_PROVIDER=none ise NewNopSender
// kullanılır ve hiçbir şey gönderilmez.
package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"
)

// Message, gönderilecek tek bir HTML e-posta.
type Message struct {
	To      []string
	Subject string
	HTML    string
	ReplyTo string
}

// Sender, e-posta gönderimi için interface.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type resendSender struct {
	client    *resend.Client
	fromEmail string
}

// NewResendSender, Resend API client'ı ile yeni bir Sender oluşturur.
// fromEmail Resend'de doğrulanmış domain altında olmalıdır.
func NewResendSender(apiKey, fromEmail string) Sender {
	return &resendSender{
		client:    resend.NewClient(apiKey),
		fromEmail: fromEmail,
	}
}

func (s *resendSender) Send(ctx context.Context, msg Message) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Pişi Kahvaltı <%s>", s.fromEmail),
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
		ReplyTo: msg.ReplyTo,
	}

	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send email via resend: %w", err)
	}
	return nil
}

type nopSender struct{}

// NewNopSender, hiçbir şey göndermeyen bir Sender döner.
func NewNopSender() Sender { return nopSender{} }

func (nopSender) Send(context.Context, Message) error { return nil }
