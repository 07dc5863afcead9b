package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"

	"github.com/akinalp/pisi/pkg/i18n"
)

// MessageNotice, yeni iletişim formu mesajı bildiriminin içeriği.
type MessageNotice struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Body    string
}

// FranchiseNotice, yeni franchise başvurusu bildiriminin içeriği.
type FranchiseNotice struct {
	FullName      string
	Email         string
	Phone         string
	City          string
	Budget        string
	HasExperience bool
	Message       string
}

// Notifier, yöneticiye yeni form gönderimlerini e-posta ile bildirir.
// notifyTo boşsa bildirimler sessizce atlanır.
type Notifier struct {
	sender   Sender
	notifyTo string
	lang     string
}

// NewNotifier, verilen Sender ile yeni bir Notifier oluşturur.
func NewNotifier(sender Sender, notifyTo, lang string) *Notifier {
	return &Notifier{sender: sender, notifyTo: notifyTo, lang: lang}
}

var messageTmpl = template.Must(template.New("message").Parse(`<!DOCTYPE html>
<html><head><meta charset="utf-8"></head>
<body style="margin:0;padding:24px;background-color:#fdf6ec;font-family:Arial,Helvetica,sans-serif;color:#3d2b1f;">
  <h2 style="margin:0 0 16px 0;">{{.Subject}}</h2>
  <p style="margin:0 0 4px 0;"><strong>{{.Name}}</strong> &lt;{{.Email}}&gt;</p>
  {{if .Phone}}<p style="margin:0 0 16px 0;">{{.Phone}}</p>{{end}}
  <p style="white-space:pre-wrap;line-height:1.6;">{{.Body}}</p>
</body></html>`))

var franchiseTmpl = template.Must(template.New("franchise").Parse(`<!DOCTYPE html>
<html><head><meta charset="utf-8"></head>
<body style="margin:0;padding:24px;background-color:#fdf6ec;font-family:Arial,Helvetica,sans-serif;color:#3d2b1f;">
  <h2 style="margin:0 0 16px 0;">{{.FullName}} / {{.City}}</h2>
  <table cellpadding="4" cellspacing="0">
    <tr><td>E-posta</td><td>{{.Email}}</td></tr>
    <tr><td>Telefon</td><td>{{.Phone}}</td></tr>
    {{if .Budget}}<tr><td>Bütçe</td><td>{{.Budget}}</td></tr>{{end}}
    <tr><td>Deneyim</td><td>{{if .HasExperience}}Evet{{else}}Hayır{{end}}</td></tr>
  </table>
  {{if .Message}}<p style="white-space:pre-wrap;line-height:1.6;">{{.Message}}</p>{{end}}
</body></html>`))

// NotifyNewMessage, yeni iletişim mesajı için bildirim gönderir.
func (n *Notifier) NotifyNewMessage(ctx context.Context, notice MessageNotice) error {
	if n.notifyTo == "" {
		return nil
	}

	var body bytes.Buffer
	if err := messageTmpl.Execute(&body, notice); err != nil {
		return fmt.Errorf("failed to render message notification: %w", err)
	}

	subject := i18n.NewLocalizer(n.lang).TWithParams("notify.newMessageSubject", map[string]string{
		"subject": notice.Subject,
	})

	return n.sender.Send(ctx, Message{
		To:      []string{n.notifyTo},
		Subject: subject,
		HTML:    body.String(),
		ReplyTo: notice.Email,
	})
}

// NotifyNewFranchise, yeni franchise başvurusu için bildirim gönderir.
func (n *Notifier) NotifyNewFranchise(ctx context.Context, notice FranchiseNotice) error {
	if n.notifyTo == "" {
		return nil
	}

	var body bytes.Buffer
	if err := franchiseTmpl.Execute(&body, notice); err != nil {
		return fmt.Errorf("failed to render franchise notification: %w", err)
	}

	subject := i18n.NewLocalizer(n.lang).TWithParams("notify.newFranchiseSubject", map[string]string{
		"name": notice.FullName,
		"city": notice.City,
	})

	return n.sender.Send(ctx, Message{
		To:      []string{n.notifyTo},
		Subject: subject,
		HTML:    body.String(),
		ReplyTo: notice.Email,
	})
}

// Go, fn'i arka planda çalıştırır ve hatayı loglar. Form gönderimi
// bildirim sonucunu beklemez.
func (n *Notifier) Go(ctx context.Context, fn func(ctx context.Context) error) {
	go func() {
		if err := fn(context.WithoutCancel(ctx)); err != nil {
			log.Printf("[email] notification failed: %v", err)
		}
	}()
}
