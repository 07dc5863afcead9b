package email

import (
	"context"
	"strings"
	"testing"

	"github.com/akinalp/pisi/pkg/i18n"
)

type recordingSender struct {
	sent []Message
}

func (r *recordingSender) Send(_ context.Context, msg Message) error {
	r.sent = append(r.sent, msg)
	return nil
}

func TestNotifyNewMessage(t *testing.T) {
	if err := i18n.LoadEmbedded(); err != nil {
		t.Fatalf("LoadEmbedded: %v", err)
	}

	rec := &recordingSender{}
	n := NewNotifier(rec, "owner@pisi.test", "tr")

	err := n.NotifyNewMessage(context.Background(), MessageNotice{
		Name:    "Ayşe",
		Email:   "ayse@example.com",
		Subject: "Rezervasyon",
		Body:    "<script>alert(1)</script>",
	})
	if err != nil {
		t.Fatalf("NotifyNewMessage: %v", err)
	}
	if len(rec.sent) != 1 {
		t.Fatalf("sent = %d, want 1", len(rec.sent))
	}

	msg := rec.sent[0]
	if msg.Subject != "Yeni iletişim mesajı: Rezervasyon" {
		t.Errorf("Subject = %q", msg.Subject)
	}
	if msg.ReplyTo != "ayse@example.com" {
		t.Errorf("ReplyTo = %q", msg.ReplyTo)
	}
	if strings.Contains(msg.HTML, "<script>") {
		t.Error("message body not escaped")
	}
}

func TestNotifySkippedWithoutRecipient(t *testing.T) {
	rec := &recordingSender{}
	n := NewNotifier(rec, "", "en")

	if err := n.NotifyNewFranchise(context.Background(), FranchiseNotice{FullName: "Ali"}); err != nil {
		t.Fatalf("NotifyNewFranchise: %v", err)
	}
	if len(rec.sent) != 0 {
		t.Errorf("sent = %d, want 0", len(rec.sent))
	}
}
