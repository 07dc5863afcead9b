package services

import (
	"context"
	"errors"
	"testing"

	"github.com/akinalp/pisi/models"
	"github.com/akinalp/pisi/pkg"
	"github.com/akinalp/pisi/repository"
	"github.com/akinalp/pisi/ws"
)

func TestMessageLifecyclePublishesChanges(t *testing.T) {
	db := newTestDB(t)
	pub := &recordingPublisher{}
	svc := NewMessageService(repository.NewSQLiteMessageRepo(db.Conn), pub, nil)
	ctx := context.Background()

	msg, err := svc.Create(ctx, &models.CreateMessageRequest{
		Name:    "  Ayşe ",
		Email:   "ayse@example.com",
		Message: "Rezervasyon yapmak istiyorum",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if msg.Name != "Ayşe" {
		t.Fatalf("name not trimmed: %q", msg.Name)
	}

	if n, _ := svc.UnreadCount(ctx); n != 1 {
		t.Fatalf("unread = %d", n)
	}

	if _, err := svc.MarkRead(ctx, msg.ID, true); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	// Aynı değer tekrar yazılmaz, olay da yayınlanmaz.
	if _, err := svc.MarkRead(ctx, msg.ID, true); err != nil {
		t.Fatal(err)
	}
	if unread, _ := svc.List(ctx, models.ReadFilterUnread); len(unread) != 0 {
		t.Fatalf("unread list = %d", len(unread))
	}

	if err := svc.Delete(ctx, msg.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	events := pub.events()
	want := []string{ws.EventInsert, ws.EventUpdate, ws.EventDelete}
	if len(events) != len(want) {
		t.Fatalf("events = %d, want %d", len(events), len(want))
	}
	for i, e := range events {
		if e.Table != ws.TableMessages || e.EventType != want[i] {
			t.Errorf("event %d = %s/%s", i, e.Table, e.EventType)
		}
	}

	upd := events[1]
	if old := upd.Old.(*models.Message); old.IsRead {
		t.Error("update old row should be unread")
	}
	if updated := upd.New.(*models.Message); !updated.IsRead {
		t.Error("update new row should be read")
	}
	if events[2].New != nil {
		t.Error("delete event must not carry new")
	}
}

func TestMessageValidationBlocksWrite(t *testing.T) {
	db := newTestDB(t)
	pub := &recordingPublisher{}
	svc := NewMessageService(repository.NewSQLiteMessageRepo(db.Conn), pub, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, &models.CreateMessageRequest{Name: "Ali", Email: "not-an-email", Message: "x"})
	if !errors.Is(err, pkg.ErrBadRequest) {
		t.Fatalf("err = %v", err)
	}
	if list, _ := svc.List(ctx, models.ReadFilterAll); len(list) != 0 {
		t.Fatal("invalid message was stored")
	}
	if len(pub.events()) != 0 {
		t.Fatal("invalid message published an event")
	}
}

func TestFranchiseCreateAndMarkRead(t *testing.T) {
	db := newTestDB(t)
	pub := &recordingPublisher{}
	svc := NewFranchiseService(repository.NewSQLiteFranchiseRepo(db.Conn), pub, nil)
	ctx := context.Background()

	app, err := svc.Create(ctx, &models.CreateFranchiseRequest{
		FullName: "Mehmet Yılmaz",
		Email:    "mehmet@example.com",
		Phone:    "+90 555 000 00 00",
		City:     "İzmir",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.MarkRead(ctx, app.ID, true); err != nil {
		t.Fatal(err)
	}
	if n, _ := svc.UnreadCount(ctx); n != 0 {
		t.Fatalf("unread = %d", n)
	}

	events := pub.events()
	if len(events) != 2 || events[0].Table != ws.TableFranchise || events[0].Old != nil {
		t.Fatalf("events = %+v", events)
	}
	if _, err := svc.Get(ctx, "missing"); !errors.Is(err, pkg.ErrNotFound) {
		t.Fatalf("Get missing err = %v", err)
	}
}
