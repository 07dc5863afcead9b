package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/akinalp/pisi/database"
	"github.com/akinalp/pisi/models"
	"github.com/akinalp/pisi/pkg/i18n"
	"github.com/akinalp/pisi/pkg/storage"
	"github.com/akinalp/pisi/repository"
	"github.com/akinalp/pisi/services"
	"github.com/akinalp/pisi/ws"
)

func TestMain(m *testing.M) {
	if err := i18n.LoadEmbedded(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type fixture struct {
	t       *testing.T
	mux     *http.ServeMux
	db      *database.DB
	gallery repository.GalleryRepository
}

// newFixture, gerçek service'ler (in-memory SQLite + geçici dizinde local
// bucket) ile admin route'larını kurar. Auth middleware yerine sabit bir
// admin context'e eklenir.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := database.NewInMemory(database.Migrations())
	if err != nil {
		t.Fatalf("NewInMemory: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	bucket, err := storage.NewLocalBucket(t.TempDir(), "/api/uploads")
	if err != nil {
		t.Fatalf("NewLocalBucket: %v", err)
	}

	galleryRepo := repository.NewSQLiteGalleryRepo(db.Conn)
	uploads := services.NewUploadService(bucket, 64<<10, 0)
	arrange := services.NewArrangeService(
		galleryRepo,
		repository.NewSQLiteMenuRepo(db.Conn),
		repository.NewSQLiteMenuItemRepo(db.Conn),
		time.Hour,
	)
	t.Cleanup(arrange.Close)

	gallerySvc := services.NewGalleryService(galleryRepo, uploads, arrange, []string{"Kahvaltı"})
	staging, err := services.NewStagingService(t.TempDir(), time.Hour, uploads, gallerySvc)
	if err != nil {
		t.Fatalf("NewStagingService: %v", err)
	}
	messages := services.NewMessageService(repository.NewSQLiteMessageRepo(db.Conn), ws.NopPublisher{}, nil)
	franchise := services.NewFranchiseService(repository.NewSQLiteFranchiseRepo(db.Conn), ws.NopPublisher{}, nil)

	galleryH := NewGalleryHandler(gallerySvc, uploads)
	arrangeH := NewArrangeHandler(arrange)
	stagingH := NewStagingHandler(staging, uploads)
	messageH := NewMessageHandler(messages)
	statsH := NewStatsHandler(db, ws.NewHub(), messages, franchise)

	admin := func(h http.HandlerFunc) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), UserContextKey, &models.User{ID: "admin-1", Email: "admin@pisi.test"})
			h(w, r.WithContext(ctx))
		})
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", statsH.Health)
	mux.Handle("GET /api/admin/stats", admin(statsH.Dashboard))
	mux.HandleFunc("GET /api/gallery", galleryH.List)
	mux.HandleFunc("POST /api/contact", messageH.Create)
	mux.Handle("GET /api/admin/messages", admin(messageH.List))
	mux.Handle("POST /api/admin/gallery", admin(galleryH.Upload))
	mux.Handle("POST /api/admin/gallery/{id}/hero-section", admin(galleryH.ToggleHeroSection))
	mux.Handle("GET /api/admin/arrange/{collection}", admin(arrangeH.Load))
	mux.Handle("POST /api/admin/arrange/{collection}/move", admin(arrangeH.Move))
	mux.Handle("POST /api/admin/arrange/{collection}/commit", admin(arrangeH.Commit))
	mux.Handle("POST /api/admin/staging", admin(stagingH.Stage))
	mux.Handle("GET /api/admin/staging", admin(stagingH.List))
	mux.Handle("GET /api/admin/staging/{id}/preview", admin(stagingH.Preview))
	mux.Handle("DELETE /api/admin/staging/{id}", admin(stagingH.Cancel))
	mux.Handle("GET /api/admin/no-user", http.HandlerFunc(arrangeH.Load))

	return &fixture{t: t, mux: mux, db: db, gallery: galleryRepo}
}

func (f *fixture) do(req *http.Request) (*httptest.ResponseRecorder, envelope) {
	f.t.Helper()
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			f.t.Fatalf("decode envelope: %v (%s)", err, rec.Body.String())
		}
	}
	return rec, env
}

func (f *fixture) json(method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	f.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			f.t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return f.do(req)
}

func (f *fixture) upload(path string, data []byte, fields map[string]string) (*httptest.ResponseRecorder, envelope) {
	f.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			f.t.Fatalf("WriteField: %v", err)
		}
	}
	part, err := mw.CreateFormFile("file", "photo.png")
	if err != nil {
		f.t.Fatalf("CreateFormFile: %v", err)
	}
	part.Write(data)
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return f.do(req)
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 240, G: 200, B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(env.Data, &v); err != nil {
		t.Fatalf("decode data: %v (%s)", err, env.Data)
	}
	return v
}

func TestHealth(t *testing.T) {
	f := newFixture(t)

	rec, env := f.json(http.MethodGet, "/api/health", nil)
	if rec.Code != http.StatusOK || !env.Success {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestRequireUserWithoutContext(t *testing.T) {
	f := newFixture(t)

	rec, env := f.json(http.MethodGet, "/api/admin/no-user", nil)
	if rec.Code != http.StatusUnauthorized || env.Success {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestGalleryUploadAndHeroLimit(t *testing.T) {
	f := newFixture(t)
	img := pngBytes(t, 8, 8)

	ids := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		rec, env := f.upload("/api/admin/gallery", img, map[string]string{"category": "Kahvaltı"})
		if rec.Code != http.StatusCreated {
			t.Fatalf("upload %d: status = %d (%s)", i, rec.Code, rec.Body.String())
		}
		item := decodeData[models.GalleryItem](t, env)
		if item.ImageURL == "" || !strings.HasPrefix(item.ImageURL, "/api/uploads/") {
			t.Fatalf("image url = %q", item.ImageURL)
		}
		ids = append(ids, item.ID)
	}

	for _, id := range ids[:4] {
		rec, _ := f.json(http.MethodPost, "/api/admin/gallery/"+id+"/hero-section", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("hero-section %s: status = %d (%s)", id, rec.Code, rec.Body.String())
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/api/admin/gallery/"+ids[4]+"/hero-section", nil)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	rec, env := f.do(req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("fifth hero-section: status = %d, want 400", rec.Code)
	}
	if !strings.Contains(env.Error, "4") {
		t.Fatalf("error = %q, want localized limit message", env.Error)
	}

	item, err := f.gallery.GetByID(context.Background(), ids[4])
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if item.HeroSection {
		t.Fatal("rejected toggle was persisted")
	}
}

func TestGalleryUploadRejectsInvalidInput(t *testing.T) {
	f := newFixture(t)

	rec, _ := f.upload("/api/admin/gallery", []byte("not an image at all"), map[string]string{"category": "Kahvaltı"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("text upload: status = %d, want 400", rec.Code)
	}

	rec, _ = f.upload("/api/admin/gallery", bytes.Repeat([]byte{0xff}, 200<<10), map[string]string{"category": "Kahvaltı"})
	if rec.Code < 400 || rec.Code >= 500 {
		t.Fatalf("oversized upload: status = %d, want 4xx", rec.Code)
	}

	rec, _ = f.json(http.MethodPost, "/api/admin/gallery", map[string]string{"category": "Kahvaltı"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("json body: status = %d, want 400", rec.Code)
	}
}

func TestArrangeMoveCommit(t *testing.T) {
	f := newFixture(t)
	img := pngBytes(t, 4, 4)

	var ids []string
	for _, title := range []string{"A", "B"} {
		_, env := f.upload("/api/admin/gallery", img, map[string]string{"category": "Kahvaltı", "title": title})
		ids = append(ids, decodeData[models.GalleryItem](t, env).ID)
	}

	rec, _ := f.json(http.MethodGet, "/api/admin/arrange/gallery", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("load: status = %d (%s)", rec.Code, rec.Body.String())
	}

	rec, env := f.json(http.MethodPost, "/api/admin/arrange/gallery/move", models.MoveRequest{SourceID: ids[1], TargetID: ids[0]})
	if rec.Code != http.StatusOK {
		t.Fatalf("move: status = %d (%s)", rec.Code, rec.Body.String())
	}
	moved := decodeData[struct {
		Dirty bool `json:"dirty"`
	}](t, env)
	if !moved.Dirty {
		t.Fatal("draft should be dirty after move")
	}

	rec, env = f.json(http.MethodPost, "/api/admin/arrange/gallery/commit", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("commit: status = %d (%s)", rec.Code, rec.Body.String())
	}
	committed := decodeData[struct {
		Dirty bool `json:"dirty"`
	}](t, env)
	if committed.Dirty {
		t.Fatal("draft still dirty after commit")
	}

	_, env = f.json(http.MethodGet, "/api/gallery", nil)
	items := decodeData[[]models.GalleryItem](t, env)
	if len(items) != 2 || items[0].ID != ids[1] || items[1].ID != ids[0] {
		t.Fatalf("public order = %+v, want [B, A]", items)
	}
	for i, it := range items {
		if it.Position == nil || *it.Position != i {
			t.Fatalf("item %d position = %v, want %d", i, it.Position, i)
		}
	}

	rec, _ = f.json(http.MethodPost, "/api/admin/arrange/gallery/move", map[string]string{"source_id": ids[0]})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("move without target: status = %d, want 400", rec.Code)
	}
}

func TestStagingPreviewAndCancel(t *testing.T) {
	f := newFixture(t)
	img := pngBytes(t, 6, 6)

	rec, env := f.upload("/api/admin/staging", img, map[string]string{"category": "Kahvaltı"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("stage: status = %d (%s)", rec.Code, rec.Body.String())
	}
	staged := decodeData[models.StagedUpload](t, env)

	rec, _ = f.do(httptest.NewRequest(http.MethodGet, "/api/admin/staging/"+staged.ID+"/preview", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("preview: status = %d", rec.Code)
	}
	if rec.Header().Get("Content-Type") != "image/png" {
		t.Errorf("preview content type = %q", rec.Header().Get("Content-Type"))
	}
	if !bytes.Equal(rec.Body.Bytes(), img) {
		t.Error("preview bytes differ from upload")
	}

	rec, _ = f.json(http.MethodDelete, "/api/admin/staging/"+staged.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("cancel: status = %d (%s)", rec.Code, rec.Body.String())
	}

	rec, _ = f.do(httptest.NewRequest(http.MethodGet, "/api/admin/staging/"+staged.ID+"/preview", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("preview after cancel: status = %d, want 404", rec.Code)
	}

	_, env = f.json(http.MethodGet, "/api/gallery", nil)
	if items := decodeData[[]models.GalleryItem](t, env); len(items) != 0 {
		t.Fatalf("gallery has %d items after cancel, want 0", len(items))
	}
}

func TestContactFormAndDashboard(t *testing.T) {
	f := newFixture(t)

	rec, _ := f.json(http.MethodPost, "/api/contact", map[string]string{"name": "Ayşe", "email": "not-an-email", "message": "Merhaba"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid email: status = %d, want 400", rec.Code)
	}

	rec, _ = f.json(http.MethodPost, "/api/contact", map[string]string{"name": "Ayşe", "email": "ayse@example.com", "message": "Rezervasyon"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("contact: status = %d (%s)", rec.Code, rec.Body.String())
	}

	_, env := f.json(http.MethodGet, "/api/admin/messages", nil)
	if msgs := decodeData[[]models.Message](t, env); len(msgs) != 1 {
		t.Fatalf("messages = %d, want 1", len(msgs))
	}

	_, env = f.json(http.MethodGet, "/api/admin/stats", nil)
	stats := decodeData[DashboardStats](t, env)
	if stats.UnreadMessages != 1 || stats.UnreadFranchise != 0 {
		t.Fatalf("stats = %+v", stats)
	}
}
