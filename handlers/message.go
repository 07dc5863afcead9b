package handlers

import (
	"net/http"

	"github.com/akinalp/pisi/models"
	"github.com/akinalp/pisi/pkg"
	"github.com/akinalp/pisi/services"
)

// MessageHandler, iletişim formu ve admin gelen kutusu endpoint'leri.
type MessageHandler struct {
	messageService services.MessageService
}

// NewMessageHandler, constructor.
func NewMessageHandler(messageService services.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// Create godoc
// POST /api/contact
func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMessageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	msg, err := h.messageService.Create(r.Context(), &req)
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusCreated, msg)
}

// List godoc
// GET /api/admin/messages?filter=all|unread
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := models.ParseReadFilter(r.URL.Query().Get("filter"))
	messages, err := h.messageService.List(r.Context(), filter)
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, messages)
}

// Get godoc
// GET /api/admin/messages/{id}
func (h *MessageHandler) Get(w http.ResponseWriter, r *http.Request) {
	msg, err := h.messageService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, msg)
}

// MarkRead godoc
// PATCH /api/admin/messages/{id}/read
// Body: { "is_read": true }
func (h *MessageHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	var req models.MarkReadRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	msg, err := h.messageService.MarkRead(r.Context(), r.PathValue("id"), req.IsRead)
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, msg)
}

// Delete godoc
// DELETE /api/admin/messages/{id}
func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.messageService.Delete(r.Context(), r.PathValue("id")); err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, map[string]string{"message": "message deleted"})
}

// UnreadCount godoc
// GET /api/admin/messages/unread-count
func (h *MessageHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	n, err := h.messageService.UnreadCount(r.Context())
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, map[string]int{"count": n})
}
