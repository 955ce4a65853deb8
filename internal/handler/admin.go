// Package handler exposes the admin HTTP surface that triggers the
// notification core: post moderation and account-status changes. Every
// notification side effect here is fire-and-forget — the state change
// is authoritative and the response never depends on email delivery.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"blogapp/internal/fanout"
	"blogapp/internal/logger"
	"blogapp/internal/model"
	"blogapp/internal/notify"
	"blogapp/internal/repository"
)

// AdminHandler serves the moderation endpoints.
type AdminHandler struct {
	posts    repository.PostRepository
	users    repository.UserRepository
	attempts repository.DeliveryAttemptRepository
	producer *fanout.Producer
	notifier *notify.Notifier
	log      *slog.Logger
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(
	posts repository.PostRepository,
	users repository.UserRepository,
	attempts repository.DeliveryAttemptRepository,
	producer *fanout.Producer,
	notifier *notify.Notifier,
	log *slog.Logger,
) *AdminHandler {
	return &AdminHandler{
		posts:    posts,
		users:    users,
		attempts: attempts,
		producer: producer,
		notifier: notifier,
		log:      log,
	}
}

// ApprovePost publishes a draft, fans out to the author's followers,
// and notifies the author. Fan-out and notification failures are
// logged only; approval has already been committed.
func (h *AdminHandler) ApprovePost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	post, err := h.posts.FindByID(r.Context(), id)
	if err != nil {
		h.postError(w, id, err)
		return
	}

	if err := h.posts.SetDraft(r.Context(), id, false); err != nil {
		h.postError(w, id, err)
		return
	}

	emailCount := 0
	if n, err := h.producer.EnqueueFanOut(r.Context(), post.ID, post.UserID); err != nil {
		h.log.Error("fan-out failed after approval",
			logger.Component("handler"),
			logger.PostID(post.ID),
			logger.Error(err))
	} else {
		emailCount = n
	}

	h.notifier.Notify(r.Context(), model.EventPostApproved, post.UserID, &model.PostRef{ID: post.ID})

	respondJSON(w, http.StatusOK, map[string]any{
		"message":    "post approved and published",
		"emailCount": emailCount,
	})
}

// UnpublishPost moves a published post back to draft and notifies the
// author.
func (h *AdminHandler) UnpublishPost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	post, err := h.posts.FindByID(r.Context(), id)
	if err != nil {
		h.postError(w, id, err)
		return
	}

	if err := h.posts.SetDraft(r.Context(), id, true); err != nil {
		h.postError(w, id, err)
		return
	}

	h.notifier.Notify(r.Context(), model.EventPostUnpublished, post.UserID, &model.PostRef{ID: post.ID})

	respondJSON(w, http.StatusOK, map[string]string{"message": "post moved back to draft"})
}

// DeletePost removes a post permanently. The title is captured before
// the delete so the author notification can still render it.
func (h *AdminHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	post, err := h.posts.FindByID(r.Context(), id)
	if err != nil {
		h.postError(w, id, err)
		return
	}
	snapshot := &model.PostRef{ID: post.ID, Title: post.Title}
	authorID := post.UserID

	if err := h.posts.Delete(r.Context(), id); err != nil {
		h.postError(w, id, err)
		return
	}

	h.notifier.Notify(r.Context(), model.EventPostDeleted, authorID, snapshot)

	respondJSON(w, http.StatusOK, map[string]string{"message": "post deleted"})
}

type statusUpdateRequest struct {
	Status model.UserStatus `json:"status"`
}

// UpdateUserStatus applies an Active/Suspended/Banned transition and
// sends the matching account-state notification.
func (h *AdminHandler) UpdateUserStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.Status.Valid() {
		respondError(w, http.StatusBadRequest, "invalid status")
		return
	}

	if err := h.users.UpdateStatus(r.Context(), id, req.Status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "user not found")
			return
		}
		h.log.Error("status update failed",
			logger.Component("handler"),
			logger.UserID(id),
			logger.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to update user status")
		return
	}

	switch req.Status {
	case model.UserStatusBanned:
		h.notifier.Notify(r.Context(), model.EventUserBanned, id, nil)
	case model.UserStatusSuspended:
		h.notifier.Notify(r.Context(), model.EventUserSuspended, id, nil)
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "user status updated"})
}

// ListDeliveryAttempts exposes the append-only delivery audit trail.
func (h *AdminHandler) ListDeliveryAttempts(w http.ResponseWriter, r *http.Request) {
	offset := queryInt(r, "offset", 0)
	limit := queryInt(r, "limit", 50)
	if limit > 200 {
		limit = 200
	}

	attempts, err := h.attempts.List(r.Context(), offset, limit)
	if err != nil {
		h.log.Error("failed to list delivery attempts",
			logger.Component("handler"), logger.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to list delivery attempts")
		return
	}

	respondJSON(w, http.StatusOK, attempts)
}

func (h *AdminHandler) postError(w http.ResponseWriter, id int, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(w, http.StatusNotFound, "post not found")
		return
	}
	h.log.Error("post operation failed",
		logger.Component("handler"),
		logger.PostID(id),
		logger.Error(err))
	respondError(w, http.StatusInternalServerError, "operation failed")
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
