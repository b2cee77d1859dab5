package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jambidev/barokah/internal/bookings"
	"github.com/jambidev/barokah/internal/httpx"
	"github.com/jambidev/barokah/internal/middleware"
	"github.com/jambidev/barokah/internal/transport"
	"github.com/jambidev/barokah/internal/validation"
)

type Handler struct {
	controller *Controller
	val        *validation.Validator
	log        *slog.Logger
}

func NewHandler(controller *Controller, val *validation.Validator, log *slog.Logger) *Handler {
	return &Handler{
		controller: controller,
		val:        val,
		log:        log,
	}
}

// Overview serves the overview tab: aggregates plus notifications, all from
// the in-memory snapshot.
func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.controller.EnsureLoaded(ctx); err != nil {
		log.Error("dashboard overview: load failed", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadGateway, "upstream data unavailable", nil)
		return
	}

	snap := h.controller.Snapshot()
	log.Info("dashboard overview: ok", slog.Int("bookings", len(snap.Bookings)))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"stats":         h.controller.Stats(),
		"loadedAt":      snap.LoadedAt,
		"notifications": h.controller.Notifications(),
	})
}

// Snapshot serves the full consistent view of all four collections.
func (h *Handler) Snapshot(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.controller.EnsureLoaded(ctx); err != nil {
		log.Error("dashboard snapshot: load failed", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadGateway, "upstream data unavailable", nil)
		return
	}

	transport.WriteJSON(w, http.StatusOK, h.controller.Snapshot())
}

// Bookings serves the bookings tab with the snapshot-side search and status
// filter applied.
func (h *Handler) Bookings(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.controller.EnsureLoaded(ctx); err != nil {
		log.Error("dashboard bookings: load failed", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadGateway, "upstream data unavailable", nil)
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	status := strings.TrimSpace(r.URL.Query().Get("status"))
	items := h.controller.FilterBookings(query, status)

	log.Info("dashboard bookings: ok", slog.Int("count", len(items)))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"items": items,
		"total": len(items),
	})
}

// Refresh forces an immediate reload outside the polling cadence.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.controller.LoadAll(ctx); err != nil {
		log.Error("dashboard refresh: load failed", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadGateway, "upstream data unavailable", nil)
		return
	}

	log.Info("dashboard refresh: ok")
	transport.WriteJSON(w, http.StatusOK, h.controller.Snapshot())
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		log.Warn("dashboard status update: missing id")
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	var req bookings.StatusRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("dashboard status update: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		log.Warn("dashboard status update: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.controller.UpdateStatus(ctx, id, req.Status); err != nil {
		h.writeMutationError(w, log, "dashboard status update", id, err)
		return
	}

	log.Info("dashboard status update: ok", slog.String("booking_id", id), slog.String("status", req.Status))
	transport.WriteJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}

func (h *Handler) AssignTechnician(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		log.Warn("dashboard assign technician: missing id")
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	var req bookings.AssignRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("dashboard assign technician: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		log.Warn("dashboard assign technician: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.controller.AssignTechnician(ctx, id, req.TechnicianID); err != nil {
		h.writeMutationError(w, log, "dashboard assign technician", id, err)
		return
	}

	log.Info("dashboard assign technician: ok", slog.String("booking_id", id), slog.String("technician_id", req.TechnicianID))
	transport.WriteJSON(w, http.StatusOK, map[string]string{"status": "assigned"})
}

func (h *Handler) UpdateCost(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		log.Warn("dashboard cost update: missing id")
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	var req bookings.CostRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("dashboard cost update: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		log.Warn("dashboard cost update: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.controller.UpdateActualCost(ctx, id, req.ActualCost); err != nil {
		h.writeMutationError(w, log, "dashboard cost update", id, err)
		return
	}

	log.Info("dashboard cost update: ok", slog.String("booking_id", id))
	transport.WriteJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// Notifications serves the current visible notifications, most recent first.
func (h *Handler) Notifications(w http.ResponseWriter, r *http.Request) {
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"items": h.controller.Notifications(),
	})
}

// DismissNotification is idempotent; dismissing an already-expired id is ok.
func (h *Handler) DismissNotification(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}
	h.controller.DismissNotification(id)
	transport.WriteJSON(w, http.StatusOK, map[string]string{"status": "dismissed"})
}

func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}
	if !h.controller.MarkNotificationRead(id) {
		transport.WriteError(w, http.StatusNotFound, "notification not found", nil)
		return
	}
	transport.WriteJSON(w, http.StatusOK, map[string]string{"status": "read"})
}

func (h *Handler) writeMutationError(w http.ResponseWriter, log *slog.Logger, op, id string, err error) {
	if errors.Is(err, bookings.ErrNotFound) {
		log.Warn(op+": booking not found", slog.String("booking_id", id))
		transport.WriteError(w, http.StatusNotFound, "booking not found", nil)
		return
	}
	log.Error(op+": database error", slog.String("booking_id", id), slog.String("error", err.Error()))
	transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
}

func (h *Handler) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return h.log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return h.log.With(slog.String("request_id", id))
	}
	return h.log
}
