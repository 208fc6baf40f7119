package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"

	"gym-activity-backend/internal/attendance"
	"gym-activity-backend/internal/metrics"
	"gym-activity-backend/internal/notification"
	"gym-activity-backend/internal/store"
	"gym-activity-backend/internal/tasks"
)

// Dependencies are the services the handlers share.
type Dependencies struct {
	Attendance attendance.Store
	Notices    *notification.Channel
	Tasks      *tasks.List
	Store      store.Store
	Metrics    *metrics.Metrics
	WebPush    *webpush.Options // nil when push is disabled
	Location   *time.Location
	FormTTL    time.Duration
}

// Handler holds shared dependencies for API handlers.
type Handler struct {
	attendance attendance.Store
	notices    *notification.Channel
	forms      *FormRegistry
	tasks      *tasks.List
	store      store.Store
	metrics    *metrics.Metrics
	webpush    *webpush.Options
	loc        *time.Location
}

// NewHandler creates a new API handler.
func NewHandler(d Dependencies) *Handler {
	h := &Handler{
		attendance: d.Attendance,
		notices:    d.Notices,
		forms:      NewFormRegistry(d.FormTTL),
		tasks:      d.Tasks,
		store:      d.Store,
		metrics:    d.Metrics,
		webpush:    d.WebPush,
		loc:        d.Location,
	}
	if h.metrics == nil {
		h.metrics = metrics.New()
	}
	if h.notices == nil {
		h.notices = notification.NewChannel(notification.DefaultClearDelay)
	}
	if h.loc == nil {
		h.loc = time.Local
	}
	if h.attendance != nil {
		h.refreshActiveMembers()
	}
	return h
}

// Metrics returns the collectors the handler updates.
func (h *Handler) Metrics() *metrics.Metrics {
	return h.metrics
}

func (h *Handler) refreshActiveMembers() {
	h.metrics.ActiveMembers.Set(float64(h.attendance.ActiveCount()))
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// respondError maps domain errors to status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, attendance.ErrNotFound),
		errors.Is(err, tasks.ErrNotFound),
		errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, attendance.ErrUnknownEquipment):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
