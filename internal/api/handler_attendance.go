package api

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gym-activity-backend/internal/attendance"
	"gym-activity-backend/internal/notification"
	"gym-activity-backend/internal/parse"
)

type recordResponse struct {
	ID            int64    `json:"id"`
	MemberID      string   `json:"memberId"`
	MemberName    string   `json:"memberName"`
	CheckInTime   string   `json:"checkInTime"`
	CheckOutTime  *string  `json:"checkOutTime"`
	EquipmentUsed []string `json:"equipmentUsed"`
	State         string   `json:"state"`
}

func (h *Handler) toResponse(r attendance.Record) recordResponse {
	resp := recordResponse{
		ID:            r.ID,
		MemberID:      r.MemberID,
		MemberName:    r.MemberName,
		CheckInTime:   parse.Minute(r.CheckInTime.In(h.loc)),
		EquipmentUsed: r.EquipmentUsed,
		State:         string(r.State()),
	}
	if resp.EquipmentUsed == nil {
		resp.EquipmentUsed = []string{}
	}
	if r.CheckOutTime != nil {
		out := parse.Minute(r.CheckOutTime.In(h.loc))
		resp.CheckOutTime = &out
	}
	return resp
}

func (h *Handler) toResponses(records []attendance.Record) []recordResponse {
	out := make([]recordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, h.toResponse(r))
	}
	return out
}

// ListAttendance returns all records newest first, narrowed by ?q= when given.
func (h *Handler) ListAttendance(c *gin.Context) {
	records := attendance.Filter(h.attendance.List(), c.Query("q"))
	c.JSON(http.StatusOK, h.toResponses(records))
}

// GetAttendance returns a single record.
func (h *Handler) GetAttendance(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	rec, err := h.attendance.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.toResponse(rec))
}

// CreateAttendance checks a member in from a complete submission.
func (h *Handler) CreateAttendance(c *gin.Context) {
	var cand attendance.Candidate
	if err := c.ShouldBindJSON(&cand); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if rec, ok := h.checkIn(c, cand); ok {
		c.JSON(http.StatusCreated, h.toResponse(rec))
	}
}

// checkIn validates and stores a candidate. On failure the response has been
// written and ok is false.
func (h *Handler) checkIn(c *gin.Context, cand attendance.Candidate) (attendance.Record, bool) {
	if errs := attendance.Validate(cand); len(errs) > 0 {
		for field := range errs {
			h.metrics.ValidationFailures.WithLabelValues(field).Inc()
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return attendance.Record{}, false
	}

	id, err := h.attendance.Add(cand)
	if err != nil {
		respondError(c, err)
		return attendance.Record{}, false
	}
	rec, err := h.attendance.Get(id)
	if err != nil {
		respondError(c, err)
		return attendance.Record{}, false
	}

	h.metrics.CheckIns.Inc()
	h.refreshActiveMembers()
	h.notices.Announce(notification.MsgCheckedIn)
	log.Printf("Member %s checked in as record %d", rec.MemberID, rec.ID)
	return rec, true
}

// CheckOutAttendance closes a record. Repeating it returns the record unchanged.
func (h *Handler) CheckOutAttendance(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	rec, changed, err := h.attendance.CheckOut(id)
	if err != nil {
		respondError(c, err)
		return
	}

	if changed {
		h.metrics.CheckOuts.Inc()
		h.refreshActiveMembers()
		h.notices.Announce(notification.MsgCheckedOut)
		log.Printf("Record %d checked out after %s", rec.ID, rec.CheckOutTime.Sub(rec.CheckInTime).Round(time.Minute))
	}
	c.JSON(http.StatusOK, h.toResponse(rec))
}
