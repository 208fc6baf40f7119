package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gym-activity-backend/internal/attendance"
)

type formResponse struct {
	FormID    string   `json:"formId"`
	Equipment []string `json:"equipment"`
}

type toggleEquipmentRequest struct {
	Name string `json:"name" binding:"required"`
}

type submitFormRequest struct {
	MemberID    string `json:"memberId"`
	MemberName  string `json:"memberName"`
	CheckInTime string `json:"checkInTime"`
}

func (h *Handler) lookupForm(c *gin.Context) (*CheckInForm, bool) {
	form, ok := h.forms.Get(c.Param("form_id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "check-in form not found"})
		return nil, false
	}
	return form, true
}

// OpenCheckInForm starts a new check-in form with nothing selected.
func (h *Handler) OpenCheckInForm(c *gin.Context) {
	form := h.forms.Open()
	c.JSON(http.StatusCreated, formResponse{FormID: form.ID, Equipment: form.Selection.Snapshot()})
}

// ToggleFormEquipment flips one equipment item in a form's selection.
func (h *Handler) ToggleFormEquipment(c *gin.Context) {
	form, ok := h.lookupForm(c)
	if !ok {
		return
	}

	var req toggleEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := form.Selection.Toggle(req.Name); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, formResponse{FormID: form.ID, Equipment: form.Selection.Snapshot()})
}

// SubmitCheckInForm checks a member in with the form's selected equipment.
// A rejected submission keeps the form open so the desk can correct it.
func (h *Handler) SubmitCheckInForm(c *gin.Context) {
	form, ok := h.lookupForm(c)
	if !ok {
		return
	}

	var req submitFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, ok := h.checkIn(c, attendance.Candidate{
		MemberID:    req.MemberID,
		MemberName:  req.MemberName,
		CheckInTime: req.CheckInTime,
		Equipment:   form.Selection.Snapshot(),
	})
	if !ok {
		return
	}

	h.forms.Close(form.ID)
	c.JSON(http.StatusCreated, h.toResponse(rec))
}

// CancelCheckInForm discards a form and its selection.
func (h *Handler) CancelCheckInForm(c *gin.Context) {
	h.forms.Close(c.Param("form_id"))
	c.Status(http.StatusNoContent)
}
