package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gym-activity-backend/internal/attendance"
	"gym-activity-backend/internal/notification"
)

func TestAttendance_CheckInAndOut(t *testing.T) {
	a := newTestAPI(t, nil)

	w := a.do(t, http.MethodPost, "/api/attendance", validCheckIn("M001", "Alice Smith"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[recordResponse](t, w)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "M001", created.MemberID)
	assert.Equal(t, "2024-01-15T09:30", created.CheckInTime)
	assert.Nil(t, created.CheckOutTime)
	assert.Equal(t, []string{"Treadmill"}, created.EquipmentUsed)
	assert.Equal(t, string(attendance.StateActive), created.State)

	assert.Equal(t, notification.MsgCheckedIn, a.notices.Current())
	m := a.handler.Metrics()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CheckIns))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ActiveMembers))

	w = a.do(t, http.MethodPost, "/api/attendance/1/checkout", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	closed := decode[recordResponse](t, w)
	require.NotNil(t, closed.CheckOutTime)
	assert.Equal(t, "2024-01-15T10:45", *closed.CheckOutTime)
	assert.Equal(t, string(attendance.StateClosed), closed.State)
	assert.Equal(t, notification.MsgCheckedOut, a.notices.Current())
	assert.Equal(t, 0.0, testutil.ToFloat64(m.ActiveMembers))

	// Checking out again changes nothing and is not counted.
	a.notices.Announce("")
	w = a.do(t, http.MethodPost, "/api/attendance/1/checkout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	again := decode[recordResponse](t, w)
	assert.Equal(t, closed, again)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CheckOuts))
	assert.Equal(t, "", a.notices.Current())
}

func TestAttendance_ValidationErrors(t *testing.T) {
	a := newTestAPI(t, nil)

	w := a.do(t, http.MethodPost, "/api/attendance", gin.H{"memberId": " ", "checkInTime": "yesterday"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	body := decode[struct {
		Errors map[string]string `json:"errors"`
	}](t, w)
	assert.Equal(t, map[string]string{
		"memberId":    "Member ID is required",
		"memberName":  "Member name is required",
		"checkInTime": "Check-in time is invalid",
	}, body.Errors)

	m := a.handler.Metrics()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ValidationFailures.WithLabelValues("memberId")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.CheckIns))
	assert.Equal(t, "", a.notices.Current())

	w = a.do(t, http.MethodGet, "/api/attendance", nil)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestAttendance_Errors(t *testing.T) {
	a := newTestAPI(t, nil)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"unknown record", http.MethodGet, "/api/attendance/99", nil, http.StatusNotFound},
		{"checkout unknown record", http.MethodPost, "/api/attendance/99/checkout", nil, http.StatusNotFound},
		{"non-numeric id", http.MethodGet, "/api/attendance/abc", nil, http.StatusBadRequest},
		{"malformed body", http.MethodPost, "/api/attendance", "not an object", http.StatusBadRequest},
		{
			"unknown equipment",
			http.MethodPost,
			"/api/attendance",
			gin.H{"memberId": "M1", "memberName": "A", "checkInTime": "2024-01-15T09:30", "equipment": []string{"Hoverboard"}},
			http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := a.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestAttendance_ListAndSearch(t *testing.T) {
	a := newTestAPI(t, nil)

	require.Equal(t, http.StatusCreated, a.do(t, http.MethodPost, "/api/attendance", validCheckIn("M001", "Alice Smith")).Code)
	require.Equal(t, http.StatusCreated, a.do(t, http.MethodPost, "/api/attendance", validCheckIn("M002", "Bob Jones")).Code)

	w := a.do(t, http.MethodGet, "/api/attendance", nil)
	require.Equal(t, http.StatusOK, w.Code)
	all := decode[[]recordResponse](t, w)
	require.Len(t, all, 2)
	assert.Equal(t, "M002", all[0].MemberID, "newest first")

	w = a.do(t, http.MethodGet, "/api/attendance?q=ALICE", nil)
	found := decode[[]recordResponse](t, w)
	require.Len(t, found, 1)
	assert.Equal(t, "M001", found[0].MemberID)

	w = a.do(t, http.MethodGet, "/api/attendance?q=m00", nil)
	assert.Len(t, decode[[]recordResponse](t, w), 2)

	w = a.do(t, http.MethodGet, "/api/attendance/2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Bob Jones", decode[recordResponse](t, w).MemberName)
}
