package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"gym-activity-backend/config"
	"gym-activity-backend/internal/attendance"
	"gym-activity-backend/internal/db"
	"gym-activity-backend/internal/notification"
	"gym-activity-backend/internal/store"
	"gym-activity-backend/internal/tasks"
)

// testNow is the clock every test API runs on.
var testNow = time.Date(2024, 1, 15, 10, 45, 30, 0, time.UTC)

type testAPI struct {
	router  *gin.Engine
	handler *Handler
	notices *notification.Channel
	store   store.Store
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestAPI(t *testing.T, pushOptions *webpush.Options) *testAPI {
	t.Helper()

	gormDB, err := db.Init(&config.DatabaseConfig{DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := gormDB.DB()
		sqlDB.Close()
	})
	st := store.NewGormStore(gormDB)

	// Long enough that messages do not clear mid-test.
	notices := notification.NewChannel(time.Minute)

	h := NewHandler(Dependencies{
		Attendance: attendance.NewMemoryStore(
			attendance.WithLocation(time.UTC),
			attendance.WithClock(func() time.Time { return testNow }),
		),
		Notices:  notices,
		Tasks:    tasks.NewList(st),
		Store:    st,
		WebPush:  pushOptions,
		Location: time.UTC,
		FormTTL:  time.Minute,
	})

	return &testAPI{
		router:  NewRouter(&config.Config{}, h),
		handler: h,
		notices: notices,
		store:   st,
	}
}

func (a *testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func validCheckIn(memberID, name string) gin.H {
	return gin.H{
		"memberId":    memberID,
		"memberName":  name,
		"checkInTime": "2024-01-15T09:30",
		"equipment":   []string{"Treadmill"},
	}
}
