package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"gym-activity-backend/config"
	"gym-activity-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), mw.RequestID())

	if len(cfg.CORS.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  cfg.CORS.AllowedOrigins,
			AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", mw.RequestIDHeader},
			ExposeHeaders: []string{"Content-Length", mw.RequestIDHeader, mw.CacheHeader},
			MaxAge:        12 * time.Hour,
		}))
	}

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/metrics", gin.WrapH(handler.Metrics().Handler()))

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	caching := mw.Cache(cache.New(cacheTTL, 2*cacheTTL), cacheTTL)

	api := r.Group("/api")
	if cfg.Server.RateLimitPerSec > 0 && cfg.Server.RateLimitBurst > 0 {
		api.Use(mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst))
	}
	{
		// The catalog is fixed for the life of the process.
		api.GET("/equipment", caching, handler.GetEquipment)

		api.GET("/attendance", handler.ListAttendance)
		api.GET("/attendance/:id", handler.GetAttendance)
		api.POST("/attendance", handler.CreateAttendance)
		api.POST("/attendance/:id/checkout", handler.CheckOutAttendance)

		api.POST("/checkin-forms", handler.OpenCheckInForm)
		api.POST("/checkin-forms/:form_id/equipment", handler.ToggleFormEquipment)
		api.POST("/checkin-forms/:form_id/submit", handler.SubmitCheckInForm)
		api.DELETE("/checkin-forms/:form_id", handler.CancelCheckInForm)

		api.GET("/notification", handler.GetNotification)

		api.GET("/tasks", handler.ListTasks)
		api.POST("/tasks", handler.CreateTask)
		api.PATCH("/tasks/:id", handler.UpdateTask)
		api.POST("/tasks/:id/toggle", handler.ToggleTask)
		api.DELETE("/tasks/:id", handler.DeleteTask)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
