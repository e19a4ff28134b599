package api

import (
	"log"
	stdhttp "net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"foodshare/internal/config"
	h "foodshare/internal/http/handlers"
	"foodshare/internal/http/middleware"
)

func NewRouter(env config.Env) *gin.Engine {
	h.Configure(env)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     env.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"success": false,
			"message": "Route not found.",
			"path":    c.Request.URL.Path,
			"method":  c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		auth := api.Group("/auth")
		auth.POST("/login", h.Login)

		// The whole back office shares one role checkpoint.
		officer := api.Group("/officer",
			middleware.Auth(h.JWTSecret()),
			middleware.RequireRoles("team officer", "admin"),
		)

		officer.GET("/announcements", h.AnnouncementFeed)
		officer.POST("/announcements/actions", h.AnnouncementActions)

		officer.GET("/user-reports", h.UserReportsPage)
		officer.POST("/user-reports/actions", h.UserReportActions)

		officer.GET("/community-feedback", h.FeedbackPage)
		officer.POST("/community-feedback/actions", h.FeedbackActions)

		officer.POST("/donation-management/actions", h.DonationManagementActions)

		officer.POST("/donation-requests/actions", h.DonationRequestActions)

		officer.GET("/expired-donations", h.ExpiredDonationsPage)
		officer.POST("/expired-donations/actions", h.ExpiredDonationActions)

		officer.POST("/reports/actions", h.ReportActions)

		officer.GET("/donation-analytics", h.DonationAnalyticsPage)
	}

	return r
}
