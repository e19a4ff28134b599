package handlers

import (
	"github.com/gin-gonic/gin"

	"foodshare/internal/dispatch"
	"foodshare/internal/services"
)

// GET /api/officer/donation-analytics
func DonationAnalyticsPage(c *gin.Context) {
	snap, err := services.AnalyticsService{}.Snapshot(c.Request.Context())
	if err != nil {
		respondPageError(c, err)
		return
	}
	respond(c, dispatch.Envelope{Success: true, Fields: dispatch.Fields{"analytics": snap}})
}
