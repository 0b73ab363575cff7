package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GetAnalyticsHandler returns the scoring analytics dashboard data
func (api *API) GetAnalyticsHandler(c *gin.Context) {
	dashboardData, err := api.analytics.GetDashboardData()
	if err != nil {
		SendInternalError(c, "analytics retrieval", err)
		return
	}

	c.JSON(http.StatusOK, dashboardData)
}

// HealthCheckHandler provides a simple health check endpoint
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "go-ats-score",
		"version":   api.version,
		"uptime":    time.Since(api.startedAt).Round(time.Second).String(),
		"timestamp": fmt.Sprintf("%d", time.Now().Unix()),
	})
}
