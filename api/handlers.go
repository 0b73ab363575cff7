package api

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gcbaptista/go-ats-score/services"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.New("").Funcs(template.FuncMap{
	"percent": formatPercent,
}).ParseFS(templateFS, "templates/*.html"))

// API holds dependencies for API handlers.
type API struct {
	scorer    services.Scorer
	extractor services.TextExtractor
	analytics services.AnalyticsTracker
	logger    *zap.Logger
	version   string
	startedAt time.Time
}

// NewAPI creates a new API handler structure.
func NewAPI(scorer services.Scorer, extractor services.TextExtractor, tracker services.AnalyticsTracker, logger *zap.Logger) *API {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &API{
		scorer:    scorer,
		extractor: extractor,
		analytics: tracker,
		logger:    logger,
		version:   "dev",
		startedAt: time.Now(),
	}
}

// WithVersion sets the version reported by the health check.
func (api *API) WithVersion(version string) *API {
	if version != "" {
		api.version = version
	}
	return api
}

// SetupRoutes defines all the routes of the scoring service.
func SetupRoutes(router *gin.Engine, apiHandler *API) {
	router.SetHTMLTemplate(pageTemplates)

	// Health check route
	router.GET("/health", apiHandler.HealthCheckHandler)

	// Analytics route
	router.GET("/analytics", apiHandler.GetAnalyticsHandler)

	// Browser form
	router.GET("/", apiHandler.IndexPageHandler)
	router.POST("/score", apiHandler.ScoreUploadHandler) // PDF upload, JSON or HTML result

	v1 := router.Group("/api/v1")
	{
		v1.POST("/score", apiHandler.ScoreTextHandler) // plain text scoring
	}
}

// IndexPageHandler renders the upload form.
func (api *API) IndexPageHandler(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{})
}
