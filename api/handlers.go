package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gcbaptista/go-survey-similarity/config"
	"github.com/gcbaptista/go-survey-similarity/services"
)

// API holds dependencies for API handlers, primarily the candidate manager.
type API struct {
	manager     services.CandidateManager
	logger      *zap.Logger
	pageSize    int
	maxPageSize int
}

// NewAPI creates a new API handler structure.
func NewAPI(manager services.CandidateManager, survey config.SurveySettings, logger *zap.Logger) *API {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &API{
		manager:     manager,
		logger:      logger,
		pageSize:    survey.PageSize,
		maxPageSize: survey.MaxPageSize,
	}
}

// SetupRoutes registers the middleware and every survey route on router.
func SetupRoutes(router *gin.Engine, manager services.CandidateManager, settings config.Settings, logger *zap.Logger) {
	apiHandler := NewAPI(manager, settings.Survey, logger)

	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware(apiHandler.logger))
	router.Use(CORSMiddleware())
	if settings.Server.MaxBodyBytes > 0 {
		router.Use(RequestSizeLimitMiddleware(settings.Server.MaxBodyBytes))
	}

	// Health check route
	router.GET("/health", apiHandler.HealthCheckHandler)

	// Submission routes
	router.POST("/submit", apiHandler.SubmitHandler)
	router.GET("/allSurveys", apiHandler.ListSurveysHandler)
	router.GET("/stats", apiHandler.StatsHandler)

	// Similarity routes
	router.POST("/filter", apiHandler.FilterHandler)
	router.GET("/similarity", apiHandler.SimilarityHandler)
	router.GET("/pairs", apiHandler.PairsHandler)
	router.POST("/searchQuery", apiHandler.SearchQueryHandler)

	router.NoRoute(apiHandler.NotFoundHandler)
}

// HealthCheckHandler provides a simple health check endpoint
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "go-survey-similarity",
		"timestamp": fmt.Sprintf("%d", time.Now().Unix()),
	})
}

// NotFoundHandler answers every unregistered route.
func (api *API) NotFoundHandler(c *gin.Context) {
	SendError(c, http.StatusNotFound, ErrorCodeRouteNotFound, "Could not find this route.")
}
