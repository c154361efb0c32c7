package httpapi

import (
	"net/http"

	"itemtrace-registry-service/internal/ports/inbound"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AnalyticsHandler serves the per-user analytics endpoint
type AnalyticsHandler struct {
	analytics inbound.AnalyticsService
	logger    zerolog.Logger
}
type AnalyticsHandlerParams struct {
	Analytics inbound.AnalyticsService
	Logger    zerolog.Logger
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(params AnalyticsHandlerParams) *AnalyticsHandler {
	return &AnalyticsHandler{
		analytics: params.Analytics,
		logger:    params.Logger.With().Str("component", "analytics_handler").Logger(),
	}
}

// Summarize returns the caller's item analytics summary
func (handler *AnalyticsHandler) Summarize(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	summary, err := handler.analytics.Summarize(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch analytics")
		return
	}

	respond(c, http.StatusOK, summary, "Items analytics fetched successfully.")
}
