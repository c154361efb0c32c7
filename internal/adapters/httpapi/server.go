package httpapi

import (
	"context"
	"database/sql"
	"net/http"

	"itemtrace-registry-service/internal/config"
	"itemtrace-registry-service/internal/ports/inbound"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Server is the HTTP surface of the registry service
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	logger     zerolog.Logger
}
type ServerParams struct {
	Config      *config.Config
	Items       inbound.ItemService
	Registry    inbound.RegistryService
	Analytics   inbound.AnalyticsService
	Payments    inbound.PaymentService
	DB          *sql.DB
	RedisClient *redis.Client
	Logger      zerolog.Logger
}

// NewServer creates the router and wires all routes
func NewServer(params ServerParams) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(params.Logger))

	itemHandler := NewItemHandler(ItemHandlerParams{Items: params.Items, Logger: params.Logger})
	searchHandler := NewSearchHandler(SearchHandlerParams{Registry: params.Registry, Logger: params.Logger})
	analyticsHandler := NewAnalyticsHandler(AnalyticsHandlerParams{Analytics: params.Analytics, Logger: params.Logger})
	paymentHandler := NewPaymentHandler(PaymentHandlerParams{Payments: params.Payments, Logger: params.Logger})

	authRequired := AuthRequired(params.Config.Auth.JWTSecret)

	router.GET("/healthz", healthHandler(params.DB, params.RedisClient))

	items := router.Group("/items", authRequired)
	{
		items.GET("/", itemHandler.List)
		items.POST("/", itemHandler.Create)
		items.GET("/analytics/", analyticsHandler.Summarize)
		items.GET("/:id/", itemHandler.Get)
		items.PUT("/:id/", itemHandler.Update)
		items.PATCH("/:id/", itemHandler.Update)
		items.DELETE("/:id/", itemHandler.Delete)
	}

	// Public registry lookup, rate limited per client
	router.POST("/registry/search/",
		SearchRateLimit(params.RedisClient, params.Config.RateLimit.SearchPerMinute, params.Logger),
		searchHandler.Search,
	)

	payments := router.Group("/payments", authRequired)
	{
		payments.POST("/initiate/", paymentHandler.Initiate)
		payments.GET("/verify/", paymentHandler.Verify)
	}

	return &Server{
		httpServer: &http.Server{
			Addr:    ":" + params.Config.Server.Port,
			Handler: router,
		},
		router: router,
		logger: params.Logger.With().Str("component", "http_server").Logger(),
	}
}

// Router exposes the underlying engine, used by tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start begins serving requests, blocking until the server stops
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.httpServer.Addr).Msg("Starting HTTP server")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop shuts the server down gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// healthHandler pings the hard dependencies
func healthHandler(database *sql.DB, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if database != nil {
			if err := database.PingContext(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "detail": "database unreachable"})
				return
			}
		}
		if redisClient != nil {
			if err := redisClient.Ping(ctx).Err(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "detail": "redis unreachable"})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
