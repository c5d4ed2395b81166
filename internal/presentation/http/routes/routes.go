package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/tulipbilling/invoicing-api/internal/config"
	"github.com/tulipbilling/invoicing-api/internal/presentation/http/handler"
	"github.com/tulipbilling/invoicing-api/internal/presentation/http/middleware"
	"github.com/tulipbilling/invoicing-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Invoice   *handler.InvoiceHandler
	Dashboard *handler.DashboardHandler
	Export    *handler.ExportHandler
	User      *handler.UserHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
	Logger     *logrus.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-account rate limiter keeps the shared ledger quota fair.
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)

	// Invoices
	invoices := protected.Group("/invoices")
	{
		// Any billing counter can create; browsing and mutation are admin work
		invoices.POST("", h.Invoice.Create)
		invoices.GET("", middleware.RequireAdmin(), h.Invoice.List)
		invoices.GET("/:number", middleware.RequireAdmin(), h.Invoice.Get)
		invoices.GET("/:number/pdf", middleware.RequireAdmin(), h.Invoice.PDF)
		invoices.POST("/:number/cancel", middleware.RequireAdmin(), h.Invoice.Cancel)
		invoices.POST("/:number/restore", middleware.RequireAdmin(), h.Invoice.Restore)
	}

	// Dashboard and exports (Admin)
	protected.GET("/dashboard", middleware.RequireAdmin(), h.Dashboard.Get)
	protected.GET("/exports/invoices", middleware.RequireAdmin(), h.Export.Invoices)

	// Users (Master)
	users := protected.Group("/users")
	users.Use(middleware.RequireMaster())
	{
		users.GET("", h.User.List)
		users.POST("", h.User.Create)
		users.DELETE("/:username", h.User.Delete)
		users.PUT("/:username/password", h.User.ResetPassword)
		users.PUT("/:username/location", h.User.AssignLocation)
	}
}
