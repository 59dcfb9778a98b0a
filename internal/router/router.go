package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"quotedesk/internal/auth/jwtauth"
	"quotedesk/internal/domain"
	"quotedesk/internal/handler"
	"quotedesk/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	verifier *jwtauth.Verifier,
	allowedOrigins []string,
	quoteH *handler.QuoteHandler,
	selectionH *handler.SelectionHandler,
	comparisonH *handler.ComparisonHandler,
	shareH *handler.ShareHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// API docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Public share resolution, no auth; the token is the credential
	v1.GET("/shared/:token", shareH.Resolve)

	// Protected routes - require valid portal identity token
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(verifier))

	// Quote document routes
	quotes := protected.Group("/quotes")
	quotes.POST("/upload", quoteH.Upload)
	quotes.POST("/import", quoteH.Import)
	quotes.GET("", quoteH.List)
	quotes.GET("/:id", quoteH.GetByID)
	quotes.GET("/:id/data", quoteH.GetProcessedData)
	quotes.POST("/:id/reprocess", quoteH.Reprocess)
	quotes.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin, domain.RoleBroker), quoteH.Delete)

	// Plan selection routes
	quotes.GET("/:id/plans", selectionH.Plans)
	quotes.PUT("/:id/selection", selectionH.Save)
	quotes.GET("/:id/selection", selectionH.Get)
	quotes.DELETE("/:id/selection", selectionH.Remove)
	protected.GET("/selections", selectionH.GetAll)

	// Market comparison routes
	comparisons := protected.Group("/comparisons")
	comparisons.POST("", comparisonH.Compare)
	comparisons.POST("/export", comparisonH.Export)

	// Share link routes
	shares := protected.Group("/shares")
	shares.POST("", middleware.RequireRole(domain.RoleAdmin, domain.RoleBroker), shareH.Create)
	shares.GET("", shareH.List)
	shares.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin, domain.RoleBroker), shareH.Delete)

	return r
}
