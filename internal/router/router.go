package router

import (
	"github.com/gin-gonic/gin"

	"bomflow/internal/handler"
	"bomflow/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	importH *handler.ImportHandler,
	healthH *handler.HealthHandler,
	allowedOrigins []string,
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

	v1 := r.Group("/api/v1")

	imports := v1.Group("/imports")
	imports.POST("", importH.Create)
	imports.GET("", importH.List)
	imports.GET("/:id", importH.GetByID)
	imports.GET("/:id/export", importH.ExportCSV)

	return r
}
