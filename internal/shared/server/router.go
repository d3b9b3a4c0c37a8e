package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"ocr-backend/internal/bootstrap"
	"ocr-backend/internal/documents"
	"ocr-backend/internal/explain"
	"ocr-backend/internal/shared/metrics"
	"ocr-backend/internal/shared/server/middleware"
	"ocr-backend/internal/shared/server/respond"
)

// explainRateRule throttles the language-model endpoint per caller.
var explainRateRule = middleware.RateLimitRule{Rate: 0.5, Burst: 5}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		corsMiddleware(app),
	)

	r.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/metrics", metrics.Handler())

	app.Google.RegisterRoutes(r.Group(""))

	docHandler := documents.NewHandler(app.Documents)
	explainHandler := explain.NewHandler(app.Explain)
	limiter := middleware.NewRateLimiter(nil)

	protected := r.Group("/ocr")
	protected.Use(middleware.Auth())
	registerMeRoutes(protected)
	docHandler.RegisterRoutes(protected)
	explainHandler.RegisterRoutes(protected, middleware.RateLimit(limiter, explainRateRule))

	return r
}

func corsMiddleware(app *bootstrap.App) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if app.Cfg.CORSAllowAll {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = app.Cfg.CORSAllowOrigin
	}
	return cors.New(corsCfg)
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
