package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"rentcal/internal/infra/config"
	"rentcal/internal/infra/obs"
)

type CalendarHTTP interface {
	Layout(c *gin.Context)
	Day(c *gin.Context)
}

type ViewHTTP interface {
	Create(c *gin.Context)
	Get(c *gin.Context)
	Layout(c *gin.Context)
	SetFilter(c *gin.Context)
	ClearFilter(c *gin.Context)
	ClearFilters(c *gin.Context)
	Select(c *gin.Context)
	Deselect(c *gin.Context)
	Resize(c *gin.Context)
	Navigate(c *gin.Context)
	Close(c *gin.Context)
}

type Handlers struct {
	Calendar CalendarHTTP
	View     ViewHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           NewRouter(cfg, obsMW, health, h),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// NewRouter builds the gin engine without binding it to an address.
func NewRouter(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Calendar != nil {
		api.GET("/calendar", h.Calendar.Layout)
		api.GET("/calendar/days/:date", h.Calendar.Day)
	}
	if h.View != nil {
		views := api.Group("/views")
		views.POST("", h.View.Create)
		views.GET("/:id", h.View.Get)
		views.DELETE("/:id", h.View.Close)
		views.GET("/:id/layout", h.View.Layout)
		views.PUT("/:id/filters/:key", h.View.SetFilter)
		views.DELETE("/:id/filters/:key", h.View.ClearFilter)
		views.DELETE("/:id/filters", h.View.ClearFilters)
		views.PUT("/:id/selection", h.View.Select)
		views.DELETE("/:id/selection", h.View.Deselect)
		views.PUT("/:id/window", h.View.Resize)
		views.POST("/:id/navigate", h.View.Navigate)
	}
	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", obs.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Type", obs.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
