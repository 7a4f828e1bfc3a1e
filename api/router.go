package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/sift/api/handler"
	"github.com/use-agent/sift/api/middleware"
	"github.com/use-agent/sift/config"
	"github.com/use-agent/sift/content"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     RateLimit
//
// Health endpoint sits outside the rate limit so monitoring probes always work.
func NewRouter(p *content.Pipeline, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	v1 := r.Group("/api/v1")

	// Health is not rate limited.
	v1.GET("/health", handler.Health(p.Registry, startTime))

	// Data endpoints are rate limited per client IP.
	limited := v1.Group("")
	limited.Use(middleware.RateLimit(cfg.RateLimit))

	// Ingest a single URL
	limited.POST("/url", handler.Ingest(p))

	// Pairwise text similarity
	limited.POST("/similarity", handler.Similarity())

	return r
}
