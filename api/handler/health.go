package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/sift/config"
	"github.com/use-agent/sift/models"
	"github.com/use-agent/sift/parser"
)

// Health returns a handler for GET /api/v1/health.
//
// Status is "degraded" when no parser family is registered, since every
// ingest would then fail.
func Health(reg *parser.Registry, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		names := []string{}
		if reg != nil {
			names = reg.Names()
		}

		status := "healthy"
		if len(names) == 0 {
			status = "degraded"
		}

		c.JSON(http.StatusOK, models.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).Round(time.Second).String(),
			Parsers: names,
			Version: config.Version,
		})
	}
}
