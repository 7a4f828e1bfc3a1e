package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/sift/content"
	"github.com/use-agent/sift/models"
)

// Ingest returns a handler for POST /api/v1/url.
//
// Orchestration flow:
//  1. Parse & validate the request; the URL must be absolute http(s).
//  2. Pipeline.Run → fetch (records fetch_ms) → parse (records parse_ms).
//  3. 201 with the entry, or the ContentError mapped to a status.
func Ingest(p *content.Pipeline) gin.HandlerFunc {
	return func(c *gin.Context) {
		totalStart := time.Now()

		// ── 1. Parse request ────────────────────────────────────────
		var req models.IngestRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondInvalid(c, err.Error())
			return
		}
		if _, err := content.ParseURL(req.URL); err != nil {
			respondInvalid(c, err.Error())
			return
		}

		// ── 2. Fetch + parse ────────────────────────────────────────
		res, err := p.Run(c.Request.Context(), req.URL, req.Metadata)
		timing := models.TimingInfo{
			TotalMs: time.Since(totalStart).Milliseconds(),
			FetchMs: res.FetchDuration.Milliseconds(),
			ParseMs: res.ParseDuration.Milliseconds(),
		}
		if err != nil {
			respondError(c, err, res.Parser, timing)
			return
		}

		// ── 3. Respond ──────────────────────────────────────────────
		c.JSON(http.StatusCreated, models.IngestResponse{
			Success: true,
			Entry:   res.Entry,
			Parser:  res.Parser,
			Timing:  timing,
		})
	}
}

func respondInvalid(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, models.IngestResponse{
		Success: false,
		Error: &models.ErrorDetail{
			Code:    models.ErrCodeInvalidInput,
			Message: msg,
		},
	})
}

// respondError maps a ContentError to the correct HTTP status code and
// writes a structured JSON error response.
func respondError(c *gin.Context, err error, parser string, timing models.TimingInfo) {
	var ce *models.ContentError
	if !errors.As(err, &ce) {
		c.JSON(http.StatusInternalServerError, models.IngestResponse{
			Success: false,
			Error:   &models.ErrorDetail{Code: models.ErrCodeInternal, Message: err.Error()},
			Timing:  timing,
		})
		return
	}

	c.JSON(mapErrorToStatus(ce), models.IngestResponse{
		Success: false,
		Parser:  parser,
		Error:   ce.ToDetail(),
		Timing:  timing,
	})
}

// mapErrorToStatus translates content error kinds to HTTP status codes.
func mapErrorToStatus(e *models.ContentError) int {
	switch e.Kind {
	case models.FetchError:
		return http.StatusBadGateway // 502
	case models.ParseError:
		return http.StatusUnprocessableEntity // 422
	default:
		return http.StatusInternalServerError // 500
	}
}
