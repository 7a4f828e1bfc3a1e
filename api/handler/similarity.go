package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/sift/models"
	"github.com/use-agent/sift/similarity"
)

// Similarity returns a handler for POST /api/v1/similarity.
//
// The response matrix holds the pairwise cosine similarity of the TF-IDF
// vectors of the submitted documents, in request order.
func Similarity() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.SimilarityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.SimilarityResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}

		matrix, err := similarity.Matrix(c.Request.Context(), req.Documents)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.SimilarityResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInternal,
					Message: err.Error(),
				},
			})
			return
		}

		c.JSON(http.StatusOK, models.SimilarityResponse{
			Success: true,
			Matrix:  matrix,
		})
	}
}
