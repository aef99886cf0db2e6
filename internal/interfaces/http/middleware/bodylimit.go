package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vintner/backend/internal/interfaces/http/dto"
)

// BodyLimit rejects requests whose body exceeds maxBytes. Image bytes never
// pass through this API (uploads go straight to object storage), so the
// limit only has to fit JSON payloads.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponse(dto.ErrCodeInvalidInput, "Request body exceeds maximum allowed size"))
			return
		}

		// Content-Length can lie; cap streamed reads too
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
