package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medtrace/medtrace-backend/internal/pkg/ctxutil"
)

// AttachRequestContext stamps every request with a request id.
func AttachRequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		td := &ctxutil.TraceData{RequestID: uuid.NewString()}
		c.Request = c.Request.WithContext(ctxutil.WithTraceData(c.Request.Context(), td))
		c.Header("X-Request-ID", td.RequestID)
		c.Next()
	}
}
