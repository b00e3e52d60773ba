package httpapi

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sandevgo/memobot/internal/core"
	"github.com/sandevgo/memobot/pkg/log"
)

const (
	userHeader      = "X-User-ID"
	requestIDHeader = "X-Request-ID"
)

type ChatService interface {
	Reply(ctx context.Context, userID, message string) (string, error)
	DescribeImage(ctx context.Context, image []byte) (string, error)
	History(ctx context.Context, userID string) ([]core.TranscriptEntry, error)
}

// NewRouter wires the chat endpoints. base supplies the logger for requests.
func NewRouter(base context.Context, svc ChatService, defaultUser string) *gin.Engine {
	r := gin.New()
	r.Use(requestLogger(base), gin.Recovery())

	h := NewHandler(svc, defaultUser)

	r.GET("/", h.Root)
	r.POST("/chat", h.Chat)
	r.POST("/image", h.Image)
	r.GET("/history", h.History)

	return r
}

// requestLogger puts a request scoped logger into the request context and
// logs every request once it completes.
func requestLogger(base context.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqID := c.GetHeader(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header(requestIDHeader, reqID)

		logger := log.FromCtx(base).With().Str("request_id", reqID).Logger()
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context()))

		c.Next()

		status := c.Writer.Status()
		event := logger.Info()
		if status >= 500 {
			event = logger.Error()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("http request")
	}
}
