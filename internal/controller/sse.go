package controller

import (
	"io"

	"depositrecon/pkg/types/pubsub"

	"github.com/gin-gonic/gin"
)

// SSEFetchRuns godoc
// @Summary Stream finished fetch runs
// @Description Server-Sent Events endpoint emitting every fetch run as it completes
// @Tags fetch
// @Produce text/event-stream
// @Success 200 {string} string "SSE stream"
// @Router /api/fetch/stream [get]
func SSEFetchRuns(l pubsub.Listener) gin.HandlerFunc {
	return func(c *gin.Context) {
		runCh, stop := l.Listen()
		defer stop()

		c.Header("Content-Type", "text/event-stream")
		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")

		c.Stream(func(w io.Writer) bool {
			select {
			case msg, ok := <-runCh:
				if !ok {
					return false
				}
				c.SSEvent("fetch_run", string(msg))
				c.Writer.Flush()
				return true
			case <-c.Request.Context().Done():
				return false
			}
		})
	}
}
