package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// startStream prepares the response for server-sent events and returns the
// func that writes one event.
func startStream(c *gin.Context) func(event string, data any) error {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	return func(event string, data any) error {
		if err := c.Request.Context().Err(); err != nil {
			return err
		}
		c.SSEvent(event, data)
		c.Writer.Flush()
		return nil
	}
}
