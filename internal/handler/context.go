package handler

import (
	"context"
	"errors"
	"net/http"

	"nestgirl/internal/feed"
	"nestgirl/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Helper to get the authenticated phone number from context
func getAuthPhone(c *gin.Context) (string, error) {
	phoneVal, exists := c.Get(middleware.AuthPhoneKey)
	if !exists {
		return "", errors.New("phone not found in context")
	}
	phone, ok := phoneVal.(string)
	if !ok {
		return "", errors.New("invalid phone type in context")
	}
	return phone, nil
}

// Helper to get the raw session token from context
func getAuthToken(c *gin.Context) (string, error) {
	tokenVal, exists := c.Get(middleware.AuthTokenKey)
	if !exists {
		return "", errors.New("token not found in context")
	}
	token, ok := tokenVal.(string)
	if !ok {
		return "", errors.New("invalid token type in context")
	}
	return token, nil
}

// streamSnapshots serves a live collection feed over SSE. Each hub tick
// (including the initial one) re-queries the full snapshot and pushes it as
// one "snapshot" event, so clients always replace their local copy wholesale.
func streamSnapshots(c *gin.Context, hub *feed.Hub, collection string, fetch func(ctx context.Context) (any, error)) {
	ctx := c.Request.Context()
	sub := hub.Subscribe(ctx, collection)
	defer sub.Cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
	c.Writer.WriteHeader(http.StatusOK)

	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.Changes():
			snapshot, err := fetch(ctx)
			if err != nil {
				c.SSEvent("error", gin.H{"error": "failed to load " + collection})
				c.Writer.Flush()
				continue
			}
			c.SSEvent("snapshot", snapshot)
			c.Writer.Flush()
		}
	}
}
