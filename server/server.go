// Package server exposes the relay over plain HTTP for local development
// and for deployments that front the router with API Gateway instead of a
// direct Lambda integration.
package server

import (
	"io"
	"net/http"

	"simplechat"
	"simplechat/relay"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// NewRouter builds the chat routes. POST /chat synthesizes a proxy event
// and delegates to the relay, so HTTP and Lambda callers see identical
// envelopes. The preflight route stands in for what API Gateway does in the
// Lambda deployment.
func NewRouter(r *relay.Relay) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestID())

	router.POST("/chat", func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			body = nil
		}
		event := events.APIGatewayProxyRequest{
			Path:       c.FullPath(),
			HTTPMethod: c.Request.Method,
			Body:       string(body),
		}
		resp, _ := r.Handle(c.Request.Context(), event)
		for k, v := range resp.Headers {
			c.Header(k, v)
		}
		c.Data(resp.StatusCode, "application/json", []byte(resp.Body))
	})

	router.OPTIONS("/chat", func(c *gin.Context) {
		for k, v := range simplechat.CORSHeaders() {
			c.Header(k, v)
		}
		c.Status(http.StatusNoContent)
	})

	return router
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-Id", id)
		c.Next()
	}
}
