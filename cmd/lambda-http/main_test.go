package main

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gin-gonic/gin"
)

func resetInit(t *testing.T, build func() (*gin.Engine, error)) {
	t.Helper()
	prev := buildRouter
	buildRouter = build
	initOnce = sync.Once{}
	initErr = nil
	ginLambda = nil
	t.Cleanup(func() {
		buildRouter = prev
		initOnce = sync.Once{}
		initErr = nil
		ginLambda = nil
	})
}

func apiRequest(method, path string) events.APIGatewayV2HTTPRequest {
	req := events.APIGatewayV2HTTPRequest{
		Version:  "2.0",
		RawPath:  path,
		Headers:  map[string]string{},
		RouteKey: "$default",
	}
	req.RequestContext.HTTP.Method = method
	req.RequestContext.HTTP.Path = path
	return req
}

func TestHandlerProxiesToRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	resetInit(t, func() (*gin.Engine, error) {
		r := gin.New()
		r.GET("/api/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
		return r, nil
	})

	resp, err := handler(context.Background(), apiRequest(http.MethodGet, "/api/health"))
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(resp.Body, `"ok":true`) {
		t.Fatalf("unexpected body %q", resp.Body)
	}
}

func TestHandlerReportsBootstrapFailure(t *testing.T) {
	resetInit(t, func() (*gin.Engine, error) { return nil, errors.New("DATABASE_URL is required") })

	resp, err := handler(context.Background(), apiRequest(http.MethodGet, "/api/health"))
	if err == nil {
		t.Fatal("expected bootstrap error")
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	if !strings.Contains(resp.Body, `"code":"internal_error"`) {
		t.Fatalf("unexpected body %q", resp.Body)
	}
}
