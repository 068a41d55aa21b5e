package main

// Build the Lambda handler binary:
//   GOOS=linux GOARCH=arm64 CGO_ENABLED=0 go build -o bootstrap ./cmd/lambda-http

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"

	"summary-backend/internal/bootstrap"
	"summary-backend/internal/shared/config"
	"summary-backend/internal/shared/server/respond"
	"summary-backend/internal/shared/telemetry"
)

// buildRouter is replaced in tests.
var buildRouter = func() (*gin.Engine, error) {
	app, err := bootstrap.Build(config.Load())
	if err != nil {
		return nil, err
	}
	return app.Router, nil
}

var (
	initOnce  sync.Once
	initErr   error
	ginLambda *ginadapter.GinLambdaV2
)

func initApp() {
	router, err := buildRouter()
	if err != nil {
		initErr = err
		return
	}
	ginLambda = ginadapter.NewV2(router)
}

func handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	initOnce.Do(initApp)
	if initErr != nil {
		telemetry.Error("lambda.bootstrap_failed", map[string]any{"error": initErr.Error()})
		return errorResponse("bootstrap failed"), initErr
	}
	return ginLambda.ProxyWithContext(ctx, req)
}

func errorResponse(message string) events.APIGatewayV2HTTPResponse {
	body, _ := json.Marshal(respond.ErrorResponse{Error: message, Code: "internal_error"})
	return events.APIGatewayV2HTTPResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       string(body),
		Headers:    map[string]string{"Content-Type": "application/json"},
	}
}

func main() {
	lambda.Start(handler)
}
