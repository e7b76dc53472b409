package main

import (
	"context"
	"log"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"

	"github.com/f3rva/workout-service/internal/app"
	"github.com/f3rva/workout-service/internal/config"
	"github.com/f3rva/workout-service/internal/logging"
)

// main serves the same router behind API Gateway proxy integration.
// The pool is built once per cold start and reused across invocations.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger := logging.New(cfg.LogLevel, cfg.Debug)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	a, err := app.Build(ctx, cfg, logger)
	cancel()
	if err != nil {
		log.Fatal(err)
	}

	adapter := ginadapter.New(a.Router)

	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		logger.Info("processing lambda event", "method", req.HTTPMethod, "path", req.Path)

		resp, err := adapter.ProxyWithContext(ctx, req)
		if err != nil {
			logger.Error("lambda proxy failed", "error", err)
			return events.APIGatewayProxyResponse{
				StatusCode: http.StatusInternalServerError,
				Headers:    map[string]string{"Content-Type": "application/json"},
				Body:       `{"detail":"Internal server error"}`,
			}, nil
		}

		logger.Info("lambda response", "status", resp.StatusCode)
		return resp, nil
	})
}
