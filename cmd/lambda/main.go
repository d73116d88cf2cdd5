// Package main is the AWS Lambda entrypoint. API Gateway proxy events are
// handled by the same ContactHandler the HTTP server uses.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"github.com/contactrelay/contactrelay/internal/app"
	"github.com/contactrelay/contactrelay/internal/config"
	"github.com/contactrelay/contactrelay/internal/metrics"
	"github.com/contactrelay/contactrelay/internal/telemetry"
)

func main() {
	ctx := context.Background()

	// Configuration and clients are built once per execution environment
	// and reused across warm invocations.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, closeLog, err := app.NewLogger(cfg, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = closeLog() }()

	shutdownTracing, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    app.ServiceName,
		ServiceVersion: app.Version,
		Endpoint:       cfg.OTelEndpoint,
		Enabled:        cfg.OTelEnabled,
		Insecure:       true,
	}, logger)
	if err != nil {
		logger.Fatal("failed to init tracing", zap.Error(err))
	}
	defer func() { _ = shutdownTracing(ctx) }()

	a, err := app.Bootstrap(ctx, cfg, metrics.NewNoop(), logger)
	if err != nil {
		logger.Fatal("failed to build application", zap.Error(err))
	}

	logger.Info("lambda ready",
		zap.String("quote_provider", cfg.QuoteProvider),
		zap.String("version", app.Version),
	)

	lambda.Start(a.Contact.HandleAPIGateway)
}
