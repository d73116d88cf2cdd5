// Package app assembles the contact workflow from configuration. Every
// entrypoint builds through here so the surfaces share one core.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/contactrelay/contactrelay/internal/config"
	"github.com/contactrelay/contactrelay/internal/handler"
	"github.com/contactrelay/contactrelay/internal/logging"
	"github.com/contactrelay/contactrelay/internal/mail"
	"github.com/contactrelay/contactrelay/internal/metrics"
	"github.com/contactrelay/contactrelay/internal/quote"
	"github.com/contactrelay/contactrelay/internal/service"
	"github.com/contactrelay/contactrelay/internal/transport"
)

// ServiceName identifies the process in logs, traces and metrics.
const ServiceName = "contactrelay"

// Version is set at build time with -ldflags "-X ...app.Version=...".
var Version = "dev"

// Options carries process-wide dependencies built by the entrypoint.
type Options struct {
	AWS        aws.Config
	HTTPClient *http.Client
	Metrics    metrics.Recorder
	Logger     *zap.Logger
}

// App is the assembled workflow plus what the surfaces need around it.
type App struct {
	Identity  mail.Identity
	Generator quote.Generator
	Service   *service.ContactService
	Contact   *handler.ContactHandler
	Checks    []handler.NamedCheck
}

// NewLogger builds the process logger from configuration. out overrides
// stdout when non-nil.
func NewLogger(cfg *config.Config, out zapcore.WriteSyncer) (*zap.Logger, func() error, error) {
	logger, closeFn, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
		Output: out,
	})
	if err != nil {
		return nil, nil, err
	}
	return logger.With(zap.String("service", ServiceName), zap.String("env", cfg.AppEnv)), closeFn, nil
}

// Identity derives mail routing from configuration.
func Identity(cfg *config.Config) mail.Identity {
	return mail.Identity{
		SenderName:  cfg.SenderName,
		SenderEmail: cfg.SenderEmail,
		Operator:    cfg.ReceiverEmail,
	}
}

// NewGenerator returns the quote generator selected by QUOTE_PROVIDER.
func NewGenerator(ctx context.Context, cfg *config.Config, awsCfg aws.Config, httpClient *http.Client) (quote.Generator, error) {
	switch cfg.QuoteProvider {
	case config.ProviderBedrock, "":
		return quote.NewBedrockGeneratorForRegion(awsCfg, cfg.BedrockRegion, cfg.BedrockModelID), nil
	case config.ProviderGemini:
		return quote.NewGeminiGeneratorWithKey(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, httpClient)
	default:
		return nil, fmt.Errorf("unknown quote provider %q", cfg.QuoteProvider)
	}
}

// New wires the workflow from already-resolved dependencies.
func New(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.NewNoop()
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = transport.NewHTTPClient()
	}

	gen, err := NewGenerator(ctx, cfg, opts.AWS, opts.HTTPClient)
	if err != nil {
		return nil, fmt.Errorf("build quote generator: %w", err)
	}

	identity := Identity(cfg)
	mailer := mail.NewSESSenderForRegion(opts.AWS, cfg.SESRegion)
	svc := service.NewContactService(mailer, gen, identity, opts.Metrics, opts.Logger)

	return &App{
		Identity:  identity,
		Generator: gen,
		Service:   svc,
		Contact:   handler.NewContactHandler(svc, opts.Metrics, opts.Logger),
		Checks: []handler.NamedCheck{
			{Name: "aws_credentials", Checker: handler.CheckerFunc(transport.CredentialsCheck(opts.AWS))},
		},
	}, nil
}

// Bootstrap resolves the AWS credential chain once and builds the App.
func Bootstrap(ctx context.Context, cfg *config.Config, recorder metrics.Recorder, logger *zap.Logger) (*App, error) {
	httpClient := transport.NewHTTPClient()

	awsCfg, err := transport.LoadAWSConfig(ctx, httpClient)
	if err != nil {
		return nil, err
	}

	return New(ctx, cfg, Options{
		AWS:        awsCfg,
		HTTPClient: httpClient,
		Metrics:    recorder,
		Logger:     logger,
	})
}
