package transport

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
)

// LoadAWSConfig resolves the default credential chain once for the process.
// Region is left to each service client.
func LoadAWSConfig(ctx context.Context, httpClient aws.HTTPClient) (aws.Config, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithHTTPClient(httpClient))
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return cfg, nil
}

// CredentialsCheck returns a readiness probe that verifies credentials resolve.
func CredentialsCheck(cfg aws.Config) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if cfg.Credentials == nil {
			return fmt.Errorf("no credentials provider configured")
		}
		if _, err := cfg.Credentials.Retrieve(ctx); err != nil {
			return fmt.Errorf("retrieve credentials: %w", err)
		}
		return nil
	}
}
