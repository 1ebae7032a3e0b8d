// Package awsconfig builds the shared AWS SDK configuration used by the
// inventory, registry and alarm clients.
package awsconfig

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awscfg "github.com/aws/aws-sdk-go-v2/config"

	"github.com/GriffinCanCode/botsync/internal/infrastructure/config"
)

// Load resolves credentials and region from the environment and the
// settings in cfg.
func Load(ctx context.Context, cfg config.AWSConfig) (aws.Config, error) {
	awsCfg, err := awscfg.LoadDefaultConfig(ctx, Options(cfg)...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	if cfg.EndpointURL != "" {
		awsCfg.BaseEndpoint = aws.String(cfg.EndpointURL)
	}
	return awsCfg, nil
}

// Options returns the load options derived from cfg.
func Options(cfg config.AWSConfig) []func(*awscfg.LoadOptions) error {
	opts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Region),
		awscfg.WithHTTPClient(httpClient()),
	}
	if cfg.Profile != "" {
		opts = append(opts, awscfg.WithSharedConfigProfile(cfg.Profile))
	}
	if cfg.MaxAttempts > 0 {
		opts = append(opts, awscfg.WithRetryMaxAttempts(cfg.MaxAttempts))
	}
	return opts
}

// httpClient is shared by the Lex, SSM and CloudWatch clients. Jobs call
// the same few endpoints back to back, so idle connections are kept per host.
func httpClient() *awshttp.BuildableClient {
	return awshttp.NewBuildableClient().WithTransportOptions(func(tr *http.Transport) {
		tr.MaxIdleConnsPerHost = idleConnsPerHost
	})
}

const idleConnsPerHost = 16
