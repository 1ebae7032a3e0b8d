package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/botsync/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/botsync/internal/shared/types"
)

// SSMServiceName labels SSM calls in metrics and breaker state.
const SSMServiceName = "ssm"

// SSMAPI is the subset of the SSM API used here.
type SSMAPI interface {
	GetParametersByPath(ctx context.Context, in *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error)
	GetParameter(ctx context.Context, in *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
	PutParameter(ctx context.Context, in *ssm.PutParameterInput, optFns ...func(*ssm.Options)) (*ssm.PutParameterOutput, error)
}

// SSMStore implements Store over SSM Parameter Store. Values are written
// as plain String parameters.
type SSMStore struct {
	api    SSMAPI
	guard  *resilience.Guard
	logger *zap.Logger
}

// NewSSMStore creates an SSM-backed store.
func NewSSMStore(api SSMAPI, guard *resilience.Guard, logger *zap.Logger) *SSMStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SSMStore{api: api, guard: guard, logger: logger}
}

// GetByPrefix returns one page of parameters under prefix.
func (s *SSMStore) GetByPrefix(ctx context.Context, prefix, token string) (EntryPage, error) {
	in := &ssm.GetParametersByPathInput{
		Path:      aws.String(ssmPath(prefix)),
		Recursive: aws.Bool(true),
	}
	if token != "" {
		in.NextToken = aws.String(token)
	}

	var out *ssm.GetParametersByPathOutput
	err := s.guard.Do(ctx, "GetParametersByPath", func(ctx context.Context) error {
		var err error
		out, err = s.api.GetParametersByPath(ctx, in)
		return err
	})
	if err != nil {
		return EntryPage{}, fmt.Errorf("scan %s: %w", prefix, err)
	}

	page := EntryPage{
		Entries:   make([]types.RegistryEntry, 0, len(out.Parameters)),
		NextToken: aws.ToString(out.NextToken),
	}
	for _, p := range out.Parameters {
		page.Entries = append(page.Entries, types.RegistryEntry{
			Path:  aws.ToString(p.Name),
			Value: aws.ToString(p.Value),
		})
	}
	return page, nil
}

// Get returns the parameter value at path.
func (s *SSMStore) Get(ctx context.Context, path string) (string, error) {
	var out *ssm.GetParameterOutput
	err := s.guard.DoEntity(ctx, "GetParameter", func(ctx context.Context) error {
		var err error
		out, err = s.api.GetParameter(ctx, &ssm.GetParameterInput{Name: aws.String(path)})
		var notFound *ssmtypes.ParameterNotFound
		if errors.As(err, &notFound) {
			return ErrNotFound
		}
		return err
	})
	if err != nil {
		return "", fmt.Errorf("get %s: %w", path, err)
	}
	if out.Parameter == nil {
		return "", fmt.Errorf("get %s: %w", path, ErrNotFound)
	}
	return aws.ToString(out.Parameter.Value), nil
}

// Put overwrites the parameter at path.
func (s *SSMStore) Put(ctx context.Context, path, value string) error {
	err := s.guard.DoEntity(ctx, "PutParameter", func(ctx context.Context) error {
		_, err := s.api.PutParameter(ctx, &ssm.PutParameterInput{
			Name:      aws.String(path),
			Value:     aws.String(value),
			Type:      ssmtypes.ParameterTypeString,
			Overwrite: aws.Bool(true),
		})
		return err
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", path, err)
	}

	s.logger.Debug("Parameter written", zap.String("path", path))
	return nil
}

// SSM rejects a trailing slash on hierarchy paths other than the root.
func ssmPath(prefix string) string {
	if trimmed := strings.TrimRight(prefix, "/"); trimmed != "" {
		return trimmed
	}
	return "/"
}
