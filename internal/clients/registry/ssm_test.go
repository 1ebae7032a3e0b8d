package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/GriffinCanCode/botsync/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/botsync/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/botsync/internal/shared/paging"
	"github.com/GriffinCanCode/botsync/internal/shared/types"
)

type mockSSMAPI struct {
	mock.Mock
}

func (m *mockSSMAPI) GetParametersByPath(ctx context.Context, in *ssm.GetParametersByPathInput, _ ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ssm.GetParametersByPathOutput), args.Error(1)
}

func (m *mockSSMAPI) GetParameter(ctx context.Context, in *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ssm.GetParameterOutput), args.Error(1)
}

func (m *mockSSMAPI) PutParameter(ctx context.Context, in *ssm.PutParameterInput, _ ...func(*ssm.Options)) (*ssm.PutParameterOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ssm.PutParameterOutput), args.Error(1)
}

func param(name, value string) ssmtypes.Parameter {
	return ssmtypes.Parameter{Name: aws.String(name), Value: aws.String(value)}
}

func TestSSMScanDrainsPages(t *testing.T) {
	api := new(mockSSMAPI)
	api.On("GetParametersByPath", mock.Anything, mock.MatchedBy(func(in *ssm.GetParametersByPathInput) bool {
		return aws.ToString(in.Path) == "/lex" && aws.ToBool(in.Recursive) && in.NextToken == nil
	})).Return(&ssm.GetParametersByPathOutput{
		Parameters: []ssmtypes.Parameter{param("/lex/Support/BotId", "B1")},
		NextToken:  aws.String("n1"),
	}, nil).Once()
	api.On("GetParametersByPath", mock.Anything, mock.MatchedBy(func(in *ssm.GetParametersByPathInput) bool {
		return aws.ToString(in.NextToken) == "n1"
	})).Return(&ssm.GetParametersByPathOutput{
		Parameters: []ssmtypes.Parameter{param("/lex/Support/BotAliasId", "A1")},
	}, nil).Once()

	store := NewSSMStore(api, nil, zaptest.NewLogger(t))

	entries, err := paging.Collect(Scan(context.Background(), store, "/lex/"))
	require.NoError(t, err)

	assert.Equal(t, []types.RegistryEntry{
		{Path: "/lex/Support/BotId", Value: "B1"},
		{Path: "/lex/Support/BotAliasId", Value: "A1"},
	}, entries)
	api.AssertExpectations(t)
}

func TestSSMGet(t *testing.T) {
	api := new(mockSSMAPI)
	api.On("GetParameter", mock.Anything, mock.MatchedBy(func(in *ssm.GetParameterInput) bool {
		return aws.ToString(in.Name) == "/lex/Support/BotId"
	})).Return(&ssm.GetParameterOutput{
		Parameter: &ssmtypes.Parameter{Name: aws.String("/lex/Support/BotId"), Value: aws.String("B1")},
	}, nil)

	store := NewSSMStore(api, nil, nil)

	value, err := store.Get(context.Background(), "/lex/Support/BotId")
	require.NoError(t, err)
	assert.Equal(t, "B1", value)
}

func TestSSMGetMapsParameterNotFound(t *testing.T) {
	api := new(mockSSMAPI)
	api.On("GetParameter", mock.Anything, mock.Anything).
		Return(nil, &ssmtypes.ParameterNotFound{Message: aws.String("missing")})

	metrics := monitoring.NewMetricsWith(prometheus.NewRegistry())
	guard := resilience.NewGuard(SSMServiceName, resilience.GuardConfig{
		BreakerFailures: 1,
		IsExpected:      IsExpected,
	}, metrics, nil)
	store := NewSSMStore(api, guard, nil)

	for i := 0; i < 3; i++ {
		_, err := store.Get(context.Background(), "/lex/Ghost/BotId")
		assert.ErrorIs(t, err, ErrNotFound)
	}
	assert.Equal(t, resilience.StateClosed, guard.Breaker().State())
	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.CallsTotal.WithLabelValues(SSMServiceName, "GetParameter", "ok")))
}

func TestSSMGetOtherErrors(t *testing.T) {
	denied := errors.New("access denied")

	api := new(mockSSMAPI)
	api.On("GetParameter", mock.Anything, mock.Anything).Return(nil, denied)

	store := NewSSMStore(api, nil, nil)

	_, err := store.Get(context.Background(), "/lex/Support/BotId")
	assert.ErrorIs(t, err, denied)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestSSMPutOverwrites(t *testing.T) {
	api := new(mockSSMAPI)
	api.On("PutParameter", mock.Anything, mock.MatchedBy(func(in *ssm.PutParameterInput) bool {
		return aws.ToString(in.Name) == "/lex/Support/BotAliasId" &&
			aws.ToString(in.Value) == "A1" &&
			in.Type == ssmtypes.ParameterTypeString &&
			aws.ToBool(in.Overwrite)
	})).Return(&ssm.PutParameterOutput{Version: 2}, nil).Once()

	store := NewSSMStore(api, nil, nil)

	require.NoError(t, store.Put(context.Background(), "/lex/Support/BotAliasId", "A1"))
	api.AssertExpectations(t)
}

func TestSSMPath(t *testing.T) {
	assert.Equal(t, "/lex", ssmPath("/lex/"))
	assert.Equal(t, "/lex", ssmPath("/lex"))
	assert.Equal(t, "/", ssmPath("/"))
}
