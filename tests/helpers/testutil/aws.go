package testutil

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/stretchr/testify/mock"
)

// MockSSMAPI is a testify mock of registry.SSMAPI. Expectations match on
// (ctx, input); option functions are ignored.
type MockSSMAPI struct {
	mock.Mock
}

// GetParametersByPath mocks the SDK call.
func (m *MockSSMAPI) GetParametersByPath(ctx context.Context, in *ssm.GetParametersByPathInput, _ ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*ssm.GetParametersByPathOutput)
	return out, args.Error(1)
}

// GetParameter mocks the SDK call.
func (m *MockSSMAPI) GetParameter(ctx context.Context, in *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*ssm.GetParameterOutput)
	return out, args.Error(1)
}

// PutParameter mocks the SDK call.
func (m *MockSSMAPI) PutParameter(ctx context.Context, in *ssm.PutParameterInput, _ ...func(*ssm.Options)) (*ssm.PutParameterOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*ssm.PutParameterOutput)
	return out, args.Error(1)
}

// MockCloudWatchAPI is a testify mock of alarm.CloudWatchAPI.
type MockCloudWatchAPI struct {
	mock.Mock
}

// PutMetricAlarm mocks the SDK call.
func (m *MockCloudWatchAPI) PutMetricAlarm(ctx context.Context, in *cloudwatch.PutMetricAlarmInput, _ ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricAlarmOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*cloudwatch.PutMetricAlarmOutput)
	return out, args.Error(1)
}
