// Package alarm upserts CloudWatch metric alarms.
package alarm

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/botsync/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/botsync/internal/shared/types"
)

// ServiceName labels CloudWatch calls in metrics and breaker state.
const ServiceName = "cloudwatch"

// Client creates or replaces an alarm by name.
type Client interface {
	PutAlarm(ctx context.Context, spec types.AlarmSpec) error
}

// CloudWatchAPI is the subset of the CloudWatch API used here.
type CloudWatchAPI interface {
	PutMetricAlarm(ctx context.Context, in *cloudwatch.PutMetricAlarmInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricAlarmOutput, error)
}

// CloudWatchClient implements Client over CloudWatch.
type CloudWatchClient struct {
	api    CloudWatchAPI
	guard  *resilience.Guard
	logger *zap.Logger
}

// NewCloudWatchClient creates a CloudWatch alarm client.
func NewCloudWatchClient(api CloudWatchAPI, guard *resilience.Guard, logger *zap.Logger) *CloudWatchClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CloudWatchClient{api: api, guard: guard, logger: logger}
}

// PutAlarm upserts the alarm described by spec. Alarm actions are left
// empty so no notification is wired.
func (c *CloudWatchClient) PutAlarm(ctx context.Context, spec types.AlarmSpec) error {
	in := Input(spec)
	err := c.guard.DoEntity(ctx, "PutMetricAlarm", func(ctx context.Context) error {
		_, err := c.api.PutMetricAlarm(ctx, in)
		return err
	})
	if err != nil {
		return fmt.Errorf("put alarm %q: %w", spec.AlarmName, err)
	}

	c.logger.Debug("Alarm upserted", zap.String("alarm", spec.AlarmName))
	return nil
}

// Input converts spec to a PutMetricAlarm request, keeping dimension order.
func Input(spec types.AlarmSpec) *cloudwatch.PutMetricAlarmInput {
	dims := make([]cwtypes.Dimension, 0, len(spec.Dimensions))
	for _, d := range spec.Dimensions {
		dims = append(dims, cwtypes.Dimension{
			Name:  aws.String(d.Name),
			Value: aws.String(d.Value),
		})
	}

	return &cloudwatch.PutMetricAlarmInput{
		AlarmName:          aws.String(spec.AlarmName),
		AlarmDescription:   aws.String(spec.Description),
		ActionsEnabled:     aws.Bool(true),
		AlarmActions:       []string{},
		Namespace:          aws.String(spec.Namespace),
		MetricName:         aws.String(spec.MetricName),
		ComparisonOperator: cwtypes.ComparisonOperator(spec.ComparisonOperator),
		Statistic:          cwtypes.Statistic(spec.Statistic),
		Threshold:          aws.Float64(spec.Threshold),
		EvaluationPeriods:  aws.Int32(spec.EvaluationPeriods),
		Period:             aws.Int32(spec.PeriodSeconds),
		TreatMissingData:   aws.String(spec.TreatMissingData),
		Dimensions:         dims,
	}
}
