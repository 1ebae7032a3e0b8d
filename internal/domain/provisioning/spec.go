package provisioning

import (
	"fmt"

	"github.com/GriffinCanCode/botsync/internal/infrastructure/config"
	"github.com/GriffinCanCode/botsync/internal/shared/types"
)

// Alarm template constants
const (
	Namespace          = "AWS/Lex"
	MetricName         = "RuntimeSystemErrors"
	ComparisonOperator = "GreaterThanThreshold"
	Statistic          = "Average"
	TreatMissingData   = "notBreaching"
	EvaluationPeriods  = 1
)

// Dimension names
const (
	DimensionLocale     = "LocaleId"
	DimensionBotID      = "BotId"
	DimensionOperation  = "Operation"
	DimensionBotAliasID = "BotAliasId"
)

// Template holds the per-environment alarm parameters.
type Template struct {
	EnvPrefix     string
	Threshold     float64
	PeriodSeconds int32
	Locale        string
	Operation     string
}

// TemplateFromConfig builds a template from alarm configuration.
func TemplateFromConfig(cfg config.AlarmConfig) Template {
	return Template{
		EnvPrefix:     cfg.EnvPrefix,
		Threshold:     cfg.Threshold,
		PeriodSeconds: cfg.PeriodSeconds,
		Locale:        cfg.Locale,
		Operation:     cfg.Operation,
	}
}

// AlarmName returns "{envPrefix} - RuntimeSystemErrors-{botName}".
func AlarmName(envPrefix, botName string) string {
	return fmt.Sprintf("%s - %s-%s", envPrefix, MetricName, botName)
}

// Spec derives the alarm for one resolved bot. The same inputs always
// produce an identical spec, dimensions included.
func (t Template) Spec(botName, botID, botAliasID string) types.AlarmSpec {
	return types.AlarmSpec{
		AlarmName:          AlarmName(t.EnvPrefix, botName),
		BotName:            botName,
		BotID:              botID,
		BotAliasID:         botAliasID,
		Description:        fmt.Sprintf("Alarm for %s on Lex bot %s", MetricName, botName),
		Namespace:          Namespace,
		MetricName:         MetricName,
		ComparisonOperator: ComparisonOperator,
		Statistic:          Statistic,
		Threshold:          t.Threshold,
		EvaluationPeriods:  EvaluationPeriods,
		PeriodSeconds:      t.PeriodSeconds,
		TreatMissingData:   TreatMissingData,
		Dimensions: []types.Dimension{
			{Name: DimensionLocale, Value: t.Locale},
			{Name: DimensionBotID, Value: botID},
			{Name: DimensionOperation, Value: t.Operation},
			{Name: DimensionBotAliasID, Value: botAliasID},
		},
	}
}
