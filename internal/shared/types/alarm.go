package types

// Dimension is a metric dimension name/value pair.
type Dimension struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// AlarmSpec describes the alarm derived for one resolved bot.
// It is rebuilt on every provisioning run and never persisted locally.
type AlarmSpec struct {
	AlarmName          string      `json:"alarmName"`
	BotName            string      `json:"botName"`
	BotID              string      `json:"botId"`
	BotAliasID         string      `json:"botAliasId"`
	Description        string      `json:"description"`
	Namespace          string      `json:"namespace"`
	MetricName         string      `json:"metricName"`
	ComparisonOperator string      `json:"comparisonOperator"`
	Statistic          string      `json:"statistic"`
	Threshold          float64     `json:"threshold"`
	EvaluationPeriods  int32       `json:"evaluationPeriods"`
	PeriodSeconds      int32       `json:"periodSeconds"`
	TreatMissingData   string      `json:"treatMissingData"`
	Dimensions         []Dimension `json:"dimensions"`
}

// Dimension returns the value of the named dimension.
func (s AlarmSpec) Dimension(name string) (string, bool) {
	for _, d := range s.Dimensions {
		if d.Name == name {
			return d.Value, true
		}
	}
	return "", false
}
