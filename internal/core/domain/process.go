package domain

// Parameter is a monitored process variable with its expected range.
type Parameter struct {
	Name string  `json:"name" yaml:"name"`
	Unit string  `json:"unit" yaml:"unit"`
	Min  float64 `json:"min_value" yaml:"min"`
	Max  float64 `json:"max_value" yaml:"max"`
}

// Sensor describes a field instrument attached to a process stage.
type Sensor struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Type     string `json:"type" yaml:"type"`
	Unit     string `json:"unit" yaml:"unit"`
	Location string `json:"location" yaml:"location"`
}

// AlertRule is a threshold check on one metric of a process.
type AlertRule struct {
	Metric    string  `json:"metric" yaml:"metric"`
	Level     string  `json:"level" yaml:"level"`
	Operator  string  `json:"operator" yaml:"operator"`
	Threshold float64 `json:"threshold" yaml:"threshold"`
	Message   string  `json:"message" yaml:"message"`
}

// Process is one stage of the plant as described by the static catalog.
type Process struct {
	ID                      string      `json:"id" yaml:"id"`
	Stage                   int         `json:"stage" yaml:"stage"`
	Name                    string      `json:"name" yaml:"name"`
	Description             string      `json:"description" yaml:"description"`
	SamplingIntervalSeconds int         `json:"sampling_interval_seconds" yaml:"sampling_interval_seconds"`
	Parameters              []Parameter `json:"parameters" yaml:"parameters"`
	Sensors                 []Sensor    `json:"sensors" yaml:"sensors"`
	Alerts                  []AlertRule `json:"alerts" yaml:"alerts"`
	RecommendedActions      []string    `json:"recommended_actions" yaml:"recommended_actions"`
}

// SeriesPoint is one sample of a synthetic time series.
type SeriesPoint struct {
	Timestamp string  `json:"timestamp"`
	Value     float64 `json:"value"`
}

// ParameterSeries is the sample history shown on a process card.
type ParameterSeries struct {
	Parameter string        `json:"parameter"`
	Unit      string        `json:"unit"`
	Points    []SeriesPoint `json:"points"`
}
