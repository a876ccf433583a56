package metric

// MetricType defines the semantic type of a metric.
type MetricType string

const (
	MetricTypeCounter MetricType = "counter"
	MetricTypeGauge   MetricType = "gauge"
)

// Observation is a single named value produced by a collection run.
type Observation struct {
	Name      string
	Value     int64
	Timestamp int64
	Type      MetricType

	// Cumulative holds the raw counter reading for counters; Value is the
	// interval delta derived from it.
	Cumulative int64
}
