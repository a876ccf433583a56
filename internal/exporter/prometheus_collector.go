package exporter

import (
	"log/slog"
	"regexp"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sorah/mackerel-plugin-bird/internal/metric"
)

var invalidPromChars = regexp.MustCompile(`[^a-zA-Z0-9_:]`)

// metricDescriptor holds metadata for a Prometheus metric.
type metricDescriptor struct {
	desc      *prometheus.Desc
	valueType prometheus.ValueType
	value     float64
}

// collector implements prometheus.Collector over a fixed set of observations.
type collector struct {
	descriptors []metricDescriptor
}

// prometheusName converts a dotted metric name into a Prometheus name.
func prometheusName(o metric.Observation) string {
	name := invalidPromChars.ReplaceAllString(o.Name, "_")
	if o.Type == metric.MetricTypeCounter {
		name += "_total"
	}
	return name
}

// newCollector creates a collector from observations. Counters export their
// cumulative reading rather than the interval delta. Observations whose
// Prometheus name is already taken are skipped.
func newCollector(obs []metric.Observation) *collector {
	descriptors := make([]metricDescriptor, 0, len(obs))
	seen := make(map[string]string, len(obs))

	for _, o := range obs {
		name := prometheusName(o)
		if first, ok := seen[name]; ok {
			slog.Debug("skipping duplicate prometheus metric", "name", name, "metric", o.Name, "kept", first)
			continue
		}
		seen[name] = o.Name

		valueType := prometheus.GaugeValue
		value := float64(o.Value)
		if o.Type == metric.MetricTypeCounter {
			valueType = prometheus.CounterValue
			value = float64(o.Cumulative)
		}

		descriptors = append(descriptors, metricDescriptor{
			desc: prometheus.NewDesc(
				name,
				"BIRD metric "+o.Name,
				nil,
				nil,
			),
			valueType: valueType,
			value:     value,
		})
	}

	return &collector{descriptors: descriptors}
}

// Describe sends metric descriptors to the channel.
func (c *collector) Describe(ch chan<- *prometheus.Desc) {
	for _, m := range c.descriptors {
		ch <- m.desc
	}
}

// Collect sends the observed values to the channel.
func (c *collector) Collect(ch chan<- prometheus.Metric) {
	for _, m := range c.descriptors {
		ch <- prometheus.MustNewConstMetric(m.desc, m.valueType, m.value)
	}
}
