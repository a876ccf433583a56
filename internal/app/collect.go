package app

import (
	"context"
	"fmt"

	"github.com/sorah/mackerel-plugin-bird/internal/bird"
	"github.com/sorah/mackerel-plugin-bird/internal/birdc"
	"github.com/sorah/mackerel-plugin-bird/internal/metric"
)

// collectFamily queries memory and protocol reports for one family. An
// optional family whose first query fails yields no observations.
func (a *App) collectFamily(ctx context.Context, target birdc.Target, differ *metric.Differ, ts int64) ([]metric.Observation, error) {
	family := target.Family

	memoryLines, err := a.Runner.Query(ctx, family, birdc.CommandMemory)
	if err != nil {
		if target.Optional {
			a.logger.Debug("address family unavailable", "family", family, "error", err)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query %s memory: %w", family, err)
	}

	entries, err := bird.ParseMemory(memoryLines)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s memory: %w", family, err)
	}

	protocolLines, err := a.Runner.Query(ctx, family, birdc.CommandProtocolsAll)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s protocols: %w", family, err)
	}

	protocols, err := bird.ParseProtocols(protocolLines, a.Config.Filter())
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s protocols: %w", family, err)
	}

	a.logger.Debug("parsed reports", "family", family, "memory", len(entries), "protocols", len(protocols))

	obs := a.memoryObservations(family.String(), entries, ts)
	for _, p := range protocols {
		obs = append(obs, protocolObservations(family.String(), p, differ, ts)...)
	}

	return obs, nil
}

func (a *App) memoryObservations(family string, entries []bird.MemoryEntry, ts int64) []metric.Observation {
	var obs []metric.Observation

	for _, e := range entries {
		obs = append(obs, gauge(metric.MemoryName(family, metric.GroupMemory, e.Key), e.Total(), ts))

		if a.Config.Memory.Effective {
			obs = append(obs, gauge(metric.MemoryName(family, metric.GroupMemoryEffective, e.Key), e.Effective, ts))
		}
		if a.Config.Memory.Overhead && e.HasOverhead {
			obs = append(obs, gauge(metric.MemoryName(family, metric.GroupMemoryOverhead, e.Key), e.Overhead, ts))
		}
	}

	return obs
}

func protocolObservations(family string, p bird.Protocol, differ *metric.Differ, ts int64) []metric.Observation {
	obs := []metric.Observation{
		gauge(metric.StateName(family, p.Name), int64(p.StateCode()), ts),
	}

	if r := p.Routes; r != nil {
		values := []int64{r.Imported, r.Filtered, r.Exported, r.Preferred}
		for i, field := range metric.RouteFields {
			obs = append(obs, gauge(metric.RoutesName(family, p.Name, field), values[i], ts))
		}
	}

	for _, row := range p.Stats {
		for _, f := range row.Fields {
			name := metric.StatName(family, row.Group, p.Name, f.Name)
			obs = append(obs, metric.Observation{
				Name:       name,
				Value:      differ.Diff(name, f.Value, ts),
				Timestamp:  ts,
				Type:       metric.MetricTypeCounter,
				Cumulative: f.Value,
			})
		}
	}

	return obs
}

func gauge(name string, value, ts int64) metric.Observation {
	return metric.Observation{
		Name:      name,
		Value:     value,
		Timestamp: ts,
		Type:      metric.MetricTypeGauge,
	}
}
