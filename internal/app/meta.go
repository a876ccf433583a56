package app

import (
	"context"
	"fmt"

	"github.com/sorah/mackerel-plugin-bird/internal/bird"
	"github.com/sorah/mackerel-plugin-bird/internal/birdc"
	"github.com/sorah/mackerel-plugin-bird/internal/graphdef"
)

// Meta prints graph definitions for the protocols currently configured in
// the daemons. No counters are read or written.
func (a *App) Meta(ctx context.Context) error {
	var families []graphdef.FamilyProtocols

	for _, target := range birdc.Targets(a.Config.DualStack) {
		lines, err := a.Runner.Query(ctx, target.Family, birdc.CommandProtocols)
		if err != nil {
			if target.Optional {
				a.logger.Debug("address family unavailable", "family", target.Family, "error", err)
				continue
			}
			return fmt.Errorf("failed to query %s protocols: %w", target.Family, err)
		}

		protocols, err := bird.ParseProtocolList(lines, a.Config.Filter())
		if err != nil {
			return fmt.Errorf("failed to parse %s protocols: %w", target.Family, err)
		}

		families = append(families, graphdef.FamilyProtocols{
			Family:    target.Family.String(),
			Protocols: protocols,
		})
	}

	return graphdef.Write(a.out, graphdef.Build(families, graphdef.Options{
		MemoryEffective: a.Config.Memory.Effective,
		MemoryOverhead:  a.Config.Memory.Overhead,
	}))
}
