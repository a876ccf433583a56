package birdc

import "fmt"

// DualStackMode controls whether the IPv6 daemon is queried.
type DualStackMode string

const (
	// DualStackAuto queries IPv6 when the birdc6 client answers.
	DualStackAuto DualStackMode = "auto"
	DualStackOn   DualStackMode = "on"
	DualStackOff  DualStackMode = "off"
)

// Validate checks the mode value.
func (m DualStackMode) Validate() error {
	switch m {
	case DualStackAuto, DualStackOn, DualStackOff:
		return nil
	default:
		return fmt.Errorf("invalid dual-stack mode: %s (must be auto, on, or off)", m)
	}
}

// Target is a family to collect.
type Target struct {
	Family Family

	// Optional targets are probed by their first query: when it fails the
	// family is treated as unavailable instead of failing the run.
	Optional bool
}

// Targets returns the families to query for mode, in collection order.
func Targets(mode DualStackMode) []Target {
	switch mode {
	case DualStackOff:
		return []Target{{Family: IPv4}}
	case DualStackOn:
		return []Target{{Family: IPv4}, {Family: IPv6}}
	default:
		return []Target{{Family: IPv4}, {Family: IPv6, Optional: true}}
	}
}
