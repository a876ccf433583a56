package metric

import "strings"

// Prefix is the first segment of every metric name.
const Prefix = "bird"

// Metric groups below the family segment.
const (
	GroupMemory          = "memory"
	GroupMemoryEffective = "memory_effective"
	GroupMemoryOverhead  = "memory_overhead"
	GroupState           = "state"
	GroupRoutes          = "routes"
)

// RouteFields are the per-protocol route counters in emission order.
var RouteFields = []string{"import", "filter", "export", "prefer"}

// SafeName makes a protocol name usable as a single name segment.
func SafeName(s string) string {
	return strings.ReplaceAll(s, ".", "_")
}

// Join builds a dotted metric name.
func Join(segments ...string) string {
	return strings.Join(segments, ".")
}

// MemoryGraph is bird.<family>.<group>.
func MemoryGraph(family, group string) string {
	return Join(Prefix, family, group)
}

// MemoryName is bird.<family>.<group>.<key>.
func MemoryName(family, group, key string) string {
	return Join(MemoryGraph(family, group), key)
}

// StateGraph is bird.<family>.state.
func StateGraph(family string) string {
	return Join(Prefix, family, GroupState)
}

// StateName is bird.<family>.state.<protocol>.
func StateName(family, protocol string) string {
	return Join(StateGraph(family), SafeName(protocol))
}

// RoutesGraph is bird.<family>.routes.<protocol>.
func RoutesGraph(family, protocol string) string {
	return Join(Prefix, family, GroupRoutes, SafeName(protocol))
}

// RoutesName is bird.<family>.routes.<protocol>.<field>.
func RoutesName(family, protocol, field string) string {
	return Join(RoutesGraph(family, protocol), field)
}

// StatGraph is bird.<family>.<group>.<protocol>, group being one of
// import_updates, import_withdraws, export_updates or export_withdraws.
func StatGraph(family, group, protocol string) string {
	return Join(Prefix, family, group, SafeName(protocol))
}

// StatName is bird.<family>.<group>.<protocol>.<field>.
func StatName(family, group, protocol, field string) string {
	return Join(StatGraph(family, group, protocol), field)
}

// GraphName returns the graph a metric belongs to: its name without the
// last segment.
func GraphName(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[:i]
	}
	return name
}
