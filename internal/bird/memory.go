package bird

import (
	"fmt"
	"strings"
)

// memoryLabels maps report labels to metric keys.
var memoryLabels = map[string]string{
	"Routing tables":   "tables",
	"Route attributes": "attributes",
	"ROA tables":       "roa",
	"Protocols":        "protocols",
	"Standby memory":   "standby",
	"Total":            "total",
}

// MemoryKeys lists every key a memory report can produce, in report order.
var MemoryKeys = []string{"tables", "attributes", "roa", "protocols", "standby", "total"}

// MemoryEntry is one category of a "show memory" report.
type MemoryEntry struct {
	Key         string
	Effective   int64
	Overhead    int64
	HasOverhead bool
}

// Total returns the memory used by the category including overhead.
func (e MemoryEntry) Total() int64 {
	return e.Effective + e.Overhead
}

// MemoryKey maps a report label to its metric key.
func MemoryKey(label string) (string, bool) {
	key, ok := memoryLabels[label]
	return key, ok
}

// ParseMemory extracts categories from "show memory" output.
// Lines without a label (the report title, the column header) are skipped.
func ParseMemory(lines []string) ([]MemoryEntry, error) {
	var entries []MemoryEntry

	for _, line := range lines {
		label, rest, found := strings.Cut(line, ":")
		if !found {
			continue
		}

		label = strings.TrimSpace(label)
		key, ok := MemoryKey(label)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownMemoryLabel, label)
		}

		entry, err := parseMemoryColumns(rest)
		if err != nil {
			return nil, fmt.Errorf("memory %q: %w", label, err)
		}
		entry.Key = key

		entries = append(entries, entry)
	}

	return entries, nil
}

// parseMemoryColumns reads either "<size>" or "<effective> <overhead>".
func parseMemoryColumns(s string) (MemoryEntry, error) {
	fields := strings.Fields(s)

	var entry MemoryEntry
	switch len(fields) {
	case 2:
		v, err := ParseSize(fields[0] + " " + fields[1])
		if err != nil {
			return entry, err
		}
		entry.Effective = v
	case 4:
		eff, err := ParseSize(fields[0] + " " + fields[1])
		if err != nil {
			return entry, err
		}
		over, err := ParseSize(fields[2] + " " + fields[3])
		if err != nil {
			return entry, err
		}
		entry.Effective = eff
		entry.Overhead = over
		entry.HasOverhead = true
	default:
		return entry, fmt.Errorf("%w: %q", ErrMalformedSize, strings.TrimSpace(s))
	}

	return entry, nil
}
