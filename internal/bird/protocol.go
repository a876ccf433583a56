package bird

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

var (
	headerPattern = regexp.MustCompile(`^(\S+)\s+(\S+)\s+(\S+)\s+(\S+)\s+(\S+)(?:\s+(.*))?$`)
	routesPattern = regexp.MustCompile(`Routes:\s+(\d+) imported(, (\d+) filtered)?, (\d+) exported(, (\d+) preferred)?`)
	statsPattern  = regexp.MustCompile(`(Import|Export) (updates|withdraws):\s+(\d+|-+)\s+(\d+|-+)\s+(\d+|-+)\s+(\d+|-+)\s+(\d+|-+)`)
	dashPattern   = regexp.MustCompile(`^-+$`)
)

// StatFieldNames are the route change stat columns in report order.
var StatFieldNames = []string{"receive", "reject", "filter", "ignore", "accept"}

// StatGroups are the route change stat rows, named as "<direction>_<kind>".
var StatGroups = []string{"import_updates", "import_withdraws", "export_updates", "export_withdraws"}

// Protocol is a single protocol block from "show protocols [all]".
type Protocol struct {
	Name  string
	Proto string
	Table string
	State string
	Since string
	Info  string

	// Routes is nil when the block carried no "Routes:" line.
	Routes *Routes
	Stats  []StatRow
}

// Routes holds the route counters of a protocol.
type Routes struct {
	Imported  int64
	Filtered  int64
	Exported  int64
	Preferred int64
}

// StatRow is one "Import updates:"-style row. Fields reported as dashes
// are not applicable and are left out.
type StatRow struct {
	Group  string
	Fields []StatField
}

// StatField is a single column of a StatRow.
type StatField struct {
	Name  string
	Value int64
}

// StateCode returns the numeric state used for the state metric.
func (p Protocol) StateCode() int {
	if p.Routes == nil {
		return StateNoRoutes
	}
	if code, ok := LookupState(p.State); ok {
		return code
	}
	return StateUnknown
}

// Filter selects protocols by type and instance name.
type Filter struct {
	Protocols []string
	Ignore    []string
}

// Allows reports whether a protocol passes the filter.
func (f Filter) Allows(p Protocol) bool {
	if !slices.Contains(f.Protocols, p.Proto) {
		return false
	}
	return !slices.Contains(f.Ignore, p.Name)
}

// ParseHeader splits a protocol header line into its columns.
func ParseHeader(line string) (Protocol, error) {
	m := headerPattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return Protocol{}, fmt.Errorf("%w: %q", ErrMalformedHeader, line)
	}

	return Protocol{
		Name:  m[1],
		Proto: m[2],
		Table: m[3],
		State: m[4],
		Since: m[5],
		Info:  m[6],
	}, nil
}

// isColumnHeader reports whether line is the "name proto table ..." title row.
func isColumnHeader(line string) bool {
	fields := strings.Fields(line)
	return len(fields) >= 2 &&
		strings.EqualFold(fields[0], "name") &&
		strings.EqualFold(fields[1], "proto")
}

// ParseProtocolList parses "show protocols" output, one protocol per line.
func ParseProtocolList(lines []string, f Filter) ([]Protocol, error) {
	var protocols []Protocol

	for _, line := range lines {
		if strings.TrimSpace(line) == "" || isColumnHeader(line) {
			continue
		}

		p, err := ParseHeader(line)
		if err != nil {
			return nil, err
		}
		if f.Allows(p) {
			protocols = append(protocols, p)
		}
	}

	return protocols, nil
}

// ParseProtocols parses "show protocols all" output. Blocks are separated
// by blank lines and begin with a protocol header line.
func ParseProtocols(lines []string, f Filter) ([]Protocol, error) {
	var protocols []Protocol

	for _, block := range splitBlocks(lines) {
		if isColumnHeader(block[0]) {
			block = block[1:]
			if len(block) == 0 {
				continue
			}
		}

		p, err := ParseHeader(block[0])
		if err != nil {
			return nil, err
		}
		if !f.Allows(p) {
			continue
		}

		parseDetails(&p, block[1:])
		protocols = append(protocols, p)
	}

	return protocols, nil
}

// splitBlocks groups non-blank lines into blank-line separated blocks.
func splitBlocks(lines []string) [][]string {
	var (
		blocks  [][]string
		current []string
	)

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}

	return blocks
}

func parseDetails(p *Protocol, lines []string) {
	for _, line := range lines {
		if m := routesPattern.FindStringSubmatch(line); m != nil {
			p.Routes = &Routes{
				Imported:  atoi(m[1]),
				Filtered:  atoi(m[3]),
				Exported:  atoi(m[4]),
				Preferred: atoi(m[6]),
			}
			continue
		}

		if m := statsPattern.FindStringSubmatch(line); m != nil {
			row := StatRow{Group: strings.ToLower(m[1]) + "_" + m[2]}
			for i, name := range StatFieldNames {
				raw := m[3+i]
				if dashPattern.MatchString(raw) {
					continue
				}
				row.Fields = append(row.Fields, StatField{Name: name, Value: atoi(raw)})
			}
			p.Stats = append(p.Stats, row)
		}
	}
}

// atoi parses a regexp-validated digit string; empty optional groups yield 0.
func atoi(s string) int64 {
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
