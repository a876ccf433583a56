// Package graphdef builds the mackerel-agent graph definition document
// describing every metric a collection run can emit.
package graphdef

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/sorah/mackerel-plugin-bird/internal/bird"
	"github.com/sorah/mackerel-plugin-bird/internal/metric"
)

// Marker is printed before the JSON document.
const Marker = "# mackerel-agent-plugin"

// Graph units understood by mackerel-agent.
const (
	UnitInteger = "integer"
	UnitBytes   = "bytes"
)

var memoryLabels = map[string]string{
	"tables":     "Routing tables",
	"attributes": "Route attributes",
	"roa":        "ROA tables",
	"protocols":  "Protocols",
	"standby":    "Standby memory",
	"total":      "Total",
}

var routeLabels = map[string]string{
	"import": "Imported",
	"filter": "Filtered",
	"export": "Exported",
	"prefer": "Preferred",
}

// Metric is a single series of a graph.
type Metric struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	Stacked bool   `json:"stacked"`
}

// Graph describes one graph.
type Graph struct {
	Label   string   `json:"label"`
	Unit    string   `json:"unit"`
	Metrics []Metric `json:"metrics"`
}

// Output is the document printed in metadata mode.
type Output struct {
	Graphs map[string]Graph `json:"graphs"`
}

// Options mirrors the collection flags that change the metric set.
type Options struct {
	MemoryEffective bool
	MemoryOverhead  bool
}

// FamilyProtocols lists the protocols currently present for a family.
type FamilyProtocols struct {
	Family    string
	Protocols []bird.Protocol
}

// Build returns graph definitions for the given families and protocols.
func Build(families []FamilyProtocols, opts Options) Output {
	out := Output{Graphs: make(map[string]Graph)}

	for _, fp := range families {
		out.addMemory(fp.Family, metric.GroupMemory, "memory")
		if opts.MemoryEffective {
			out.addMemory(fp.Family, metric.GroupMemoryEffective, "memory (effective)")
		}
		if opts.MemoryOverhead {
			out.addMemory(fp.Family, metric.GroupMemoryOverhead, "memory (overhead)")
		}

		if len(fp.Protocols) == 0 {
			continue
		}

		state := Graph{
			Label: fmt.Sprintf("BIRD %s protocol state", fp.Family),
			Unit:  UnitInteger,
		}
		for _, p := range fp.Protocols {
			state.Metrics = append(state.Metrics, Metric{Name: metric.SafeName(p.Name), Label: p.Name})
			out.addRoutes(fp.Family, p.Name)
			for _, group := range bird.StatGroups {
				out.addStats(fp.Family, group, p.Name)
			}
		}
		out.Graphs[metric.StateGraph(fp.Family)] = state
	}

	return out
}

func (o Output) addMemory(family, group, title string) {
	g := Graph{
		Label: fmt.Sprintf("BIRD %s %s", family, title),
		Unit:  UnitBytes,
	}
	for _, key := range bird.MemoryKeys {
		g.Metrics = append(g.Metrics, Metric{
			Name:    key,
			Label:   memoryLabels[key],
			Stacked: key != "total",
		})
	}
	o.Graphs[metric.MemoryGraph(family, group)] = g
}

func (o Output) addRoutes(family, protocol string) {
	g := Graph{
		Label: fmt.Sprintf("BIRD %s routes: %s", family, protocol),
		Unit:  UnitInteger,
	}
	for _, field := range metric.RouteFields {
		g.Metrics = append(g.Metrics, Metric{Name: field, Label: routeLabels[field]})
	}
	o.Graphs[metric.RoutesGraph(family, protocol)] = g
}

func (o Output) addStats(family, group, protocol string) {
	g := Graph{
		Label: fmt.Sprintf("BIRD %s %s: %s", family, strings.ReplaceAll(group, "_", " "), protocol),
		Unit:  UnitInteger,
	}
	for _, field := range bird.StatFieldNames {
		g.Metrics = append(g.Metrics, Metric{Name: field, Label: field})
	}
	o.Graphs[metric.StatGraph(family, group, protocol)] = g
}

// Write prints the marker line followed by the document on one line.
func Write(w io.Writer, out Output) error {
	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("failed to marshal graph definitions: %w", err)
	}

	if _, err := fmt.Fprintf(w, "%s\n%s\n", Marker, data); err != nil {
		return fmt.Errorf("failed to write graph definitions: %w", err)
	}
	return nil
}
