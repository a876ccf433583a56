package bird

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultFilter = Filter{Protocols: []string{"Kernel", "BGP", "OSPF"}}

const protocolsAll = `name     proto    table    state  since       info
device1  Device   master   up     2017-05-10
Preference:     240
Input filter:   ACCEPT
Output filter:  REJECT
Routes:         0 imported, 0 exported, 0 preferred

kernel1  Kernel   master   up     2017-05-10
Preference:     10
Routes:         10 imported, 4 exported, 10 preferred
Route change stats:     received   rejected   filtered    ignored   accepted
Import updates:             12          0          0          0         12
Import withdraws:            2          0        ---          0          2
Export updates:             30         10          0        ---         20
Export withdraws:            5        ---        ---        ---          5

bgp.peer1 BGP     master   start  2017-05-10  Connect
Preference:     100
Neighbor address: 192.0.2.1

ospf1    OSPF     master   running 2017-05-10  Running
Routes:   4 imported, 2 filtered, 3 exported`

func TestParseProtocols(t *testing.T) {
	protocols, err := ParseProtocols(strings.Split(protocolsAll, "\n"), defaultFilter)
	require.NoError(t, err)
	require.Len(t, protocols, 3)

	kernel := protocols[0]
	assert.Equal(t, "kernel1", kernel.Name)
	assert.Equal(t, "Kernel", kernel.Proto)
	assert.Equal(t, "master", kernel.Table)
	assert.Equal(t, &Routes{Imported: 10, Exported: 4, Preferred: 10}, kernel.Routes)
	assert.Equal(t, 4, kernel.StateCode())
	assert.Equal(t, []StatRow{
		{Group: "import_updates", Fields: []StatField{
			{"receive", 12}, {"reject", 0}, {"filter", 0}, {"ignore", 0}, {"accept", 12},
		}},
		{Group: "import_withdraws", Fields: []StatField{
			{"receive", 2}, {"reject", 0}, {"ignore", 0}, {"accept", 2},
		}},
		{Group: "export_updates", Fields: []StatField{
			{"receive", 30}, {"reject", 10}, {"filter", 0}, {"accept", 20},
		}},
		{Group: "export_withdraws", Fields: []StatField{
			{"receive", 5}, {"accept", 5},
		}},
	}, kernel.Stats)

	bgp := protocols[1]
	assert.Equal(t, "bgp.peer1", bgp.Name)
	assert.Equal(t, "Connect", bgp.Info)
	assert.Nil(t, bgp.Routes)
	assert.Equal(t, StateNoRoutes, bgp.StateCode())

	ospf := protocols[2]
	assert.Equal(t, &Routes{Imported: 4, Filtered: 2, Exported: 3}, ospf.Routes)
	assert.Equal(t, StateUnknown, ospf.StateCode())
}

func TestParseProtocols_RoutesLine(t *testing.T) {
	lines := []string{
		"kernel1  Kernel   master   up     2017-05-10",
		"  Routes:   4 imported, 2 filtered, 3 exported",
	}

	protocols, err := ParseProtocols(lines, defaultFilter)
	require.NoError(t, err)
	require.Len(t, protocols, 1)
	assert.Equal(t, &Routes{Imported: 4, Filtered: 2, Exported: 3, Preferred: 0}, protocols[0].Routes)
}

func TestParseProtocols_DashFieldsOmitted(t *testing.T) {
	lines := []string{
		"kernel1  Kernel   master   up     2017-05-10",
		"  Import updates:          5          -          -          -          2",
	}

	protocols, err := ParseProtocols(lines, defaultFilter)
	require.NoError(t, err)
	require.Len(t, protocols, 1)
	assert.Equal(t, []StatRow{
		{Group: "import_updates", Fields: []StatField{{"receive", 5}, {"accept", 2}}},
	}, protocols[0].Stats)
}

func TestParseProtocols_Filter(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{
			name:   "default types",
			filter: defaultFilter,
			want:   []string{"kernel1", "bgp.peer1", "ospf1"},
		},
		{
			name:   "ignore by name",
			filter: Filter{Protocols: []string{"Kernel", "BGP", "OSPF"}, Ignore: []string{"bgp.peer1"}},
			want:   []string{"kernel1", "ospf1"},
		},
		{
			name:   "device only",
			filter: Filter{Protocols: []string{"Device"}},
			want:   []string{"device1"},
		},
		{
			name:   "ignore is exact match",
			filter: Filter{Protocols: []string{"BGP"}, Ignore: []string{"bgp"}},
			want:   []string{"bgp.peer1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			protocols, err := ParseProtocols(strings.Split(protocolsAll, "\n"), tt.filter)
			require.NoError(t, err)

			var names []string
			for _, p := range protocols {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestParseProtocols_MalformedHeader(t *testing.T) {
	lines := []string{
		"kernel1  Kernel   master   up     2017-05-10",
		"",
		"broken line",
		"Routes: 1 imported, 1 exported",
	}

	_, err := ParseProtocols(lines, defaultFilter)
	assert.ErrorIs(t, err, ErrMalformedHeader)
}

func TestParseProtocolList(t *testing.T) {
	lines := []string{
		"name     proto    table    state  since       info",
		"device1  Device   master   up     2017-05-10",
		"kernel1  Kernel   master   up     2017-05-10",
		"bgp1     BGP      master   up     2017-05-10  Established",
		"",
	}

	protocols, err := ParseProtocolList(lines, defaultFilter)
	require.NoError(t, err)
	require.Len(t, protocols, 2)
	assert.Equal(t, "kernel1", protocols[0].Name)
	assert.Equal(t, "bgp1", protocols[1].Name)
	assert.Equal(t, "Established", protocols[1].Info)
}

func TestLookupState(t *testing.T) {
	for name, want := range map[string]int{"down": 0, "start": 1, "wait": 2, "feed": 3, "up": 4, "stop": 5, "flush": 6} {
		got, ok := LookupState(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}

	_, ok := LookupState("running")
	assert.False(t, ok)
	assert.NotEqual(t, StateUnknown, StateNoRoutes)
}
