package config

import (
	"time"

	"github.com/sorah/mackerel-plugin-bird/internal/bird"
	"github.com/sorah/mackerel-plugin-bird/internal/birdc"
)

const (
	// Environment variables read by the plugin.
	EnvMeta    = "MACKEREL_AGENT_PLUGIN_META"
	EnvWorkdir = "MACKEREL_PLUGIN_WORKDIR"

	DefaultWorkdir     = "/tmp"
	DefaultOTELTimeout = 10 * time.Second
)

// DefaultProtocols are the protocol types collected when none are configured.
var DefaultProtocols = []string{"Kernel", "BGP", "OSPF"}

// Config holds the complete plugin configuration.
type Config struct {
	Protocols []string            `yaml:"protocols"`
	Ignore    []string            `yaml:"ignore,omitempty"`
	Memory    MemoryConfig        `yaml:"memory"`
	Workdir   string              `yaml:"workdir"`
	DualStack birdc.DualStackMode `yaml:"dual_stack"`
	Birdc     BirdcConfig         `yaml:"birdc"`
	Export    ExportConfig        `yaml:"export"`
}

// MemoryConfig enables the per-column memory breakdown.
type MemoryConfig struct {
	Effective bool `yaml:"effective"`
	Overhead  bool `yaml:"overhead"`
}

// BirdcConfig locates the client binaries and control sockets.
type BirdcConfig struct {
	Binary     string `yaml:"binary"`
	BinaryIPv6 string `yaml:"binary_ipv6"`
	Socket     string `yaml:"socket,omitempty"`
	SocketIPv6 string `yaml:"socket_ipv6,omitempty"`
}

// ExportConfig defines secondary sinks fed with the same observations.
type ExportConfig struct {
	Textfile *TextfileExportConfig `yaml:"textfile,omitempty"`
	OTEL     *OTELExportConfig     `yaml:"otel,omitempty"`
}

// TextfileExportConfig writes a node_exporter textfile collector file.
type TextfileExportConfig struct {
	Path string `yaml:"path"`
}

// OTELExportConfig defines OTLP push settings.
type OTELExportConfig struct {
	Enabled  bool              `yaml:"enabled"`
	Endpoint string            `yaml:"endpoint"`
	Protocol OTLPProtocol      `yaml:"protocol"`
	Insecure bool              `yaml:"insecure"`
	Timeout  time.Duration     `yaml:"timeout"`
	Resource map[string]string `yaml:"resource,omitempty"`
	Headers  map[string]string `yaml:"headers,omitempty"`
}

// OTLPProtocol selects the OTLP transport.
type OTLPProtocol string

const (
	OTLPProtocolHTTP OTLPProtocol = "http"
	OTLPProtocolGRPC OTLPProtocol = "grpc"
)

// Default returns the configuration used without a config file.
func Default() *Config {
	return &Config{
		Protocols: append([]string(nil), DefaultProtocols...),
		Workdir:   DefaultWorkdir,
		DualStack: birdc.DualStackAuto,
		Birdc: BirdcConfig{
			Binary:     "birdc",
			BinaryIPv6: "birdc6",
		},
	}
}

// Filter returns the protocol filter described by the configuration.
func (c *Config) Filter() bird.Filter {
	return bird.Filter{
		Protocols: c.Protocols,
		Ignore:    c.Ignore,
	}
}

// BirdcClient returns the client settings for birdc.NewExecRunner.
func (c *Config) BirdcClient() birdc.Config {
	return birdc.Config{
		Binary:     c.Birdc.Binary,
		BinaryIPv6: c.Birdc.BinaryIPv6,
		Socket:     c.Birdc.Socket,
		SocketIPv6: c.Birdc.SocketIPv6,
	}
}
