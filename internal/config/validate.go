package config

import (
	"fmt"
	"strings"
)

// Validate applies defaults and checks configuration consistency.
func (c *Config) Validate() error {
	if len(c.Protocols) == 0 {
		return fmt.Errorf("at least one protocol type must be configured")
	}
	for _, p := range c.Protocols {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("protocol type cannot be empty")
		}
	}

	if c.Workdir == "" {
		c.Workdir = DefaultWorkdir
	}

	if err := c.DualStack.Validate(); err != nil {
		return err
	}

	if c.Birdc.Binary == "" || c.Birdc.BinaryIPv6 == "" {
		return fmt.Errorf("birdc binaries cannot be empty")
	}

	if c.Export.Textfile != nil && c.Export.Textfile.Path == "" {
		return fmt.Errorf("textfile export path cannot be empty")
	}

	if otel := c.Export.OTEL; otel != nil && otel.Enabled {
		if otel.Endpoint == "" {
			return fmt.Errorf("otel export endpoint cannot be empty")
		}
		if otel.Protocol == "" {
			otel.Protocol = OTLPProtocolHTTP
		}
		if otel.Timeout <= 0 {
			otel.Timeout = DefaultOTELTimeout
		}

		switch otel.Protocol {
		case OTLPProtocolHTTP, OTLPProtocolGRPC:
		default:
			return fmt.Errorf("invalid otel protocol: %s (must be http or grpc)", otel.Protocol)
		}
	}

	return nil
}
