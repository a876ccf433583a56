// Package birdc runs the BIRD command line client and returns its output.
package birdc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"regexp"
	"strings"
)

// Commands understood by the client.
const (
	CommandMemory       = "show memory"
	CommandProtocols    = "show protocols"
	CommandProtocolsAll = "show protocols all"
)

const (
	defaultBinary     = "birdc"
	defaultBinaryIPv6 = "birdc6"
)

// ErrCommandFailed is returned when the client cannot be started or exits non-zero.
var ErrCommandFailed = errors.New("birdc command failed")

var bannerPattern = regexp.MustCompile(`^BIRD .* ready\.$`)

// Family selects the daemon instance to query.
type Family int

const (
	IPv4 Family = iota
	IPv6
)

// String returns the family label used in metric names.
func (f Family) String() string {
	if f == IPv6 {
		return "ipv6"
	}
	return "ipv4"
}

// Runner executes a client command for a family and returns its output lines.
type Runner interface {
	Query(ctx context.Context, family Family, command string) ([]string, error)
}

// Config locates the client binaries and control sockets.
type Config struct {
	Binary     string
	BinaryIPv6 string
	Socket     string
	SocketIPv6 string
}

// ExecRunner runs the client as a subprocess.
type ExecRunner struct {
	cfg    Config
	logger *slog.Logger
}

// Compile-time guard.
var _ Runner = (*ExecRunner)(nil)

// NewExecRunner creates a runner; empty binaries fall back to birdc and birdc6.
func NewExecRunner(cfg Config, logger *slog.Logger) *ExecRunner {
	if cfg.Binary == "" {
		cfg.Binary = defaultBinary
	}
	if cfg.BinaryIPv6 == "" {
		cfg.BinaryIPv6 = defaultBinaryIPv6
	}
	return &ExecRunner{cfg: cfg, logger: logger}
}

// Query runs command against the daemon for family.
func (r *ExecRunner) Query(ctx context.Context, family Family, command string) ([]string, error) {
	binary, socket := r.cfg.Binary, r.cfg.Socket
	if family == IPv6 {
		binary, socket = r.cfg.BinaryIPv6, r.cfg.SocketIPv6
	}

	var args []string
	if socket != "" {
		args = append(args, "-s", socket)
	}
	args = append(args, strings.Fields(command)...)

	r.logger.Debug("running birdc", "binary", binary, "args", args)

	out, err := exec.CommandContext(ctx, binary, args...).CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q: %w", ErrCommandFailed, binary, command, err)
	}

	lines := SplitOutput(out)
	r.logger.Debug("birdc finished", "binary", binary, "lines", len(lines))

	return lines, nil
}

// SplitOutput splits client output into trimmed lines and drops the
// "BIRD <version> ready." banner.
func SplitOutput(out []byte) []string {
	raw := strings.Split(strings.TrimRight(string(out), "\n"), "\n")

	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if bannerPattern.MatchString(line) {
			continue
		}
		lines = append(lines, line)
	}

	return lines
}
