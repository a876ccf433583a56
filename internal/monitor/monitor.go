package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/process"
)

// Monitor reports the plugin's own resource usage for a run.
type Monitor struct {
	logger *slog.Logger
	proc   *process.Process
	start  time.Time
}

// New creates a monitor; the run duration is measured from this call.
func New(logger *slog.Logger) *Monitor {
	m := &Monitor{
		logger: logger,
		start:  time.Now(),
	}

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		logger.Debug("failed to get process handle", "error", err)
		return m
	}
	m.proc = proc

	return m
}

// Report logs CPU, memory and elapsed time at debug level.
func (m *Monitor) Report(ctx context.Context) {
	if !m.logger.Enabled(ctx, slog.LevelDebug) {
		return
	}

	attrs := []slog.Attr{
		slog.Duration("elapsed", time.Since(m.start)),
	}

	if m.proc != nil {
		if times, err := m.proc.TimesWithContext(ctx); err == nil {
			attrs = append(attrs,
				slog.String("cpu_user", fmt.Sprintf("%.3fs", times.User)),
				slog.String("cpu_sys", fmt.Sprintf("%.3fs", times.System)),
			)
		} else {
			m.logger.Debug("failed to get CPU times", "error", err)
		}

		if mem, err := m.proc.MemoryInfoWithContext(ctx); err == nil {
			attrs = append(attrs, slog.String("rss", fmt.Sprintf("%.2fMB", mb(mem.RSS))))
		} else {
			m.logger.Debug("failed to get memory info", "error", err)
		}
	}

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	attrs = append(attrs,
		slog.String("heap", fmt.Sprintf("%.2fMB", mb(ms.HeapAlloc))),
		slog.Uint64("gc", uint64(ms.NumGC)),
	)

	m.logger.LogAttrs(ctx, slog.LevelDebug, "resource", attrs...)
}

func mb(b uint64) float64 {
	return float64(b) / (1024 * 1024)
}
