package search

import (
	"log/slog"
	"runtime"
	"sync"

	"github.com/prometheus/procfs"
)

// MemoryGauge samples the memory currently used by the process.
type MemoryGauge interface {
	Usage() (uint64, error)
}

// MemoryGaugeFunc adapts a function to MemoryGauge.
type MemoryGaugeFunc func() (uint64, error)

func (f MemoryGaugeFunc) Usage() (uint64, error) { return f() }

// ProcessGauge reports the resident set size read from procfs. Where procfs
// is not available it falls back to the memory the Go runtime obtained from
// the operating system.
type ProcessGauge struct {
	once sync.Once
	proc procfs.Proc
	err  error
}

func (p *ProcessGauge) Usage() (uint64, error) {
	p.once.Do(func() {
		p.proc, p.err = procfs.Self()
	})
	if p.err == nil {
		stat, err := p.proc.Stat()
		if err == nil {
			return uint64(stat.ResidentMemory()), nil
		}
	}
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	return stats.Sys, nil
}

// governor aborts a search once sampled usage exceeds threshold*limit.
// The check is advisory: a single expansion may overshoot before the next sample.
type governor struct {
	limit       uint64
	threshold   float64
	gauge       MemoryGauge
	sampleEvery int
	logger      *slog.Logger
}

func newGovernor(options Options, logger *slog.Logger) *governor {
	return &governor{
		limit:       options.MemoryLimit,
		threshold:   options.MemoryThreshold,
		gauge:       options.MemoryGauge,
		sampleEvery: options.MemorySampleEvery,
		logger:      logger,
	}
}

func (g *governor) exceeded(step int) bool {
	if g.limit == 0 || step%g.sampleEvery != 0 {
		return false
	}
	usage, err := g.gauge.Usage()
	if err != nil {
		g.logger.Debug("memory sample failed", "error", err)
		return false
	}
	ceiling := g.threshold * float64(g.limit)
	if float64(usage) > ceiling {
		g.logger.Warn("memory limit exceeded",
			"usage", usage,
			"limit", g.limit,
			"threshold", g.threshold,
		)
		return true
	}
	return false
}
