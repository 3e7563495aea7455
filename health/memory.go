package health

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v3/mem"
)

// MemoryCheckerConfig configures the memory health checker.
type MemoryCheckerConfig struct {
	// WarningThreshold is the heap usage ratio that triggers warn.
	// Value should be between 0 and 1. Default: 0.8 (80%)
	WarningThreshold float64

	// CriticalThreshold is the heap usage ratio that triggers fail.
	// Value should be between 0 and 1. Default: 0.95 (95%)
	CriticalThreshold float64

	// MaxAlloc is the maximum expected allocation in bytes.
	// If zero, the host's total memory is used.
	// Default: 0 (auto-detect)
	MaxAlloc uint64
}

// MemoryChecker compares the Go heap against a memory ceiling.
type MemoryChecker struct {
	config MemoryCheckerConfig
	total  func(ctx context.Context) (uint64, error)
}

// NewMemoryChecker creates a new memory health checker.
func NewMemoryChecker(config MemoryCheckerConfig) *MemoryChecker {
	if config.WarningThreshold <= 0 || config.WarningThreshold >= 1 {
		config.WarningThreshold = 0.8
	}
	if config.CriticalThreshold <= 0 || config.CriticalThreshold >= 1 {
		config.CriticalThreshold = 0.95
	}
	if config.CriticalThreshold < config.WarningThreshold {
		config.CriticalThreshold = config.WarningThreshold + 0.1
		if config.CriticalThreshold > 1 {
			config.CriticalThreshold = 0.99
		}
	}

	return &MemoryChecker{config: config, total: hostMemory}
}

func hostMemory(ctx context.Context) (uint64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, err
	}
	return vm.Total, nil
}

// Name returns the name of this checker.
func (m *MemoryChecker) Name() string {
	return "memory"
}

// Check reports the heap allocation in megabytes as the observed value.
func (m *MemoryChecker) Check(ctx context.Context) Result {
	select {
	case <-ctx.Done():
		return Fail("context cancelled", ctx.Err())
	default:
	}

	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	allocMB := float64(stats.Alloc) / (1024 * 1024)

	maxAlloc := m.config.MaxAlloc
	if maxAlloc == 0 {
		if total, err := m.total(ctx); err == nil {
			maxAlloc = total
		}
	}
	if maxAlloc == 0 {
		return Pass("memory ceiling unavailable").WithValue(allocMB)
	}

	usageRatio := float64(stats.Alloc) / float64(maxAlloc)

	if usageRatio >= m.config.CriticalThreshold {
		return Fail(
			fmt.Sprintf("memory usage critical: %.1f%%", usageRatio*100),
			ErrCheckFailed,
		).WithValue(allocMB)
	}

	if usageRatio >= m.config.WarningThreshold {
		return Warn(
			fmt.Sprintf("memory usage high: %.1f%%", usageRatio*100),
		).WithValue(allocMB)
	}

	return Pass(
		fmt.Sprintf("memory usage normal: %.1f%%", usageRatio*100),
	).WithValue(allocMB)
}
