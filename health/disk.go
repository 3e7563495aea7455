package health

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v3/disk"
)

// DiskCheckerConfig configures the disk health checker.
type DiskCheckerConfig struct {
	// Path is the mount point or any path on the filesystem to check.
	// Default: "/"
	Path string

	// WarningThreshold is the used-space ratio that triggers warn.
	// Default: 0.8
	WarningThreshold float64

	// CriticalThreshold is the used-space ratio that triggers fail.
	// Default: 0.95
	CriticalThreshold float64
}

// DiskChecker checks free space on one filesystem.
type DiskChecker struct {
	config DiskCheckerConfig
	usage  func(ctx context.Context, path string) (*disk.UsageStat, error)
}

// NewDiskChecker creates a new disk health checker.
func NewDiskChecker(config DiskCheckerConfig) *DiskChecker {
	if config.Path == "" {
		config.Path = "/"
	}
	if config.WarningThreshold <= 0 || config.WarningThreshold >= 1 {
		config.WarningThreshold = 0.8
	}
	if config.CriticalThreshold <= 0 || config.CriticalThreshold >= 1 {
		config.CriticalThreshold = 0.95
	}
	if config.CriticalThreshold < config.WarningThreshold {
		config.CriticalThreshold = config.WarningThreshold
	}

	return &DiskChecker{config: config, usage: disk.UsageWithContext}
}

// Name returns the name of this checker.
func (d *DiskChecker) Name() string {
	return "disk"
}

// Check reports the used percentage of the filesystem as the observed value.
func (d *DiskChecker) Check(ctx context.Context) Result {
	stat, err := d.usage(ctx, d.config.Path)
	if err != nil {
		return Fail(fmt.Sprintf("disk usage unavailable for %s", d.config.Path), err)
	}

	ratio := stat.UsedPercent / 100
	switch {
	case ratio >= d.config.CriticalThreshold:
		return Fail(
			fmt.Sprintf("disk usage critical on %s: %.1f%%", d.config.Path, stat.UsedPercent),
			ErrCheckFailed,
		).WithValue(stat.UsedPercent)
	case ratio >= d.config.WarningThreshold:
		return Warn(
			fmt.Sprintf("disk usage high on %s: %.1f%%", d.config.Path, stat.UsedPercent),
		).WithValue(stat.UsedPercent)
	default:
		return Pass(
			fmt.Sprintf("disk usage normal on %s: %.1f%%", d.config.Path, stat.UsedPercent),
		).WithValue(stat.UsedPercent)
	}
}
