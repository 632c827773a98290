// Package sysmon samples system-wide CPU and memory usage for the dashboard.
package sysmon

import (
	"context"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats is one snapshot of machine-wide resource usage. Fields are zero
// when the platform does not report them.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0, across all cores
	MemPercent float64 // 0.0 .. 100.0
	MemUsed    uint64
	MemTotal   uint64
}

// Sample collects a snapshot. CPU usage is the delta since the previous
// call, so the first sample of a process may read 0.
func Sample(ctx context.Context) Stats {
	var s Stats
	if pcts, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = clampPercent(pcts[0])
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil && vm != nil {
		s.MemPercent = clampPercent(vm.UsedPercent)
		s.MemUsed, s.MemTotal = vm.Used, vm.Total
	}
	return s
}

func clampPercent(p float64) float64 {
	return max(0, min(p, 100))
}
