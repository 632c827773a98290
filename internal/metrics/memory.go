package metrics

import "runtime"

// MemorySnapshot is a point-in-time heap reading shown by the dashboard.
type MemorySnapshot struct {
	HeapAlloc uint64 // bytes in use
	Sys       uint64 // bytes obtained from the OS
	NumGC     uint32
}

// ReadMemory samples runtime memory statistics.
func ReadMemory() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{HeapAlloc: m.HeapAlloc, Sys: m.Sys, NumGC: m.NumGC}
}
