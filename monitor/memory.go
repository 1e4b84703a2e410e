package monitor

import (
	"runtime"

	library "gitlab.com/nunet/cudamon/lib"
	"gitlab.com/nunet/cudamon/models"
)

// MemoryStatsSource reads the memory usage of one device. computeIndex is the
// CUDA ordinal and managementIndex the matched NVML index, possibly
// models.Unresolved. The returned source names where the figures came from.
type MemoryStatsSource interface {
	Name() models.MemorySource
	MemoryInfo(computeIndex, managementIndex int) (models.MemoryStats, models.MemorySource, error)
}

// RuntimeMemorySource selects the device in the CUDA runtime and asks for its
// free and total memory.
type RuntimeMemorySource struct {
	runtime library.ComputeRuntime
}

func NewRuntimeMemorySource(runtime library.ComputeRuntime) *RuntimeMemorySource {
	return &RuntimeMemorySource{runtime: runtime}
}

func (s *RuntimeMemorySource) Name() models.MemorySource {
	return models.MemorySourceCUDA
}

func (s *RuntimeMemorySource) MemoryInfo(computeIndex, _ int) (models.MemoryStats, models.MemorySource, error) {
	// the selected device is per OS thread
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := s.runtime.SetDevice(computeIndex); err != nil {
		return models.MemoryStats{}, models.MemorySourceCUDA, err
	}
	free, total, err := s.runtime.MemGetInfo()
	if err != nil {
		return models.MemoryStats{}, models.MemorySourceCUDA, err
	}
	return models.MemoryStatsFromFree(free, total), models.MemorySourceCUDA, nil
}

// ManagementMemorySource reads NVML memory info for devices matched to an NVML
// index and defers to fallback for the others.
type ManagementMemorySource struct {
	management library.ManagementLibrary
	fallback   MemoryStatsSource
}

func NewManagementMemorySource(management library.ManagementLibrary, fallback MemoryStatsSource) *ManagementMemorySource {
	return &ManagementMemorySource{management: management, fallback: fallback}
}

func (s *ManagementMemorySource) Name() models.MemorySource {
	return models.MemorySourceNVML
}

func (s *ManagementMemorySource) MemoryInfo(computeIndex, managementIndex int) (models.MemoryStats, models.MemorySource, error) {
	if managementIndex == models.Unresolved {
		return s.fallback.MemoryInfo(computeIndex, managementIndex)
	}
	used, total, err := s.management.MemoryInfo(managementIndex)
	if err != nil {
		return models.MemoryStats{}, models.MemorySourceNVML, err
	}
	return models.MemoryStatsFromBytes(used, total), models.MemorySourceNVML, nil
}

// SelectMemorySource picks the memory strategy once, at startup. NVML is used
// when it is enabled and initialises; the CUDA runtime otherwise. The
// returned flag reports whether NVML is active, in which case it is left
// initialised and the caller owns the matching Shutdown.
func SelectMemorySource(runtime library.ComputeRuntime, management library.ManagementLibrary, enabled bool) (MemoryStatsSource, bool) {
	fallback := NewRuntimeMemorySource(runtime)
	if !enabled || management == nil {
		return fallback, false
	}

	if err := management.Init(); err != nil {
		logFailure(err)
		zlog.Sugar().Warnf("NVML unavailable, reading memory from the CUDA runtime")
		return fallback, false
	}
	return NewManagementMemorySource(management, fallback), true
}
