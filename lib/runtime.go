package library

import "gitlab.com/nunet/cudamon/models"

// ComputeRuntime is the part of the CUDA runtime API the monitor uses.
// Device indices are CUDA ordinals.
type ComputeRuntime interface {
	DeviceCount() (int, error)
	DeviceProperties(index int) (models.DeviceProperties, error)
	// SetDevice selects the device later MemGetInfo calls refer to.
	SetDevice(index int) error
	// MemGetInfo returns free and total bytes of the selected device.
	MemGetInfo() (free, total uint64, err error)
}

// ManagementLibrary is the part of NVML the monitor uses. Device indices are
// NVML indices, which need not agree with CUDA ordinals.
type ManagementLibrary interface {
	Init() error
	Shutdown() error
	DeviceCount() (int, error)
	PciInfo(index int) (models.PCILocation, error)
	// MemoryInfo returns used and total bytes.
	MemoryInfo(index int) (used, total uint64, err error)
}
