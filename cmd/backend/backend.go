package backend

import (
	library "gitlab.com/nunet/cudamon/lib"
	"gitlab.com/nunet/cudamon/monitor"
)

// Devices abstracts the vendor libraries the commands poll, so that commands
// can run against fakes in tests.
type Devices interface {
	// Runtime returns the CUDA runtime, or an error when this binary was
	// built without it.
	Runtime() (library.ComputeRuntime, error)
	// Management returns NVML, nil when it is not available on this build.
	Management() library.ManagementLibrary
	// Describer returns the local PCI database, nil when it cannot be read.
	Describer() monitor.PCIDescriber
}
