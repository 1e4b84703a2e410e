package backend

import (
	"fmt"

	library "gitlab.com/nunet/cudamon/lib"
	"gitlab.com/nunet/cudamon/monitor"
)

// Drivers binds the commands to the real CUDA runtime, NVML and PCI database.
type Drivers struct{}

func (d *Drivers) Runtime() (library.ComputeRuntime, error) {
	if !library.CUDASupported {
		return nil, fmt.Errorf("CUDA runtime: %w, rebuild with -tags cuda", library.ErrNotSupported)
	}
	return library.NewCUDARuntime(), nil
}

func (d *Drivers) Management() library.ManagementLibrary {
	if !library.NVMLSupported {
		return nil
	}
	// a failed scan proves nothing, let NVML decide
	found, err := library.HasNVIDIAController()
	if err == nil && !found {
		zlog.Sugar().Infof("no NVIDIA controller on the PCI bus, NVML disabled")
		return nil
	}
	return library.NewNVML()
}

func (d *Drivers) Describer() monitor.PCIDescriber {
	db, err := library.NewPCIDatabase()
	if err != nil {
		zlog.Sugar().Warnf("PCI database unavailable, cards will carry no PCI description: %v", err)
		return nil
	}
	return db
}
