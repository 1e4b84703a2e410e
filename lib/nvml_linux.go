//go:build linux && cgo

package library

import (
	"github.com/NVIDIA/go-nvml/pkg/nvml"

	"gitlab.com/nunet/cudamon/models"
)

// NVMLSupported reports whether this binary can load NVML.
const NVMLSupported = true

// NVML calls the NVIDIA Management Library through go-nvml. The library is
// loaded by Init and released by Shutdown.
type NVML struct{}

func NewNVML() *NVML {
	return &NVML{}
}

func nvmlError(op string, ret nvml.Return) error {
	return newDriverError(1, LibraryNVML, op, int(ret), nvml.ErrorString(ret))
}

func (n *NVML) Init() error {
	if ret := nvml.Init(); ret != nvml.SUCCESS {
		return nvmlError("nvmlInit", ret)
	}
	return nil
}

func (n *NVML) Shutdown() error {
	if ret := nvml.Shutdown(); ret != nvml.SUCCESS {
		return nvmlError("nvmlShutdown", ret)
	}
	return nil
}

func (n *NVML) DeviceCount() (int, error) {
	count, ret := nvml.DeviceGetCount()
	if ret != nvml.SUCCESS {
		return 0, nvmlError("nvmlDeviceGetCount", ret)
	}
	return count, nil
}

func (n *NVML) handle(index int) (nvml.Device, error) {
	device, ret := nvml.DeviceGetHandleByIndex(index)
	if ret != nvml.SUCCESS {
		return device, nvmlError("nvmlDeviceGetHandleByIndex", ret)
	}
	return device, nil
}

func (n *NVML) PciInfo(index int) (models.PCILocation, error) {
	device, err := n.handle(index)
	if err != nil {
		return models.PCILocation{}, err
	}

	info, ret := device.GetPciInfo()
	if ret != nvml.SUCCESS {
		return models.PCILocation{}, nvmlError("nvmlDeviceGetPciInfo", ret)
	}
	return models.PCILocation{
		Domain: info.Domain,
		Bus:    info.Bus,
		Device: info.Device,
	}, nil
}

func (n *NVML) MemoryInfo(index int) (uint64, uint64, error) {
	device, err := n.handle(index)
	if err != nil {
		return 0, 0, err
	}

	memory, ret := device.GetMemoryInfo()
	if ret != nvml.SUCCESS {
		return 0, 0, nvmlError("nvmlDeviceGetMemoryInfo", ret)
	}
	return memory.Used, memory.Total, nil
}
