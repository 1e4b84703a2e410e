//go:build !(linux && cgo)

package library

import (
	"fmt"

	"gitlab.com/nunet/cudamon/models"
)

// NVMLSupported reports whether this binary can load NVML.
const NVMLSupported = false

var errNoNVML = fmt.Errorf("NVML %w (requires linux and cgo)", ErrNotSupported)

// NVML is a placeholder on platforms go-nvml does not build for.
type NVML struct{}

func NewNVML() *NVML {
	return &NVML{}
}

func (n *NVML) Init() error {
	return errNoNVML
}

func (n *NVML) Shutdown() error {
	return nil
}

func (n *NVML) DeviceCount() (int, error) {
	return 0, errNoNVML
}

func (n *NVML) PciInfo(int) (models.PCILocation, error) {
	return models.PCILocation{}, errNoNVML
}

func (n *NVML) MemoryInfo(int) (uint64, uint64, error) {
	return 0, 0, errNoNVML
}
