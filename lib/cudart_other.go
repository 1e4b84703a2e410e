//go:build !(linux && cgo && cuda)

package library

import (
	"fmt"

	"gitlab.com/nunet/cudamon/models"
)

// CUDASupported reports whether this binary was built with the CUDA runtime.
const CUDASupported = false

var errNoCUDA = fmt.Errorf("CUDA runtime %w (rebuild on linux with cgo and -tags cuda)", ErrNotSupported)

// CUDARuntime is a placeholder when the binary was built without CUDA; every
// call fails with ErrNotSupported.
type CUDARuntime struct{}

func NewCUDARuntime() *CUDARuntime {
	return &CUDARuntime{}
}

func (c *CUDARuntime) DeviceCount() (int, error) {
	return 0, errNoCUDA
}

func (c *CUDARuntime) DeviceProperties(int) (models.DeviceProperties, error) {
	return models.DeviceProperties{}, errNoCUDA
}

func (c *CUDARuntime) SetDevice(int) error {
	return errNoCUDA
}

func (c *CUDARuntime) MemGetInfo() (uint64, uint64, error) {
	return 0, 0, errNoCUDA
}
