//go:build linux && cgo && cuda

package library

/*
#cgo LDFLAGS: -lcudart
#include <cuda_runtime_api.h>

// cudaGetDeviceProperties is a macro for its _v2 variant on recent
// toolkits, which cgo cannot call directly.
static cudaError_t cudamon_get_device_properties(struct cudaDeviceProp *prop, int device) {
	return cudaGetDeviceProperties(prop, device);
}
*/
import "C"

import "gitlab.com/nunet/cudamon/models"

// CUDASupported reports whether this binary was built with the CUDA runtime.
const CUDASupported = true

// CUDARuntime calls libcudart.
type CUDARuntime struct{}

func NewCUDARuntime() *CUDARuntime {
	return &CUDARuntime{}
}

func cudaError(op string, status C.cudaError_t) error {
	return newDriverError(1, LibraryCUDA, op, int(status), C.GoString(C.cudaGetErrorString(status)))
}

func (c *CUDARuntime) DeviceCount() (int, error) {
	var count C.int
	if status := C.cudaGetDeviceCount(&count); status != C.cudaSuccess {
		return 0, cudaError("cudaGetDeviceCount", status)
	}
	return int(count), nil
}

func (c *CUDARuntime) DeviceProperties(index int) (models.DeviceProperties, error) {
	var prop C.struct_cudaDeviceProp
	if status := C.cudamon_get_device_properties(&prop, C.int(index)); status != C.cudaSuccess {
		return models.DeviceProperties{}, cudaError("cudaGetDeviceProperties", status)
	}

	return models.DeviceProperties{
		Name: C.GoString(&prop.name[0]),
		PCI: models.PCILocation{
			Domain: uint32(prop.pciDomainID),
			Bus:    uint32(prop.pciBusID),
			Device: uint32(prop.pciDeviceID),
		},
		Major:               int(prop.major),
		Minor:               int(prop.minor),
		MultiprocessorCount: int(prop.multiProcessorCount),
		ClockRateKHz:        int(prop.clockRate),
	}, nil
}

func (c *CUDARuntime) SetDevice(index int) error {
	if status := C.cudaSetDevice(C.int(index)); status != C.cudaSuccess {
		return cudaError("cudaSetDevice", status)
	}
	return nil
}

func (c *CUDARuntime) MemGetInfo() (uint64, uint64, error) {
	var free, total C.size_t
	if status := C.cudaMemGetInfo(&free, &total); status != C.cudaSuccess {
		return 0, 0, cudaError("cudaMemGetInfo", status)
	}
	return uint64(free), uint64(total), nil
}
