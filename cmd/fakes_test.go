package cmd

import (
	"sync"

	library "gitlab.com/nunet/cudamon/lib"
	"gitlab.com/nunet/cudamon/models"
	"gitlab.com/nunet/cudamon/monitor"
)

const mib = 1024 * 1024

type fakeRuntime struct {
	mu       sync.Mutex
	devices  []models.DeviceProperties
	free     uint64
	total    uint64
	selected int
}

func (f *fakeRuntime) DeviceCount() (int, error) {
	return len(f.devices), nil
}

func (f *fakeRuntime) DeviceProperties(index int) (models.DeviceProperties, error) {
	return f.devices[index], nil
}

func (f *fakeRuntime) SetDevice(index int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.selected = index
	return nil
}

func (f *fakeRuntime) MemGetInfo() (uint64, uint64, error) {
	return f.free, f.total, nil
}

type fakeManagement struct {
	mu        sync.Mutex
	pci       []models.PCILocation
	used      uint64
	total     uint64
	inits     int
	shutdowns int
}

func (f *fakeManagement) Init() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inits++
	return nil
}

func (f *fakeManagement) Shutdown() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shutdowns++
	return nil
}

func (f *fakeManagement) DeviceCount() (int, error) {
	return len(f.pci), nil
}

func (f *fakeManagement) PciInfo(index int) (models.PCILocation, error) {
	return f.pci[index], nil
}

func (f *fakeManagement) MemoryInfo(index int) (uint64, uint64, error) {
	return f.used, f.total, nil
}

// fakeDevices implements backend.Devices.
type fakeDevices struct {
	runtime    *fakeRuntime
	management *fakeManagement
	runtimeErr error
}

func (f *fakeDevices) Runtime() (library.ComputeRuntime, error) {
	if f.runtimeErr != nil {
		return nil, f.runtimeErr
	}
	return f.runtime, nil
}

func (f *fakeDevices) Management() library.ManagementLibrary {
	if f.management == nil {
		return nil
	}
	return f.management
}

func (f *fakeDevices) Describer() monitor.PCIDescriber {
	return nil
}

func newFakeDevices() *fakeDevices {
	loc := models.PCILocation{Domain: 0, Bus: 1, Device: 2}
	return &fakeDevices{
		runtime: &fakeRuntime{
			devices: []models.DeviceProperties{{
				Name:                "GPU-X",
				PCI:                 loc,
				Major:               7,
				Minor:               5,
				MultiprocessorCount: 80,
				ClockRateKHz:        1500000,
			}},
			free:  6144 * mib,
			total: 8192 * mib,
		},
		management: &fakeManagement{
			pci:   []models.PCILocation{loc},
			used:  1000 * mib,
			total: 8192 * mib,
		},
	}
}
