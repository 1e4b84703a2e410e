package monitor

import (
	"sync"

	library "gitlab.com/nunet/cudamon/lib"
	"gitlab.com/nunet/cudamon/models"
)

func driverError(lib, op string) error {
	return &library.DriverError{Library: lib, Op: op, Code: 999, Description: "unknown error", File: "fakes_test.go", Line: 1}
}

type fakeMemory struct {
	free, total uint64
}

// fakeRuntime is an in-memory CUDA runtime.
type fakeRuntime struct {
	mu       sync.Mutex
	devices  []models.DeviceProperties
	memory   []fakeMemory
	countErr error
	propsErr map[int]error
	memErr   error
	selected int
	selects  []int
}

func (f *fakeRuntime) DeviceCount() (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.countErr != nil {
		return 0, f.countErr
	}
	return len(f.devices), nil
}

func (f *fakeRuntime) DeviceProperties(index int) (models.DeviceProperties, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.propsErr[index]; err != nil {
		return models.DeviceProperties{}, err
	}
	return f.devices[index], nil
}

func (f *fakeRuntime) SetDevice(index int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.selected = index
	f.selects = append(f.selects, index)
	return nil
}

func (f *fakeRuntime) MemGetInfo() (uint64, uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.memErr != nil {
		return 0, 0, f.memErr
	}
	m := f.memory[f.selected]
	return m.free, m.total, nil
}

type fakeManagedDevice struct {
	pci         models.PCILocation
	used, total uint64
}

// fakeManagement is an in-memory NVML.
type fakeManagement struct {
	mu        sync.Mutex
	devices   []fakeManagedDevice
	initErr   error
	countErr  error
	pciErr    map[int]error
	memErr    error
	inits     int
	shutdowns int
	memReads  []int
}

func (f *fakeManagement) Init() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.initErr != nil {
		return f.initErr
	}
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
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.countErr != nil {
		return 0, f.countErr
	}
	return len(f.devices), nil
}

func (f *fakeManagement) PciInfo(index int) (models.PCILocation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.pciErr[index]; err != nil {
		return models.PCILocation{}, err
	}
	return f.devices[index].pci, nil
}

func (f *fakeManagement) MemoryInfo(index int) (uint64, uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.memReads = append(f.memReads, index)
	if f.memErr != nil {
		return 0, 0, f.memErr
	}
	return f.devices[index].used, f.devices[index].total, nil
}

type fakeDescriber map[models.PCILocation]string

func (f fakeDescriber) Describe(loc models.PCILocation) string {
	return f[loc]
}

func gpu(name string, domain, bus, device uint32) models.DeviceProperties {
	return models.DeviceProperties{
		Name:                name,
		PCI:                 models.PCILocation{Domain: domain, Bus: bus, Device: device},
		Major:               8,
		Minor:               6,
		MultiprocessorCount: 84,
		ClockRateKHz:        1695000,
	}
}

const gib = 1024 * 1024 * 1024
