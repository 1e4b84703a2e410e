package monitor

import (
	"time"

	library "gitlab.com/nunet/cudamon/lib"
	"gitlab.com/nunet/cudamon/models"
)

// PCIDescriber names the device at a PCI location, empty when unknown.
type PCIDescriber interface {
	Describe(loc models.PCILocation) string
}

// Poller builds one snapshot per cycle from the CUDA runtime enumeration,
// matching each device to its NVML counterpart by PCI location.
type Poller struct {
	runtime    library.ComputeRuntime
	management library.ManagementLibrary // nil when NVML is not in use
	memory     MemoryStatsSource
	describer  PCIDescriber // optional
	store      *Store

	// reinit brackets every cycle with management Init and Shutdown.
	reinit bool

	cycle uint64
	now   func() time.Time
}

type PollerOption func(*Poller)

// WithManagement enables PCI matching against an NVML instance. With reinit
// the library is initialised at the start of each cycle and shut down at its
// end; otherwise it must already be initialised.
func WithManagement(management library.ManagementLibrary, reinit bool) PollerOption {
	return func(p *Poller) {
		p.management = management
		p.reinit = reinit
	}
}

// WithPCIDescriber attaches PCI descriptions to every record.
func WithPCIDescriber(describer PCIDescriber) PollerOption {
	return func(p *Poller) {
		p.describer = describer
	}
}

// WithClock overrides the time source of snapshot timestamps.
func WithClock(now func() time.Time) PollerOption {
	return func(p *Poller) {
		p.now = now
	}
}

func NewPoller(runtime library.ComputeRuntime, memory MemoryStatsSource, store *Store, opts ...PollerOption) *Poller {
	p := &Poller{
		runtime: runtime,
		memory:  memory,
		store:   store,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run is the scheduler task body: one cycle, published. Driver failures are
// logged inside the cycle, so it never fails.
func (p *Poller) Run() error {
	p.PollOnce()
	return nil
}

// PollOnce performs one full cycle and publishes its snapshot to the store.
func (p *Poller) PollOnce() *models.Snapshot {
	var failed failures
	p.cycle++

	snapshot := &models.Snapshot{
		Cycle:   p.cycle,
		TakenAt: p.now(),
	}

	count, err := p.runtime.DeviceCount()
	if err != nil {
		failed.record(err)
		count = 0
	}

	managementCount, release := p.openManagement(&failed)

	snapshot.Records = make([]models.DeviceRecord, 0, count)
	for index := 0; index < count; index++ {
		snapshot.Records = append(snapshot.Records, p.pollDevice(index, managementCount, &failed))
	}

	release()
	snapshot.Errors = failed.count
	snapshot.MemorySource = p.memorySource(snapshot.Records)

	p.store.Publish(snapshot)
	return snapshot
}

// openManagement returns the number of NVML devices to match against, zero
// when NVML is not in use or did not answer, and the function that ends the
// cycle's use of the library.
func (p *Poller) openManagement(failed *failures) (int, func()) {
	noop := func() {}
	if p.management == nil {
		return 0, noop
	}

	release := noop
	if p.reinit {
		if err := p.management.Init(); err != nil {
			failed.record(err)
			return 0, noop
		}
		release = func() {
			if err := p.management.Shutdown(); err != nil {
				failed.record(err)
			}
		}
	}

	count, err := p.management.DeviceCount()
	if err != nil {
		failed.record(err)
		return 0, release
	}
	return count, release
}

func (p *Poller) pollDevice(index, managementCount int, failed *failures) models.DeviceRecord {
	record := models.DeviceRecord{
		ComputeIndex:    index,
		ManagementIndex: models.Unresolved,
	}

	props, err := p.runtime.DeviceProperties(index)
	if err != nil {
		failed.record(err)
	} else {
		record.SetProperties(props)
		if managementCount > 0 {
			record.ManagementIndex = ResolveManagementIndex(p.management, managementCount, props.PCI, failed.record)
		}
		if p.describer != nil {
			record.PCIDescription = p.describer.Describe(props.PCI)
		}
	}

	stats, source, err := p.memory.MemoryInfo(index, record.ManagementIndex)
	if err != nil {
		failed.record(err)
	} else {
		record.SetMemory(stats, source)
	}

	return record
}

// memorySource names the source that actually served the records' memory
// readings: mixed when fallback and NVML readings coexist, the configured
// strategy when no reading was taken.
func (p *Poller) memorySource(records []models.DeviceRecord) models.MemorySource {
	var source models.MemorySource
	for _, record := range records {
		if !record.MemoryKnown {
			continue
		}
		switch source {
		case "":
			source = record.MemorySource
		case record.MemorySource:
		default:
			return models.MemorySourceMixed
		}
	}
	if source == "" {
		return p.memory.Name()
	}
	return source
}
