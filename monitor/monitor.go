package monitor

import (
	"context"
	"errors"
	"sync"
	"time"

	"gitlab.com/nunet/cudamon/internal/background_tasks"
	"gitlab.com/nunet/cudamon/internal/config"
	library "gitlab.com/nunet/cudamon/lib"
	"gitlab.com/nunet/cudamon/models"
)

var ErrNotStarted = errors.New("monitor not set up")

// Options configure a Monitor.
type Options struct {
	Interval         time.Duration // pause between cycles
	Schedule         string        // cron expression, overrides Interval
	NVML             bool          // match and read memory through NVML when it initialises
	ReinitManagement bool          // initialise and shut down NVML in every cycle
}

// OptionsFromConfig maps the monitor section of the configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Interval:         cfg.Monitor.Interval,
		Schedule:         cfg.Monitor.Schedule,
		NVML:             cfg.Monitor.NVML,
		ReinitManagement: cfg.Monitor.ReinitManagement,
	}
}

// Monitor is the host-facing side of the poller: Setup starts background
// polling, Snapshot serves the latest result to the display, Exit stops
// polling and releases the driver libraries.
type Monitor struct {
	runtime    library.ComputeRuntime
	management library.ManagementLibrary
	describer  PCIDescriber
	opts       Options

	store     *Store
	poller    *Poller
	scheduler *background_tasks.Scheduler

	mu             sync.Mutex
	opened         bool
	managementOpen bool // NVML initialised by Open, shut down by Exit
}

// New creates a Monitor. management and describer may be nil.
func New(runtime library.ComputeRuntime, management library.ManagementLibrary, describer PCIDescriber, opts Options) *Monitor {
	return &Monitor{
		runtime:    runtime,
		management: management,
		describer:  describer,
		opts:       opts,
		store:      NewStore(),
	}
}

// Open selects the memory strategy and prepares the poller without starting
// it. Setup calls it; one-shot callers use it with PollOnce.
func (m *Monitor) Open() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open()
}

func (m *Monitor) open() error {
	if m.opened {
		return nil
	}

	memory, active := SelectMemorySource(m.runtime, m.management, m.opts.NVML)

	var opts []PollerOption
	if active {
		opts = append(opts, WithManagement(m.management, m.opts.ReinitManagement))
		if m.opts.ReinitManagement {
			// the poller brackets each cycle itself
			if err := m.management.Shutdown(); err != nil {
				logFailure(err)
			}
		} else {
			m.managementOpen = true
		}
	}
	if m.describer != nil {
		opts = append(opts, WithPCIDescriber(m.describer))
	}

	m.poller = NewPoller(m.runtime, memory, m.store, opts...)
	m.opened = true

	zlog.Sugar().Infof("monitor ready, memory source %s", memory.Name())
	return nil
}

// Setup starts polling on a background goroutine and returns immediately.
func (m *Monitor) Setup() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.scheduler != nil {
		return nil
	}
	trigger, err := background_tasks.NewTrigger(m.opts.Interval, m.opts.Schedule)
	if err != nil {
		return err
	}
	if err := m.open(); err != nil {
		return err
	}

	m.scheduler = background_tasks.NewScheduler()
	m.scheduler.AddTask(&background_tasks.Task{
		Name:        "device-poll",
		Description: "Enumerate CUDA and NVML devices and publish a snapshot",
		Trigger:     trigger,
		Function:    m.poller.Run,
	})
	m.scheduler.Start()
	return nil
}

// PollOnce runs a single cycle in the caller's goroutine. It must not be used
// while background polling is running.
func (m *Monitor) PollOnce() (*models.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.opened {
		return nil, ErrNotStarted
	}
	if m.scheduler != nil {
		return nil, errors.New("monitor is polling in the background")
	}
	return m.poller.PollOnce(), nil
}

// Snapshot returns the latest published snapshot.
func (m *Monitor) Snapshot() *models.Snapshot {
	return m.store.Load()
}

// Store exposes the snapshot store to renderers.
func (m *Monitor) Store() *Store {
	return m.store
}

// WaitForFirstSnapshot blocks until the first cycle has been published or ctx
// is done.
func (m *Monitor) WaitForFirstSnapshot(ctx context.Context) error {
	select {
	case <-m.store.Published():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Exit stops background polling, waiting for the cycle in flight, and shuts
// NVML down. It is safe to call more than once, without Setup, and
// concurrently with Setup.
func (m *Monitor) Exit() {
	// held across Stop so that no Setup slips in between stopping the
	// scheduler and shutting NVML down; the poll task never takes m.mu
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.scheduler != nil {
		m.scheduler.Stop()
		m.scheduler = nil
	}

	if m.managementOpen {
		if err := m.management.Shutdown(); err != nil {
			logFailure(err)
		}
		m.managementOpen = false
	}
	m.opened = false
}
