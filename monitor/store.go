package monitor

import (
	"slices"
	"sync"
	"sync/atomic"

	"gitlab.com/nunet/cudamon/models"
)

// Store holds the most recent snapshot. The poller publishes whole snapshots
// and readers load a pointer to one, so a reader never observes a
// half-replaced record list.
type Store struct {
	current   atomic.Pointer[models.Snapshot]
	published chan struct{}
	once      sync.Once
}

func NewStore() *Store {
	s := &Store{published: make(chan struct{})}
	s.current.Store(&models.Snapshot{})
	return s
}

// Publish replaces the current snapshot. The snapshot must not be modified
// afterwards.
func (s *Store) Publish(snapshot *models.Snapshot) {
	if snapshot == nil {
		snapshot = &models.Snapshot{}
	}
	s.current.Store(snapshot)
	s.once.Do(func() { close(s.published) })
}

// Load returns the current snapshot, an empty one before the first Publish.
// Callers must treat it as read-only.
func (s *Store) Load() *models.Snapshot {
	return s.current.Load()
}

// Records returns a copy of the current records.
func (s *Store) Records() []models.DeviceRecord {
	return slices.Clone(s.Load().Records)
}

// Published is closed once the first snapshot is available.
func (s *Store) Published() <-chan struct{} {
	return s.published
}
