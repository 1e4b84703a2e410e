package models

import (
	"slices"
	"time"
)

// Snapshot is the complete set of device records produced by one poll cycle.
// A published snapshot is never mutated; the next cycle replaces it.
type Snapshot struct {
	Cycle        uint64         `json:"cycle"`
	TakenAt      time.Time      `json:"taken_at"`
	MemorySource MemorySource   `json:"memory_source"` // source of the records' readings, see Poller
	Errors       int            `json:"errors"` // failed driver calls during the cycle
	Records      []DeviceRecord `json:"records"`
}

// Len returns the number of records, zero for a nil snapshot.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Records)
}

// Clone returns a deep copy that the caller may modify.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return &Snapshot{}
	}
	c := *s
	c.Records = slices.Clone(s.Records)
	return &c
}
