package models

import "fmt"

// Unresolved is the management index of a compute device for which no
// management-library device shares its PCI location.
const Unresolved = -1

const bytesPerMiB = 1024 * 1024

// MemorySource names where a record's memory figures came from.
type MemorySource string

const (
	MemorySourceNVML MemorySource = "nvml"
	MemorySourceCUDA MemorySource = "cuda"
	// MemorySourceMixed summarises a snapshot whose records were read from
	// more than one source.
	MemorySourceMixed MemorySource = "mixed"
)

// PCILocation is the (domain, bus, device) triple of a physical device. It is
// the join key between the CUDA runtime and NVML enumerations.
type PCILocation struct {
	Domain uint32 `json:"domain"`
	Bus    uint32 `json:"bus"`
	Device uint32 `json:"device"`
}

// String renders the location as domain:bus:device.
func (p PCILocation) String() string {
	return fmt.Sprintf("%d:%d:%d", p.Domain, p.Bus, p.Device)
}

// Address returns the sysfs style address of function 0, in the format
// AAAA:BB:CC.0
func (p PCILocation) Address() string {
	return fmt.Sprintf("%04x:%02x:%02x.0", p.Domain, p.Bus, p.Device)
}

// DeviceProperties is the static description of a compute device as reported
// by the CUDA runtime.
type DeviceProperties struct {
	Name                string
	PCI                 PCILocation
	Major               int
	Minor               int
	MultiprocessorCount int
	ClockRateKHz        int
}

// MemoryStats is a memory usage reading in whole mebibytes.
type MemoryStats struct {
	UsedMiB  uint64
	TotalMiB uint64
}

// MemoryStatsFromBytes converts a used/total reading in bytes to whole
// mebibytes. Used is clamped to total.
func MemoryStatsFromBytes(used, total uint64) MemoryStats {
	if used > total {
		used = total
	}
	return MemoryStats{
		UsedMiB:  used / bytesPerMiB,
		TotalMiB: total / bytesPerMiB,
	}
}

// MemoryStatsFromFree converts a free/total reading in bytes, as reported by
// the CUDA runtime, to whole mebibytes.
func MemoryStatsFromFree(free, total uint64) MemoryStats {
	var used uint64
	if free < total {
		used = total - free
	}
	return MemoryStatsFromBytes(used, total)
}

// DeviceRecord describes one compute device in one poll cycle.
type DeviceRecord struct {
	ComputeIndex    int         `json:"compute_index"`
	ManagementIndex int         `json:"management_index"`
	PCI             PCILocation `json:"pci"`

	Name                   string `json:"name"`
	ComputeCapabilityMajor int    `json:"compute_capability_major"`
	ComputeCapabilityMinor int    `json:"compute_capability_minor"`
	MultiprocessorCount    int    `json:"multiprocessor_count"`
	ClockRateKHz           int    `json:"clock_rate_khz"`

	MemoryUsedMiB  uint64       `json:"memory_used_mib"`
	MemoryTotalMiB uint64       `json:"memory_total_mib"`
	MemorySource   MemorySource `json:"memory_source,omitempty"`

	// PCIDescription is the vendor and product name found in the local PCI
	// database, empty when unknown.
	PCIDescription string `json:"pci_description,omitempty"`

	// PropertiesKnown is false when the properties query failed; the
	// property fields and PCI location are then zero.
	PropertiesKnown bool `json:"properties_known"`
	// MemoryKnown is false when no memory reading could be taken.
	MemoryKnown bool `json:"memory_known"`
}

// Resolved reports whether the record was matched to a management device.
func (r DeviceRecord) Resolved() bool {
	return r.ManagementIndex != Unresolved
}

// SetProperties copies the static properties into the record.
func (r *DeviceRecord) SetProperties(p DeviceProperties) {
	r.Name = p.Name
	r.PCI = p.PCI
	r.ComputeCapabilityMajor = p.Major
	r.ComputeCapabilityMinor = p.Minor
	r.MultiprocessorCount = p.MultiprocessorCount
	r.ClockRateKHz = p.ClockRateKHz
	r.PropertiesKnown = true
}

// SetMemory copies a memory reading into the record.
func (r *DeviceRecord) SetMemory(m MemoryStats, source MemorySource) {
	r.MemoryUsedMiB = m.UsedMiB
	r.MemoryTotalMiB = m.TotalMiB
	r.MemorySource = source
	r.MemoryKnown = true
}
