package library

import (
	"strings"

	"github.com/jaypipes/ghw"
	"github.com/jaypipes/ghw/pkg/pci"

	"gitlab.com/nunet/cudamon/models"
	"gitlab.com/nunet/cudamon/utils"
)

// ghw's placeholder for names missing from the PCI ID database
const unknownName = "unknown"

type deviceLookup interface {
	GetDevice(address string) *pci.Device
}

// PCIDatabase describes PCI locations with the vendor and product names of
// the local PCI ID database. Descriptions are cached per address since a
// device does not change its identity while the process runs.
type PCIDatabase struct {
	lookup deviceLookup
	cache  utils.SyncMap[string, string]
}

// NewPCIDatabase scans the PCI bus once.
func NewPCIDatabase() (*PCIDatabase, error) {
	info, err := ghw.PCI()
	if err != nil {
		return nil, err
	}
	return &PCIDatabase{lookup: info}, nil
}

// Describe returns "<vendor> <product> (<driver>)" for the device at loc, or
// the empty string when the address is not known.
func (db *PCIDatabase) Describe(loc models.PCILocation) string {
	address := loc.Address()
	return db.cache.GetOrCompute(address, func() string {
		return describe(db.lookup.GetDevice(address))
	})
}

func describe(dev *pci.Device) string {
	if dev == nil {
		return ""
	}

	var parts []string
	if dev.Vendor != nil && dev.Vendor.Name != "" && dev.Vendor.Name != unknownName {
		parts = append(parts, dev.Vendor.Name)
	}
	if dev.Product != nil && dev.Product.Name != "" && dev.Product.Name != unknownName {
		parts = append(parts, dev.Product.Name)
	}
	desc := strings.Join(parts, " ")
	if dev.Driver != "" {
		if desc == "" {
			return dev.Driver
		}
		desc += " (" + dev.Driver + ")"
	}
	return desc
}
