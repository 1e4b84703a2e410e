package monitor

import (
	library "gitlab.com/nunet/cudamon/lib"
	"gitlab.com/nunet/cudamon/models"
)

// ResolveManagementIndex scans management devices [0, count) in order and
// returns the first whose PCI location equals loc, or models.Unresolved.
// Devices whose PCI info cannot be read are reported to onError and skipped.
//
// Only (domain, bus, device) is compared. Two devices behind bridges that
// report the same triple would be indistinguishable; the lower index wins.
func ResolveManagementIndex(management library.ManagementLibrary, count int, loc models.PCILocation, onError func(error)) int {
	for index := 0; index < count; index++ {
		pci, err := management.PciInfo(index)
		if err != nil {
			onError(err)
			continue
		}
		if pci == loc {
			return index
		}
	}
	return models.Unresolved
}
