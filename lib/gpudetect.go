package library

import (
	"strings"

	"github.com/jaypipes/ghw"
	"github.com/jaypipes/ghw/pkg/pci"
)

// display-class PCI devices; compute-only boards report "3D controller"
var controllerClasses = []string{
	"display controller",
	"vga compatible controller",
	"3d controller",
	"2d controller",
}

// HasNVIDIAController reports whether the PCI bus carries an NVIDIA display
// or compute controller. Without one there is nothing for NVML to manage.
func HasNVIDIAController() (bool, error) {
	gpu, err := ghw.GPU()
	if err != nil {
		return false, err
	}

	for _, card := range gpu.GraphicsCards {
		if isNVIDIAController(card.DeviceInfo) {
			return true, nil
		}
	}
	return false, nil
}

func isNVIDIAController(dev *pci.Device) bool {
	if dev == nil || dev.Class == nil || dev.Vendor == nil {
		return false
	}

	className := strings.ToLower(dev.Class.Name)
	for _, class := range controllerClasses {
		if strings.Contains(className, class) {
			return strings.Contains(strings.ToLower(dev.Vendor.Name), "nvidia")
		}
	}
	return false
}
