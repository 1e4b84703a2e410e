package display

import "github.com/shirou/gopsutil/host"

// HostName returns the name of the machine for the display header.
func HostName() string {
	info, err := host.Info()
	if err != nil || info.Hostname == "" {
		zlog.Sugar().Debugf("host info unavailable: %v", err)
		return "localhost"
	}
	return info.Hostname
}
