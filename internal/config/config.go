package config

import "time"

type Config struct {
	General `mapstructure:"general"`
	Monitor `mapstructure:"monitor"`
	Display `mapstructure:"display"`
}

type General struct {
	Debug   bool   `mapstructure:"debug"`
	LogFile string `mapstructure:"log_file"`
}

type Monitor struct {
	Interval time.Duration `mapstructure:"interval"` // pause between the end of one poll cycle and the start of the next
	Schedule string        `mapstructure:"schedule"` // cron expression, overrides Interval when set
	NVML     bool          `mapstructure:"nvml"`     // use NVML for PCI matching and memory statistics
	// ReinitManagement re-initialises NVML at the start of every cycle and
	// shuts it down at the end, instead of once per process.
	ReinitManagement bool `mapstructure:"reinit_management"`
}

type Display struct {
	CardWidth       int           `mapstructure:"card_width"`  // in terminal columns
	CardHeight      int           `mapstructure:"card_height"` // in terminal rows
	OriginX         int           `mapstructure:"origin_x"`
	OriginY         int           `mapstructure:"origin_y"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
}
