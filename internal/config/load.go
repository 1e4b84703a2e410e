package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// MinInterval is the shortest pause allowed between poll cycles.
const MinInterval = 100 * time.Millisecond

const (
	configName = "cudamon_config"
	configFile = configName + ".json"
	envPrefix  = "CUDAMON"
)

var (
	mu       sync.Mutex
	cfg      *Config
	v        *viper.Viper
	loadedAt string
	fs       = afero.NewOsFs()
	home     = os.Getenv("HOME")
)

// SetFs replaces the filesystem the config file is read from. Tests use an
// in-memory filesystem.
func SetFs(f afero.Fs) {
	mu.Lock()
	defer mu.Unlock()
	fs = f
	cfg = nil
	v = nil
}

func searchPaths() []string {
	return []string{
		".",
		filepath.Join(home, ".cudamon"),
		"/etc/cudamon",
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("json")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("general.debug", false)
	v.SetDefault("general.log_file", "")
	v.SetDefault("monitor.interval", time.Second)
	v.SetDefault("monitor.schedule", "")
	v.SetDefault("monitor.nvml", true)
	v.SetDefault("monitor.reinit_management", false)
	v.SetDefault("display.card_width", 44)
	v.SetDefault("display.card_height", 12)
	v.SetDefault("display.origin_x", 0)
	v.SetDefault("display.origin_y", 0)
	v.SetDefault("display.refresh_interval", 250*time.Millisecond)
}

// LoadConfig reads the first config file found in the search paths on top of
// the defaults. A missing file is not an error.
func LoadConfig() error {
	mu.Lock()
	defer mu.Unlock()
	return load()
}

func load() error {
	v = newViper()
	loadedAt = ""

	path, data, err := findConfig(searchPaths(), configFile)
	if err == nil {
		// viper only reads the buffer, the file on disk keeps its comments
		if err := v.ReadConfig(bytes.NewBuffer(removeComments(data))); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		loadedAt = path
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return fmt.Errorf("failed to decode configuration: %w", err)
	}
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = &c
	return nil
}

func ensureLoaded() {
	if cfg != nil {
		return
	}
	if err := load(); err != nil {
		// fall back to defaults only
		var c Config
		v = newViper()
		_ = v.Unmarshal(&c)
		cfg = &c
	}
}

// SetConfig overrides a single key and re-decodes the configuration.
func SetConfig(key string, value interface{}) error {
	mu.Lock()
	defer mu.Unlock()
	ensureLoaded()

	previous := v.Get(key)
	v.Set(key, value)

	var c Config
	err := v.Unmarshal(&c)
	if err != nil {
		err = fmt.Errorf("failed to decode configuration: %w", err)
	} else {
		err = c.Validate()
	}
	if err != nil {
		// keep the last valid value in effect
		v.Set(key, previous)
		return err
	}
	cfg = &c
	return nil
}

// BindFlag makes a command-line flag override key when the flag was set.
func BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil || !flag.Changed {
		return nil
	}
	return SetConfig(key, flag.Value.String())
}

// GetConfig returns the current configuration, loading it on first use.
func GetConfig() *Config {
	mu.Lock()
	defer mu.Unlock()
	ensureLoaded()
	c := *cfg
	return &c
}

// ConfigFile returns the path of the file the configuration was read from,
// empty when only defaults and environment are in effect.
func ConfigFile() string {
	mu.Lock()
	defer mu.Unlock()
	ensureLoaded()
	return loadedAt
}

// Validate checks value ranges that would make the monitor misbehave.
func (c Config) Validate() error {
	// a bare JSON number decodes as nanoseconds, the floor rejects it too
	if c.Monitor.Interval < MinInterval {
		return fmt.Errorf("monitor.interval must be at least %s, got %s", MinInterval, c.Monitor.Interval)
	}
	if c.Display.CardWidth < 3 || c.Display.CardHeight < 3 {
		return fmt.Errorf("display card must be at least 3x3, got %dx%d", c.Display.CardWidth, c.Display.CardHeight)
	}
	if c.Display.OriginX < 0 || c.Display.OriginY < 0 {
		return fmt.Errorf("display origin must not be negative, got (%d,%d)", c.Display.OriginX, c.Display.OriginY)
	}
	if c.Display.RefreshInterval <= 0 {
		return fmt.Errorf("display.refresh_interval must be positive, got %s", c.Display.RefreshInterval)
	}
	return nil
}

func findConfig(paths []string, filename string) (string, []byte, error) {
	for _, path := range paths {
		fullPath := filepath.Join(path, filename)
		exists, err := afero.Exists(fs, fullPath)
		if err != nil || !exists {
			continue
		}
		config, err := afero.ReadFile(fs, fullPath)
		if err != nil {
			return "", nil, err
		}
		return fullPath, config, nil
	}

	return "", nil, fmt.Errorf("%s not found in any of the paths", filename)
}

func removeComments(configBytes []byte) []byte {
	re := regexp.MustCompile(`(?m)^\s*//.*$`) // whole-line '//' comments only, URLs in values survive
	return re.ReplaceAll(configBytes, nil)
}
