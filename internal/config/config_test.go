package config

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	SetFs(afero.NewMemMapFs())

	require.NoError(t, LoadConfig())
	c := GetConfig()

	assert.Equal(t, time.Second, c.Monitor.Interval)
	assert.Empty(t, c.Monitor.Schedule)
	assert.True(t, c.Monitor.NVML)
	assert.False(t, c.Monitor.ReinitManagement)
	assert.Equal(t, 44, c.Display.CardWidth)
	assert.Equal(t, 12, c.Display.CardHeight)
	assert.Equal(t, 250*time.Millisecond, c.Display.RefreshInterval)
	assert.Empty(t, ConfigFile())
}

func TestLoadConfigFromFile(t *testing.T) {
	mem := afero.NewMemMapFs()
	content := `{
	// poll every two seconds
	"monitor": {"interval": "2s", "nvml": false},
	"display": {"card_width": 50, "origin_y": 3}
}
`
	require.NoError(t, afero.WriteFile(mem, "/etc/cudamon/cudamon_config.json", []byte(content), 0644))
	SetFs(mem)

	require.NoError(t, LoadConfig())
	c := GetConfig()

	assert.Equal(t, 2*time.Second, c.Monitor.Interval)
	assert.False(t, c.Monitor.NVML)
	assert.Equal(t, 50, c.Display.CardWidth)
	assert.Equal(t, 3, c.Display.OriginY)
	assert.Equal(t, 12, c.Display.CardHeight, "unset keys keep their defaults")
	assert.Equal(t, "/etc/cudamon/cudamon_config.json", ConfigFile())
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"tiny card", `{"display": {"card_height": 1}}`, "at least 3x3"},
		{"zero interval", `{"monitor": {"interval": "0s"}}`, "monitor.interval must be at least 100ms"},
		{"bare number interval", `{"monitor": {"interval": 1000}}`, "got 1µs"},
		{"interval below floor", `{"monitor": {"interval": "50ms"}}`, "monitor.interval must be at least"},
		{"negative interval", `{"monitor": {"interval": "-1s"}}`, "monitor.interval must be at least"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(mem, "cudamon_config.json", []byte(tt.content), 0644))
			SetFs(mem)

			err := LoadConfig()
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestIntervalFloorAccepted(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, "cudamon_config.json", []byte(`{"monitor": {"interval": "100ms"}}`), 0644))
	SetFs(mem)

	require.NoError(t, LoadConfig())
	assert.Equal(t, MinInterval, GetConfig().Monitor.Interval)

	assert.Error(t, SetConfig("monitor.interval", "0s"))
	assert.Equal(t, MinInterval, GetConfig().Monitor.Interval)
}

func TestLoadConfigMalformedFile(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, "cudamon_config.json", []byte(`{"monitor": `), 0644))
	SetFs(mem)

	assert.Error(t, LoadConfig())
	// GetConfig still serves defaults
	assert.Equal(t, time.Second, GetConfig().Monitor.Interval)
}

func TestSetConfig(t *testing.T) {
	SetFs(afero.NewMemMapFs())

	require.NoError(t, SetConfig("monitor.schedule", "@every 5s"))
	assert.Equal(t, "@every 5s", GetConfig().Monitor.Schedule)

	assert.Error(t, SetConfig("display.refresh_interval", "0s"))
}

func TestBindFlag(t *testing.T) {
	SetFs(afero.NewMemMapFs())

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Duration("interval", time.Second, "")
	flags.Bool("no-nvml", false, "")
	require.NoError(t, flags.Parse([]string{"--interval", "3s"}))

	require.NoError(t, BindFlag("monitor.interval", flags.Lookup("interval")))
	require.NoError(t, BindFlag("monitor.nvml", flags.Lookup("no-nvml")), "unchanged flags are ignored")

	c := GetConfig()
	assert.Equal(t, 3*time.Second, c.Monitor.Interval)
	assert.True(t, c.Monitor.NVML)
}

func TestRemoveComments(t *testing.T) {
	in := []byte("{\n  // comment\n  \"url\": \"http://example.com\"\n}\n")
	out := string(removeComments(in))
	assert.NotContains(t, out, "comment")
	assert.Contains(t, out, "http://example.com")
}

func TestSetConfigKeepsLastValidValue(t *testing.T) {
	SetFs(afero.NewMemMapFs())

	require.NoError(t, SetConfig("display.card_width", 60))
	assert.Error(t, SetConfig("display.card_width", 1))
	assert.Equal(t, 60, GetConfig().Display.CardWidth)

	require.NoError(t, SetConfig("display.origin_x", 2), "a rejected value does not poison later updates")
}
