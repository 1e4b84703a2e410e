package display

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"gitlab.com/nunet/cudamon/models"
)

const (
	DefaultCardWidth  = 44
	DefaultCardHeight = 12

	// a card needs its two border rows and columns plus one cell of content
	minCardSize = 3

	unknown = "unknown"
)

// Renderer draws device cards with a theme.
type Renderer struct {
	Theme Theme
}

// Draw renders records with the default theme.
func Draw(records []models.DeviceRecord, originX, originY, width, height int) string {
	return Renderer{Theme: DefaultTheme}.Draw(records, originX, originY, width, height)
}

// Draw renders one bordered card of width x height terminal cells per record,
// stacked vertically in record order. Card i starts at row originY+i*height
// and column originX of the returned block. Content that does not fit a card
// is truncated. No records renders the empty string.
func (r Renderer) Draw(records []models.DeviceRecord, originX, originY, width, height int) string {
	if len(records) == 0 {
		return ""
	}
	width = max(width, minCardSize)
	height = max(height, minCardSize)
	originX = max(originX, 0)
	originY = max(originY, 0)

	indent := strings.Repeat(" ", originX)
	lines := make([]string, 0, originY+len(records)*height)
	for i := 0; i < originY; i++ {
		lines = append(lines, "")
	}
	for _, record := range records {
		for _, line := range strings.Split(r.card(record, width, height), "\n") {
			lines = append(lines, indent+line)
		}
	}
	return strings.Join(lines, "\n")
}

func (r Renderer) card(record models.DeviceRecord, width, height int) string {
	innerWidth, innerHeight := width-2, height-2

	body := r.fields(record)
	if len(body) > innerHeight {
		body = body[:innerHeight]
	}
	for i, line := range body {
		body[i] = ansi.Truncate(line, innerWidth, "…")
	}

	border := r.Theme.Border
	if record.PropertiesKnown && !record.Resolved() {
		border = r.Theme.Unresolved
	}

	// lipgloss sizes the content box; the border is drawn outside it
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(innerWidth).
		Height(innerHeight).
		Render(strings.Join(body, "\n"))
}

func (r Renderer) fields(record models.DeviceRecord) []string {
	label := lipgloss.NewStyle().Foreground(r.Theme.Label)
	value := lipgloss.NewStyle().Foreground(r.Theme.Value)
	missing := lipgloss.NewStyle().Foreground(r.Theme.Unknown)

	line := func(name, v string, known bool) string {
		style := value
		if !known {
			style, v = missing, unknown
		}
		return label.Render(name+":") + " " + style.Render(v)
	}

	props := record.PropertiesKnown
	lines := []string{
		line("Device", strconv.Itoa(record.ComputeIndex), true),
		line("SMI Device", strconv.Itoa(record.ManagementIndex), record.Resolved()),
		line("PCI", record.PCI.String(), props),
		line("Model Name", record.Name, props),
		line("Version", fmt.Sprintf("%d.%d", record.ComputeCapabilityMajor, record.ComputeCapabilityMinor), props),
		line("Mem Used", mebibytes(record.MemoryUsedMiB)+source(record), record.MemoryKnown),
		line("Mem Total", mebibytes(record.MemoryTotalMiB), record.MemoryKnown),
		line("Multiprocessors", strconv.Itoa(record.MultiprocessorCount), props),
		line("Clock Rate", humanize.Comma(int64(record.ClockRateKHz))+" kHz", props),
	}
	if record.PCIDescription != "" {
		lines = append(lines, missing.Render(record.PCIDescription))
	}
	return lines
}

func mebibytes(v uint64) string {
	return humanize.Comma(int64(v)) + " MiB"
}

func source(record models.DeviceRecord) string {
	if record.MemorySource == "" {
		return ""
	}
	return " (" + string(record.MemorySource) + ")"
}
