package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gitlab.com/nunet/cudamon/internal/config"
	"gitlab.com/nunet/cudamon/models"
)

// SnapshotSource hands out the latest published snapshot.
type SnapshotSource interface {
	Load() *models.Snapshot
}

// Options configure the live display.
type Options struct {
	CardWidth       int
	CardHeight      int
	OriginX         int
	OriginY         int
	RefreshInterval time.Duration
	HostName        string
}

// OptionsFromConfig maps the display section of the configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		CardWidth:       cfg.Display.CardWidth,
		CardHeight:      cfg.Display.CardHeight,
		OriginX:         cfg.Display.OriginX,
		OriginY:         cfg.Display.OriginY,
		RefreshInterval: cfg.Display.RefreshInterval,
	}
}

// refreshMsg drives the periodic reload of the snapshot.
type refreshMsg time.Time

// Model is the bubbletea model of the live display. It never talks to the
// drivers: every refresh it loads whatever snapshot the poller published
// last and redraws the cards.
type Model struct {
	source   SnapshotSource
	opts     Options
	renderer Renderer
	keys     KeyMap
	help     help.Model

	snapshot *models.Snapshot
	viewport viewport.Model
	ready    bool // a window size is known
	quitting bool
}

func NewModel(source SnapshotSource, opts Options) Model {
	if opts.CardWidth == 0 {
		opts.CardWidth = DefaultCardWidth
	}
	if opts.CardHeight == 0 {
		opts.CardHeight = DefaultCardHeight
	}
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = 250 * time.Millisecond
	}
	if opts.HostName == "" {
		opts.HostName = HostName()
	}

	return Model{
		source:   source,
		opts:     opts,
		renderer: Renderer{Theme: DefaultTheme},
		keys:     DefaultKeyMap,
		help:     help.New(),
		snapshot: source.Load(),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.opts.RefreshInterval, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshMsg:
		m.snapshot = m.source.Load()
		m.syncViewport()
		return m, m.tick()

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-lipgloss.Height(m.header())-lipgloss.Height(m.footer()), 1)
		m.ready = true
		m.syncViewport()
		return m, nil
	}

	if m.ready {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// syncViewport replaces the viewport content, keeping the scroll position.
func (m *Model) syncViewport() {
	if !m.ready {
		return
	}
	offset := m.viewport.YOffset
	m.viewport.SetContent(m.body())
	m.viewport.SetYOffset(offset)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	body := m.body()
	if m.ready {
		body = m.viewport.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.header(), body, m.footer())
}

func (m Model) body() string {
	snapshot := m.snapshot
	faint := lipgloss.NewStyle().Foreground(m.renderer.Theme.Help)
	switch {
	case snapshot == nil || snapshot.Cycle == 0:
		return faint.Render("waiting for the first poll cycle…")
	case snapshot.Len() == 0:
		return faint.Render("no CUDA devices found")
	}
	return m.renderer.Draw(snapshot.Records, m.opts.OriginX, m.opts.OriginY, m.opts.CardWidth, m.opts.CardHeight)
}

func (m Model) header() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(m.renderer.Theme.Header)

	parts := []string{title.Render("cudamon") + " on " + m.opts.HostName}
	if s := m.snapshot; s != nil && s.Cycle > 0 {
		parts = append(parts,
			fmt.Sprintf("%d device(s)", s.Len()),
			"memory from "+string(s.MemorySource),
			fmt.Sprintf("cycle %d", s.Cycle),
			"updated "+s.TakenAt.Format(time.TimeOnly),
		)
		if s.Errors > 0 {
			errStyle := lipgloss.NewStyle().Foreground(m.renderer.Theme.Error)
			parts = append(parts, errStyle.Render(fmt.Sprintf("%d driver error(s)", s.Errors)))
		}
	}
	return strings.Join(parts, " · ")
}

func (m Model) footer() string {
	return m.help.View(m.keys)
}
