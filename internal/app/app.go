// Package app owns the root Bubble Tea model: frame layout, global
// keys and the screen router, wired over the shared ledgers.
package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathforge/internal/progress"
	"github.com/abhisek/mathforge/internal/router"
	"github.com/abhisek/mathforge/internal/screen"
	"github.com/abhisek/mathforge/internal/screens/home"
	"github.com/abhisek/mathforge/internal/store"
	"github.com/abhisek/mathforge/internal/treasury"
	"github.com/abhisek/mathforge/internal/ui/layout"
)

// Options configures the application.
type Options struct {
	Blobs       store.Blobs
	OptionCount int
	Sound       bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router   *router.Router
	progress *progress.Ledger
	treasury *treasury.Ledger
	width    int
	height   int
}

// newAppModel loads the ledgers and opens on the home screen.
func newAppModel(opts Options) (AppModel, error) {
	ctx := context.Background()

	pl := progress.New(opts.Blobs)
	if err := pl.Load(ctx); err != nil {
		return AppModel{}, fmt.Errorf("load progress: %w", err)
	}
	tl := treasury.New(opts.Blobs)
	if err := tl.Load(ctx); err != nil {
		return AppModel{}, fmt.Errorf("load treasury: %w", err)
	}

	homeScreen := home.New(pl, tl, opts.Blobs, opts.OptionCount, opts.Sound)
	return AppModel{
		router:   router.New(homeScreen),
		progress: pl,
		treasury: tl,
	}, nil
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	tr := m.treasury.Snapshot()
	header := layout.RenderHeader(title, layout.HeaderStats{
		Petals: tr.Petals,
		Embers: tr.Embers,
		Streak: m.progress.Stats().Streak,
	}, m.width)

	var footerHints []layout.KeyHint
	if provider, ok := active.(screen.KeyHintProvider); ok {
		footerHints = provider.KeyHints()
	}
	if footerHints == nil {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	model, err := newAppModel(opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
