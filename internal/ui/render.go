package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cwbudde/algo-audiograph/internal/cli"
)

// RenderProgress reports how many frames of an offline render are done.
type RenderProgress struct {
	Frames int
	Total  int
}

// RenderComplete signals the end of an offline render.
type RenderComplete struct {
	Summary cli.RenderSummary
	Err     error
}

// RenderModel shows the progress of an offline render.
type RenderModel struct {
	last     RenderProgress
	complete *RenderComplete
	bar      progress.Model
	start    time.Time
}

// NewRenderModel returns a model waiting for RenderProgress messages.
func NewRenderModel() *RenderModel {
	return &RenderModel{
		start: time.Now(),
		bar: progress.New(
			progress.WithGradient(string(cli.SignalViolet), string(cli.SignalCyan)),
			progress.WithWidth(40),
			progress.WithoutPercentage(),
		),
	}
}

// Result returns the completion message, or nil while rendering.
func (m *RenderModel) Result() *RenderComplete {
	return m.complete
}

func (m *RenderModel) Init() tea.Cmd {
	return nil
}

func (m *RenderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.bar.Width = max(min(msg.Width-30, 50), 10)
		return m, nil

	case RenderProgress:
		m.last = msg
		return m, nil

	case RenderComplete:
		m.complete = &msg
		return m, tea.Quit

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m *RenderModel) View() string {
	if m.complete != nil {
		if m.complete.Err != nil {
			return cli.ErrorStyle.Render("Render failed: ") + m.complete.Err.Error() + "\n"
		}
		return cli.FormatRenderSummary(m.complete.Summary) + "\n"
	}

	frac := 0.0
	if m.last.Total > 0 {
		frac = float64(m.last.Frames) / float64(m.last.Total)
	}

	var s strings.Builder
	s.WriteString(cli.TitleStyle.Render("audiograph ● rendering"))
	s.WriteString("\n")
	s.WriteString(m.bar.ViewAs(frac))
	s.WriteString(" ")
	s.WriteString(cli.ValueStyle.Render(fmt.Sprintf("%3.0f%%", frac*100)))
	s.WriteString("\n")
	s.WriteString(cli.KeyStyle.Render(fmt.Sprintf("%d / %d frames, %s",
		m.last.Frames, m.last.Total, cli.FormatDuration(time.Since(m.start)))))
	s.WriteString("\n")
	return s.String()
}
