// Package ui holds the bubbletea views of the audiograph command.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cwbudde/algo-audiograph/driver"
	"github.com/cwbudde/algo-audiograph/dsp/core"
	"github.com/cwbudde/algo-audiograph/internal/cli"
)

const refreshInterval = 100 * time.Millisecond

// StatsSource reports driver counters. *driver.Driver implements it.
type StatsSource interface {
	Stats() driver.Stats
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// PlaybackModel shows live driver counters while a stream plays.
type PlaybackModel struct {
	src      StatsSource
	chain    string
	duration time.Duration
	start    time.Time
	elapsed  time.Duration
	stats    driver.Stats
	bar      progress.Model

	interrupted bool
	done        bool
}

// NewPlaybackModel monitors src. A non-positive duration plays until the
// user quits.
func NewPlaybackModel(src StatsSource, chain string, duration time.Duration) *PlaybackModel {
	return &PlaybackModel{
		src:      src,
		chain:    chain,
		duration: duration,
		start:    time.Now(),
		bar: progress.New(
			progress.WithGradient(string(cli.SignalTeal), string(cli.SignalCyan)),
			progress.WithWidth(40),
			progress.WithoutPercentage(),
		),
	}
}

// Interrupted reports whether the user stopped playback early.
func (m *PlaybackModel) Interrupted() bool {
	return m.interrupted
}

func (m *PlaybackModel) Init() tea.Cmd {
	return tick()
}

func (m *PlaybackModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.bar.Width = max(min(msg.Width-30, 50), 10)
		return m, nil

	case tickMsg:
		m.elapsed = time.Time(msg).Sub(m.start)
		m.stats = m.src.Stats()
		if m.duration > 0 && m.elapsed >= m.duration {
			m.done = true
			return m, tea.Quit
		}
		return m, tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.interrupted = true
			m.done = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m *PlaybackModel) View() string {
	var s strings.Builder

	s.WriteString(cli.TitleStyle.Render("audiograph ▶ playing"))
	s.WriteString("\n")
	s.WriteString(cli.KeyStyle.Render("Chain:     "))
	s.WriteString(cli.ValueStyle.Render(m.chain))
	s.WriteString("\n")
	s.WriteString(cli.KeyStyle.Render("Elapsed:   "))
	s.WriteString(cli.ValueStyle.Render(cli.FormatDuration(m.elapsed)))
	s.WriteString("\n")
	s.WriteString(cli.KeyStyle.Render("Periods:   "))
	s.WriteString(cli.ValueStyle.Render(fmt.Sprintf("%d", m.stats.Periods)))
	s.WriteString("\n")

	s.WriteString(cli.KeyStyle.Render("Peak:      "))
	s.WriteString(cli.ValueStyle.Render(formatPeak(m.stats.Peak)))
	s.WriteString("\n")

	underruns := cli.ValueStyle.Render(fmt.Sprintf("%d", m.stats.Underruns))
	if m.stats.Underruns > 0 {
		underruns = cli.WarningStyle.Render(fmt.Sprintf("%d (%d frames silenced)",
			m.stats.Underruns, m.stats.SilencedFrames))
	}
	s.WriteString(cli.KeyStyle.Render("Underruns: "))
	s.WriteString(underruns)
	s.WriteString("\n")

	if m.duration > 0 {
		s.WriteString("\n")
		s.WriteString(m.bar.ViewAs(min(m.elapsed.Seconds()/m.duration.Seconds(), 1)))
		s.WriteString("\n")
	}
	if !m.done {
		s.WriteString("\n")
		s.WriteString(cli.SubtitleStyle.Render("q to stop"))
		s.WriteString("\n")
	}
	return s.String()
}

// formatPeak formats a linear peak as dBFS.
func formatPeak(p float64) string {
	if p <= 0 {
		return "-inf dBFS"
	}
	return fmt.Sprintf("%.1f dBFS", core.LinearToDB(p))
}
