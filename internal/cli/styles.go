// Package cli holds the styled terminal output of the audiograph command.
package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const appName = "audiograph"

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(SignalCyan).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(CoolGray).
			Italic(true)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(SignalViolet).
			MarginTop(1)

	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(SignalTeal)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(SignalRed)

	WarningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(SignalAmber)

	KeyStyle = lipgloss.NewStyle().
			Foreground(CoolGray)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(White)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SignalCyan).
			Padding(1, 2).
			MarginTop(1)
)

// PrintBanner prints the application banner.
func PrintBanner() {
	fmt.Println(TitleStyle.Render(appName))
	fmt.Println(SubtitleStyle.Render("Compose oscillators, effects and spectral nodes into a real-time audio graph."))
	fmt.Println()
}

// PrintVersion prints version information.
func PrintVersion(version string) {
	fmt.Println(TitleStyle.Render(appName))
	fmt.Printf("%s %s\n", KeyStyle.Render("Version:"), ValueStyle.Render(version))
}

// PrintError prints an error message to stderr.
func PrintError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ErrorStyle.Render("Error:"), message)
}

// PrintWarning prints a warning message.
func PrintWarning(message string) {
	fmt.Printf("%s %s\n", WarningStyle.Render("Warning:"), message)
}

// PrintSuccess prints a success message.
func PrintSuccess(message string) {
	fmt.Printf("%s %s\n", SuccessStyle.Render("✓"), message)
}

// PrintInfo prints a key/value line.
func PrintInfo(key, value string) {
	fmt.Printf("%s %s\n", KeyStyle.Render(key+":"), ValueStyle.Render(value))
}

// PrintSection prints a section header.
func PrintSection(title string) {
	fmt.Println(HeaderStyle.Render(title))
}

// FormatDuration formats d with millisecond resolution below one second.
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", d.Seconds()*1000)
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// FormatSpeed formats a render speed relative to real time.
func FormatSpeed(speed float64) string {
	return fmt.Sprintf("%.1fx realtime", speed)
}

// RenderSummary describes a finished offline render.
type RenderSummary struct {
	Path       string
	Frames     int
	SampleRate float64
	Elapsed    time.Duration
	Underruns  uint64
}

// FormatRenderSummary returns the boxed summary of an offline render.
func FormatRenderSummary(s RenderSummary) string {
	audio := time.Duration(float64(s.Frames) / s.SampleRate * float64(time.Second))

	var b strings.Builder
	b.WriteString(SuccessStyle.Render("✓ Render complete"))
	b.WriteString("\n\n")

	rows := [][2]string{
		{"Output:   ", s.Path},
		{"Audio:    ", FormatDuration(audio)},
		{"Elapsed:  ", FormatDuration(s.Elapsed)},
	}
	if s.Elapsed > 0 {
		rows = append(rows, [2]string{"Speed:    ", FormatSpeed(audio.Seconds() / s.Elapsed.Seconds())})
	}
	rows = append(rows, [2]string{"Underruns:", fmt.Sprintf("%d", s.Underruns)})

	for i, row := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(KeyStyle.Render(row[0]))
		b.WriteString(" ")
		b.WriteString(ValueStyle.Render(row[1]))
	}
	return BoxStyle.Render(b.String())
}

// PrintRenderSummary prints FormatRenderSummary(s).
func PrintRenderSummary(s RenderSummary) {
	fmt.Println(FormatRenderSummary(s))
}
