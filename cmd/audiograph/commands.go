package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cwbudde/algo-audiograph/driver"
	"github.com/cwbudde/algo-audiograph/dsp/nodes"
	"github.com/cwbudde/algo-audiograph/internal/cli"
	"github.com/cwbudde/algo-audiograph/internal/device"
	"github.com/cwbudde/algo-audiograph/internal/ui"
)

// PlayCmd plays a chain on the default output device.
type PlayCmd struct {
	Chain    string        `arg:"" optional:"" help:"Chain description." default:"${demo_chain}"`
	Duration time.Duration `help:"Stop after this long. Zero plays until interrupted." default:"0s"`
	NoUI     bool          `help:"Disable the live status view."`
}

func (c *PlayCmd) Run(g *Globals, logger *slog.Logger) error {
	drv, err := g.build(c.Chain, logger)
	if err != nil {
		return err
	}

	pb, err := device.Open(drv, logger)
	if err != nil {
		return err
	}
	defer pb.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if c.NoUI {
		return pb.Play(ctx, c.Duration)
	}

	if err := pb.Start(); err != nil {
		return err
	}
	model := ui.NewPlaybackModel(drv, c.Chain, c.Duration)
	if _, err := tea.NewProgram(model, tea.WithContext(ctx)).Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("running UI: %w", err)
	}

	stats := drv.Stats()
	if stats.Underruns > 0 {
		cli.PrintWarning(fmt.Sprintf("%d underruns, %d frames silenced", stats.Underruns, stats.SilencedFrames))
	}
	return nil
}

// RenderCmd renders a chain offline to a WAV file.
type RenderCmd struct {
	Output   string  `arg:"" help:"Output WAV file." type:"path"`
	Chain    string  `short:"c" help:"Chain description." default:"${demo_chain}"`
	Seconds  float64 `help:"Length to render in seconds." default:"5"`
	BitDepth int     `help:"PCM bit depth." default:"16" enum:"8,16,24,32"`
	NoUI     bool    `help:"Disable the progress view."`
}

func (c *RenderCmd) Run(g *Globals, logger *slog.Logger) error {
	if c.Seconds <= 0 {
		return fmt.Errorf("seconds must be > 0: %v", c.Seconds)
	}

	drv, err := g.build(c.Chain, logger)
	if err != nil {
		return err
	}
	frames := int(c.Seconds * drv.SampleRate())

	f, err := os.Create(c.Output)
	if err != nil {
		return err
	}
	defer f.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	summary := func() cli.RenderSummary {
		return cli.RenderSummary{
			Path:       c.Output,
			Frames:     frames,
			SampleRate: drv.SampleRate(),
			Elapsed:    time.Since(start),
			Underruns:  drv.Stats().Underruns,
		}
	}

	if c.NoUI {
		if err := drv.RenderWAV(ctx, f, frames, c.BitDepth); err != nil {
			return err
		}
		cli.PrintRenderSummary(summary())
		return f.Close()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := ui.NewRenderModel()
	p := tea.NewProgram(model)
	done := make(chan error, 1)
	go func() {
		err := drv.RenderWAV(ctx, f, frames, c.BitDepth)
		done <- err
		p.Send(ui.RenderComplete{Summary: summary(), Err: err})
	}()
	go reportProgress(ctx, p, drv, frames)

	if _, err := p.Run(); err != nil {
		cancel()
		<-done
		return fmt.Errorf("running UI: %w", err)
	}
	cancel()
	if err := <-done; err != nil {
		return err
	}
	return f.Close()
}

// reportProgress sends the rendered frame count to the UI until ctx is done.
func reportProgress(ctx context.Context, p *tea.Program, drv *driver.Driver, total int) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rendered := int(drv.Stats().Periods) * drv.Period()
			p.Send(ui.RenderProgress{Frames: min(rendered, total), Total: total})
		}
	}
}

// NodesCmd lists the registered node kinds.
type NodesCmd struct{}

func (c *NodesCmd) Run() error {
	cli.PrintSection("Node kinds")
	for _, kind := range nodes.DefaultRegistry().Kinds() {
		fmt.Println("  " + cli.ValueStyle.Render(kind))
	}
	fmt.Println()
	cli.PrintInfo("Syntax", "kind:key=value,...  a|b in series  par(a;b) in parallel")
	return nil
}

// VersionCmd prints the build version.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	cli.PrintVersion(version)
	return nil
}
