package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/cwbudde/algo-audiograph/driver"
	"github.com/cwbudde/algo-audiograph/dsp/core"
	"github.com/cwbudde/algo-audiograph/dsp/graph"
	"github.com/cwbudde/algo-audiograph/dsp/nodes"
	"github.com/cwbudde/algo-audiograph/dsp/sampler"
	"github.com/cwbudde/algo-audiograph/internal/cli"
)

// version is set via ldflags at build time.
var version = "dev"

// Two detuned voices of three fast sines each, summed, driven into the
// soft clipper and trimmed, one voice per output channel.
const (
	demoVoice = "par(fast-sine:freq=120;fast-sine:freq=2;fast-sine:freq=1.3333)|sum|gain:gain=5.9|soft-clip|gain:gain=0.9"
	demoChain = "par(" + demoVoice + ";" + demoVoice + ")"
)

// sampleRate is written once from the command line and read by every
// command when it builds its graph.
var sampleRate core.SampleRateCell

// Globals are the flags shared by every command.
type Globals struct {
	LogLevel   string   `help:"Log level." default:"warn" enum:"debug,info,warn,error" env:"AUDIOGRAPH_LOG_LEVEL"`
	SampleRate float64  `help:"Graph sample rate in Hz." default:"48000" env:"AUDIOGRAPH_SAMPLE_RATE"`
	Period     int      `help:"Frames per period." default:"512" env:"AUDIOGRAPH_PERIOD"`
	Channels   int      `help:"Output channels." default:"2" env:"AUDIOGRAPH_CHANNELS"`
	Clip       []string `help:"Named clip for sample nodes, as name=path. Repeatable." placeholder:"NAME=PATH"`
}

// CLI is the command line of audiograph.
type CLI struct {
	Globals

	Play    PlayCmd    `cmd:"" help:"Play a chain on the default output device."`
	Render  RenderCmd  `cmd:"" help:"Render a chain to a WAV file."`
	Nodes   NodesCmd   `cmd:"" help:"List the node kinds a chain can use."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

func main() {
	var c CLI
	ctx := kong.Parse(&c,
		kong.Name("audiograph"),
		kong.Description("Compose oscillators, effects and spectral nodes into a real-time audio graph."),
		kong.Vars{"version": version, "demo_chain": demoChain},
		kong.UsageOnError(),
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	logger := newLogger(c.LogLevel)
	if err := sampleRate.Set(c.SampleRate); err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}

	if err := ctx.Run(&c.Globals, logger); err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// build parses desc against the default registry and wraps the root in a
// driver configured from the global flags.
func (g *Globals) build(desc string, logger *slog.Logger) (*driver.Driver, error) {
	rate := sampleRate.MustGet()

	var opts []nodes.RegistryOption
	for _, entry := range g.Clip {
		name, path, ok := strings.Cut(entry, "=")
		if !ok || name == "" || path == "" {
			return nil, fmt.Errorf("clip %q: want name=path", entry)
		}
		clip, err := sampler.LoadFile(path)
		if err != nil {
			return nil, err
		}
		logger.Info("clip loaded", "name", name, "path", path,
			"frames", clip.Frames(), "channels", len(clip.Channels), "sample_rate", clip.SampleRate)
		opts = append(opts, nodes.WithClip(name, clip))
	}

	pcfg := core.ApplyProcessorOptions(
		core.WithSampleRate(rate),
		core.WithBlockSize(g.Period),
		core.WithMaxChannels(max(g.Channels, core.DefaultProcessorConfig().MaxChannels)),
	)
	if err := pcfg.Validate(); err != nil {
		return nil, err
	}
	gctx := graph.Context{SampleRate: pcfg.SampleRate, Config: graph.ConfigFrom(pcfg)}

	root, err := graph.ParseChain(nodes.DefaultRegistry(opts...), gctx, desc)
	if err != nil {
		return nil, err
	}
	logger.Debug("graph built", "chain", desc, "requirements", root.BlockSize().String(),
		"period", pcfg.PeriodDuration())

	return driver.New(root,
		driver.WithSampleRate(rate),
		driver.WithChannels(g.Channels),
		driver.WithPeriod(g.Period),
		driver.WithLogger(logger),
	)
}
