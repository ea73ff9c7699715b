// Package nodes registers the built-in node kinds with a graph.Registry so
// chains can be assembled from text.
package nodes

import (
	"fmt"

	"github.com/cwbudde/algo-audiograph/dsp/core"
	"github.com/cwbudde/algo-audiograph/dsp/effects"
	"github.com/cwbudde/algo-audiograph/dsp/graph"
	"github.com/cwbudde/algo-audiograph/dsp/mix"
	"github.com/cwbudde/algo-audiograph/dsp/osc"
	"github.com/cwbudde/algo-audiograph/dsp/sampler"
	"github.com/cwbudde/algo-audiograph/dsp/spectral"
)

const (
	defaultFreqHz     = 440.0
	defaultFilterSize = 256
	defaultCutoffHz   = 4000.0
)

type registryConfig struct {
	clips map[string]*sampler.Clip
}

// RegistryOption configures the default registry.
type RegistryOption func(*registryConfig)

// WithClip makes a decoded clip available to "sample" nodes under name,
// so they need not read from disk.
func WithClip(name string, clip *sampler.Clip) RegistryOption {
	return func(c *registryConfig) {
		if c.clips == nil {
			c.clips = make(map[string]*sampler.Clip)
		}
		c.clips[name] = clip
	}
}

// DefaultRegistry returns a Registry with every built-in kind:
//
//	sine:freq=Hz          precise sine source
//	fast-sine:freq=Hz     parabolic sine source
//	noise:amp=a,seed=n    seeded white noise
//	gain:gain=k | db=dB   constant gain, ramp=1 to de-zipper
//	soft-clip             soft saturation to [-1, 1]
//	sum                   sum all channels into one
//	block-lowpass:size=n,cutoff=Hz
//	                      block spectral low-pass
//	sample:clip=name | path=file,loop=1
//	                      clip playback, resampled to the graph rate;
//	                      paths must not contain , | ; ( )
func DefaultRegistry(opts ...RegistryOption) *graph.Registry {
	cfg := &registryConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	r := graph.NewRegistry()

	r.MustRegister("sine", func(ctx graph.Context, p graph.Params) (graph.RealNode, error) {
		return node(osc.NewSine(ctx.SampleRate, p.GetNum("freq", defaultFreqHz)))
	})
	r.MustRegister("fast-sine", func(ctx graph.Context, p graph.Params) (graph.RealNode, error) {
		return node(osc.NewFastSine(ctx.SampleRate, p.GetNum("freq", defaultFreqHz)))
	})
	r.MustRegister("noise", func(_ graph.Context, p graph.Params) (graph.RealNode, error) {
		return node(osc.NewNoise(p.GetNum("amp", 1), int64(p.GetNum("seed", 1))))
	})
	r.MustRegister("gain", func(_ graph.Context, p graph.Params) (graph.RealNode, error) {
		k := p.GetNum("gain", 1)
		if p.HasNum("db") {
			k = core.DBToLinear(p.GetNum("db", 0))
		}
		return node(effects.NewGain(k, effects.WithGainRamp(p.GetNum("ramp", 0) != 0)))
	})
	r.MustRegister("soft-clip", func(graph.Context, graph.Params) (graph.RealNode, error) {
		return effects.NewSoftClipper(), nil
	})
	r.MustRegister("sum", func(graph.Context, graph.Params) (graph.RealNode, error) {
		return mix.NewSumming(), nil
	})
	r.MustRegister("block-lowpass", func(ctx graph.Context, p graph.Params) (graph.RealNode, error) {
		size := int(p.GetNum("size", defaultFilterSize))
		if size <= 0 {
			return nil, fmt.Errorf("block-lowpass size must be > 0: %d", size)
		}
		weights := spectral.LowpassWeights(size, ctx.SampleRate, p.GetNum("cutoff", defaultCutoffHz))
		return spectral.NewBlockFilter(ctx.Config, weights)
	})
	r.MustRegister("sample", func(ctx graph.Context, p graph.Params) (graph.RealNode, error) {
		clip, err := cfg.clip(p)
		if err != nil {
			return nil, err
		}
		if clip, err = clip.Resample(ctx.SampleRate); err != nil {
			return nil, err
		}
		return node(sampler.NewPlayer(clip, sampler.WithLoop(p.GetNum("loop", 0) != 0)))
	})

	return r
}

// node drops the typed result on error so callers never see a non-nil
// interface holding a nil pointer.
func node[T graph.RealNode](n T, err error) (graph.RealNode, error) {
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (c *registryConfig) clip(p graph.Params) (*sampler.Clip, error) {
	if name := p.GetStr("clip", ""); name != "" {
		clip, ok := c.clips[name]
		if !ok {
			return nil, fmt.Errorf("sample: no clip named %q", name)
		}
		return clip, nil
	}

	path := p.GetStr("path", "")
	if path == "" {
		return nil, fmt.Errorf("sample: clip or path parameter required")
	}
	return sampler.LoadFile(path)
}
