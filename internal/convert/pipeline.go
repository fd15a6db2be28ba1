package convert

import (
	"github.com/sirupsen/logrus"
)

// Options represents the transforms applied between reading a header
// and handing samples to a sink. Zero values disable a stage.
type Options struct {
	Cut      int  // trailing samples to drop
	Ratio    int  // samplerate decimation ratio
	Remap    bool // apply the twos complement amplitude remap
	MaxValue int  // bias threshold for the remap (DefaultMaxValue if 0)
}

// Pipeline applies the configured transforms in a fixed order:
// cut, rate reduction, amplitude remap. Each stage returns a new slice.
type Pipeline struct {
	opts   Options
	logger *logrus.Logger
}

// NewPipeline creates a pipeline with the given options.
func NewPipeline(opts Options, logger *logrus.Logger) *Pipeline {
	if opts.MaxValue == 0 {
		opts.MaxValue = DefaultMaxValue
	}
	return &Pipeline{
		opts:   opts,
		logger: logger,
	}
}

// MaxValue returns the effective remap bias threshold.
func (p *Pipeline) MaxValue() int {
	return p.opts.MaxValue
}

// Run executes the enabled stages in order.
func (p *Pipeline) Run(samples []int) ([]int, error) {
	out := samples
	var err error

	if p.opts.Cut != 0 {
		out, err = Cut(out, p.opts.Cut)
		if err != nil {
			return nil, err
		}
		p.logger.WithFields(logrus.Fields{
			"cut":     p.opts.Cut,
			"samples": len(out),
		}).Debug("Cut trailing samples")
	}

	if p.opts.Ratio != 0 {
		out, err = Reduce(out, p.opts.Ratio)
		if err != nil {
			return nil, err
		}
		p.logger.WithFields(logrus.Fields{
			"ratio":   p.opts.Ratio,
			"samples": len(out),
		}).Debug("Reduced samplerate")
	}

	if p.opts.Remap {
		out = Encode(out, p.opts.MaxValue)
		p.logger.WithField("max_value", p.opts.MaxValue).Debug("Applied amplitude remap")
	}

	return out, nil
}
