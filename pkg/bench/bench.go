// Package bench chains optical elements into a beamline, traces rays from a
// source through it and collects transmission statistics.
package bench

import (
	"errors"
	"fmt"

	"github.com/df07/go-optics-bench/pkg/core"
	"github.com/df07/go-optics-bench/pkg/log"
	"github.com/df07/go-optics-bench/pkg/optics"
)

var (
	ErrUnknownPreset = errors.New("unknown bench preset")
	ErrInvalidConfig = errors.New("invalid bench config")
)

// resetter is implemented by elements that own a random stream
type resetter interface {
	Reset()
}

// Bench is an ordered beamline. A bench is not safe for concurrent use since
// its elements advance their random streams on every transport.
type Bench struct {
	Name   string
	Source *optics.Source
	Optics []optics.Optic

	logger log.Logger
}

// New creates a bench; a nil logger discards all output
func New(name string, source *optics.Source, elements []optics.Optic, logger log.Logger) *Bench {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Bench{
		Name:   name,
		Source: source,
		Optics: elements,
		logger: logger.With(log.String("bench", name)),
	}
}

// Element returns the optic with the given name, or nil
func (b *Bench) Element(name string) optics.Optic {
	for _, o := range b.Optics {
		if o.Name() == name {
			return o
		}
	}
	return nil
}

// Reset rewinds the source and every element stream to its seed
func (b *Bench) Reset() {
	if b.Source != nil {
		b.Source.Reset()
	}
	for _, o := range b.Optics {
		if r, ok := o.(resetter); ok {
			r.Reset()
		}
	}
}

// Trace feeds the ray through each optic in order and returns the last
// outgoing ray. Chaining ends at the first element that stops the ray. When
// rec is non-nil every outgoing ray is appended to it. An input that is
// already stopped is returned unchanged and recorded as StoppedOnEntry.
func (b *Bench) Trace(in core.Ray, rec *Trace) (core.Ray, error) {
	ray := in
	if ray.Stopped {
		if rec != nil && rec.StoppedBy == "" {
			rec.StoppedBy = StoppedOnEntry
		}
		return ray, nil
	}

	for _, o := range b.Optics {
		out, err := o.Transport(ray)
		if err != nil {
			return ray, fmt.Errorf("%s %s: %w", o.Kind(), o.Name(), err)
		}
		if rec != nil {
			rec.add(out)
		}

		ray = out
		if ray.Stopped {
			if rec != nil {
				rec.StoppedBy = o.Name()
			}
			return ray, nil
		}
	}

	return ray, nil
}

// Run emits n rays from the bench source, traces each of them and returns the
// accumulated statistics along with one record per ray.
func (b *Bench) Run(n int) (*Stats, []*Trace, error) {
	if b.Source == nil {
		return nil, nil, fmt.Errorf("bench %s has no source: %w", b.Name, ErrInvalidConfig)
	}
	if n < 0 {
		return nil, nil, fmt.Errorf("bench %s: negative ray count %d", b.Name, n)
	}

	stats := NewStats()
	traces := make([]*Trace, 0, n)

	for i := 0; i < n; i++ {
		ray, err := b.Source.Emit()
		if err != nil {
			return stats, traces, fmt.Errorf("bench %s ray %d: %w", b.Name, i, err)
		}

		rec := NewTrace(ray)
		if _, err := b.Trace(ray, rec); err != nil {
			b.logger.Error("trace failed", log.Int("ray", i), log.Err(err))
			return stats, traces, fmt.Errorf("bench %s ray %d: %w", b.Name, i, err)
		}

		stats.Add(rec)
		traces = append(traces, rec)
	}

	b.logger.Info("run complete",
		log.Int("rays", stats.Total),
		log.Int("transmitted", stats.Transmitted),
		log.Float64("transmission", stats.TransmissionRatio()),
	)

	return stats, traces, nil
}
