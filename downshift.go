package downshift

import (
	"fmt"

	"github.com/downshift-audio/downshift/internal/engine"
)

// Config holds the resolved settings for a Transform.
type Config struct {
	// CutoffHz is the highest frequency the downstream model can
	// process. Must be positive; values at or above the source Nyquist
	// make the transform an identity.
	CutoffHz float64

	// Engine selects the resampling implementation.
	Engine Engine
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.CutoffHz <= 0 {
		return fmt.Errorf("%w: cutoff must be positive, got %v",
			ErrInvalidConfiguration, c.CutoffHz)
	}
	if !c.Engine.valid() {
		return fmt.Errorf("%w: unknown engine %d", ErrInvalidConfiguration, int(c.Engine))
	}
	return nil
}

// Transform performs the spectral downshift in both directions. It
// holds no mutable state: every call reads its inputs and allocates a
// fresh output, so a single Transform may be used concurrently on
// independent buffers.
type Transform struct {
	cutoffHz  float64
	engine    Engine
	resampler engine.Resampler
}

// New creates a Transform from the given configuration.
func New(cfg *Config) (*Transform, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfiguration)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Transform{
		cutoffHz:  cfg.CutoffHz,
		engine:    cfg.Engine,
		resampler: cfg.Engine.resampler(),
	}, nil
}

// Prepare compresses the buffer's spectrum below the cutoff by
// stretching it in time by 1/r, where r = cutoff / (rate/2). The
// output is tagged at the input's sample rate so downstream tools treat
// it as ordinary audio, and holds round(frames / r) frames per channel.
//
// The returned Metadata must be passed to the matching Restore call for
// exact frame-count recovery. When the cutoff is at or above the
// source Nyquist (r >= 1) the buffer is passed through unchanged.
func (t *Transform) Prepare(buf *Buffer) (*Buffer, *Metadata, error) {
	r, err := t.ratioFor(buf)
	if err != nil {
		return nil, nil, err
	}

	meta := &Metadata{
		OriginalFrames: buf.Frames(),
		OriginalRate:   buf.SampleRate,
	}

	if r >= 1 {
		return buf.Clone(), meta, nil
	}

	out, err := t.resampleBuffer(buf, 1.0/r)
	if err != nil {
		return nil, nil, err
	}
	return out, meta, nil
}

// Restore applies the inverse ratio, mapping a prepared buffer's
// duration and spectrum back to the original. It must be called with
// the same sample rate, cutoff, and engine used at Prepare time; the
// transform does not verify this, and a mismatch silently yields a
// wrong-pitch, wrong-length result.
//
// When meta is non-nil the output is trimmed or zero-padded to exactly
// meta.OriginalFrames frames, absorbing the ±1 rounding drift of the
// two resampling passes.
func (t *Transform) Restore(buf *Buffer, meta *Metadata) (*Buffer, error) {
	r, err := t.ratioFor(buf)
	if err != nil {
		return nil, err
	}

	var out *Buffer
	if r >= 1 {
		out = buf.Clone()
	} else {
		out, err = t.resampleBuffer(buf, r)
		if err != nil {
			return nil, err
		}
	}

	if meta != nil {
		fitFrames(out, meta.OriginalFrames)
		if meta.OriginalRate > 0 {
			out.SampleRate = meta.OriginalRate
		}
	}
	return out, nil
}

// Apply dispatches to Prepare or Restore. For ModeRestore the returned
// metadata echoes the input metadata.
func (t *Transform) Apply(mode Mode, buf *Buffer, meta *Metadata) (*Buffer, *Metadata, error) {
	switch mode {
	case ModePrepare:
		return t.Prepare(buf)
	case ModeRestore:
		out, err := t.Restore(buf, meta)
		return out, meta, err
	default:
		return nil, nil, fmt.Errorf("%w: unknown mode %d", ErrInvalidConfiguration, int(mode))
	}
}

// ratioFor validates the buffer and computes the compression ratio.
func (t *Transform) ratioFor(buf *Buffer) (float64, error) {
	if err := buf.Validate(); err != nil {
		return 0, err
	}
	return Ratio(buf.SampleRate, t.cutoffHz)
}

// resampleBuffer resamples every channel by k. Channels are processed
// independently and identically.
func (t *Transform) resampleBuffer(buf *Buffer, k float64) (*Buffer, error) {
	out := &Buffer{
		Data:       make([][]float64, buf.NumChannels()),
		SampleRate: buf.SampleRate,
	}
	for ch, data := range buf.Data {
		resampled, err := t.resampler.Resample(data, k)
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", ch, err)
		}
		out.Data[ch] = resampled
	}
	return out, nil
}

// fitFrames trims or zero-pads every channel to exactly frames frames.
func fitFrames(buf *Buffer, frames int) {
	if frames < 0 {
		return
	}
	for ch, data := range buf.Data {
		switch {
		case len(data) > frames:
			buf.Data[ch] = data[:frames]
		case len(data) < frames:
			padded := make([]float64, frames)
			copy(padded, data)
			buf.Data[ch] = padded
		}
	}
}

// Prepare is a one-shot convenience wrapper around [Transform.Prepare].
func Prepare(buf *Buffer, cutoffHz float64, eng Engine) (*Buffer, *Metadata, error) {
	t, err := New(&Config{CutoffHz: cutoffHz, Engine: eng})
	if err != nil {
		return nil, nil, err
	}
	return t.Prepare(buf)
}

// Restore is a one-shot convenience wrapper around [Transform.Restore].
func Restore(buf *Buffer, cutoffHz float64, eng Engine, meta *Metadata) (*Buffer, error) {
	t, err := New(&Config{CutoffHz: cutoffHz, Engine: eng})
	if err != nil {
		return nil, err
	}
	return t.Restore(buf, meta)
}
