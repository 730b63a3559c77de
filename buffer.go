package downshift

import "fmt"

// Buffer is a planar multi-channel audio buffer: Data[ch][frame] holds
// floating-point samples, nominally in [-1, 1]. All channels carry the
// same frame count and the sample rate is a positive integer.
type Buffer struct {
	// Data holds one sample slice per channel.
	Data [][]float64

	// SampleRate is the nominal sample rate in Hz.
	SampleRate int
}

// NewBuffer allocates a zeroed buffer with the given shape.
func NewBuffer(channels, frames, sampleRate int) *Buffer {
	data := make([][]float64, channels)
	for ch := range data {
		data[ch] = make([]float64, frames)
	}
	return &Buffer{Data: data, SampleRate: sampleRate}
}

// NewBufferFromInterleaved builds a planar buffer from interleaved
// samples ([L0, R0, L1, R1, ...] for stereo). Trailing samples that do
// not fill a whole frame are dropped.
func NewBufferFromInterleaved(samples []float64, channels, sampleRate int) *Buffer {
	frames := len(samples) / channels
	buf := NewBuffer(channels, frames, sampleRate)
	for i := range frames {
		for ch := range channels {
			buf.Data[ch][i] = samples[i*channels+ch]
		}
	}
	return buf
}

// NumChannels returns the channel count.
func (b *Buffer) NumChannels() int {
	return len(b.Data)
}

// Frames returns the per-channel frame count.
func (b *Buffer) Frames() int {
	if len(b.Data) == 0 {
		return 0
	}
	return len(b.Data[0])
}

// Validate checks the buffer invariants: at least one channel, a
// positive sample rate, and equal frame counts across channels.
func (b *Buffer) Validate() error {
	if b == nil || len(b.Data) == 0 {
		return fmt.Errorf("%w: buffer has no channels", ErrInvalidConfiguration)
	}
	if b.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive, got %d",
			ErrInvalidConfiguration, b.SampleRate)
	}
	frames := len(b.Data[0])
	for ch, c := range b.Data {
		if len(c) != frames {
			return fmt.Errorf("%w: channel %d has %d frames, channel 0 has %d",
				ErrInvalidConfiguration, ch, len(c), frames)
		}
	}
	return nil
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	out := &Buffer{
		Data:       make([][]float64, len(b.Data)),
		SampleRate: b.SampleRate,
	}
	for ch, c := range b.Data {
		out.Data[ch] = make([]float64, len(c))
		copy(out.Data[ch], c)
	}
	return out
}

// Interleaved flattens the buffer to interleaved sample order.
func (b *Buffer) Interleaved() []float64 {
	channels := b.NumChannels()
	frames := b.Frames()
	out := make([]float64, frames*channels)
	for i := range frames {
		for ch := range channels {
			out[i*channels+ch] = b.Data[ch][i]
		}
	}
	return out
}
