package audiofile

import (
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/downshift-audio/downshift"
)

// Full-scale magnitudes for the integer PCM depths we handle.
const (
	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0
)

func pcmScale(bitDepth int) (float64, error) {
	switch bitDepth {
	case 16:
		return maxInt16, nil
	case 24:
		return maxInt24, nil
	case 32:
		return maxInt32, nil
	default:
		return 0, fmt.Errorf("%w: %d-bit WAV", ErrUnsupportedFormat, bitDepth)
	}
}

// ReadWAV decodes a PCM WAV file into a planar float buffer in [-1, 1].
// It returns the source bit depth alongside the buffer.
func ReadWAV(path string) (*downshift.Buffer, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("%s: not a valid WAV file", path)
	}

	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("decoding %s: %w", path, err)
	}
	if pcm.Format == nil || pcm.Format.NumChannels <= 0 {
		return nil, 0, fmt.Errorf("%s: missing format information", path)
	}

	bitDepth := int(dec.BitDepth)
	scale, err := pcmScale(bitDepth)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", path, err)
	}

	channels := pcm.Format.NumChannels
	frames := len(pcm.Data) / channels
	buf := downshift.NewBuffer(channels, frames, pcm.Format.SampleRate)
	for i := range frames {
		for ch := range channels {
			buf.Data[ch][i] = float64(pcm.Data[i*channels+ch]) / scale
		}
	}
	return buf, bitDepth, nil
}

// WriteWAV encodes a planar float buffer as PCM WAV at the given bit
// depth, clipping samples outside [-1, 1].
func WriteWAV(path string, buf *downshift.Buffer, bitDepth int) error {
	scale, err := pcmScale(bitDepth)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := buf.Validate(); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	channels := buf.NumChannels()
	frames := buf.Frames()
	pcm := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: channels,
			SampleRate:  buf.SampleRate,
		},
		Data:           make([]int, frames*channels),
		SourceBitDepth: bitDepth,
	}
	for i := range frames {
		for ch := range channels {
			s := buf.Data[ch][i]
			if s > 1 {
				s = 1
			} else if s < -1 {
				s = -1
			}
			pcm.Data[i*channels+ch] = int(math.Round(s * scale))
		}
	}

	enc := wav.NewEncoder(f, buf.SampleRate, bitDepth, channels, 1)
	if err := enc.Write(pcm); err != nil {
		enc.Close()
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("finalizing %s: %w", path, err)
	}
	return f.Close()
}
