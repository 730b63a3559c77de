package audiofile

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	mp3 "github.com/hajimehoshi/go-mp3"

	"github.com/downshift-audio/downshift"
)

// ReadMP3 decodes an MP3 file into a planar float buffer. The decoder
// always yields 16-bit stereo; sources encoded as mono come out with
// identical channels. The reported bit depth is therefore always 16.
func ReadMP3(path string) (*downshift.Buffer, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, 0, fmt.Errorf("decoding %s: %w", path, err)
	}

	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, 0, fmt.Errorf("reading %s: %w", path, err)
	}

	// Interleaved stereo frames, 16-bit little-endian.
	const bytesPerFrame = 4
	frames := len(raw) / bytesPerFrame
	buf := downshift.NewBuffer(2, frames, dec.SampleRate())
	for i := range frames {
		l := int16(binary.LittleEndian.Uint16(raw[i*bytesPerFrame:]))
		r := int16(binary.LittleEndian.Uint16(raw[i*bytesPerFrame+2:]))
		buf.Data[0][i] = float64(l) / maxInt16
		buf.Data[1][i] = float64(r) / maxInt16
	}
	return buf, 16, nil
}
