// Package audiofile reads and writes the audio containers the command
// line tool accepts. WAV is supported in both directions; MP3 is
// decode-only.
package audiofile

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/downshift-audio/downshift"
)

// ErrUnsupportedFormat is returned for file extensions the reader does
// not understand, and for attempts to encode into a decode-only format.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Read decodes an audio file into a planar float buffer, dispatching
// on the file extension. The returned bit depth is the source depth for
// WAV and 16 for MP3, so a later write can preserve it.
func Read(path string) (*downshift.Buffer, int, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return ReadWAV(path)
	case ".mp3":
		return ReadMP3(path)
	default:
		return nil, 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// IsSupported reports whether the extension names a readable format.
func IsSupported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".mp3":
		return true
	}
	return false
}
