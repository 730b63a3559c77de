package downshift

import (
	"fmt"
	"strings"
)

// Mode selects the direction of the transform.
type Mode int

const (
	// ModePrepare compresses the spectrum below the cutoff and
	// stretches the signal in time.
	ModePrepare Mode = iota

	// ModeRestore applies the inverse ratio, recovering the original
	// pitch and duration.
	ModeRestore
)

// String returns the mode's canonical name.
func (m Mode) String() string {
	switch m {
	case ModePrepare:
		return "prepare"
	case ModeRestore:
		return "restore"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode maps a mode name to its Mode value.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prepare":
		return ModePrepare, nil
	case "restore":
		return ModeRestore, nil
	default:
		return 0, fmt.Errorf("%w: unknown mode %q", ErrInvalidConfiguration, s)
	}
}
