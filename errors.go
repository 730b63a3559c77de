package downshift

import (
	"errors"

	"github.com/downshift-audio/downshift/internal/engine"
)

// Common errors returned by the transform. All failures are detected
// synchronously; a failed call produces no output buffer.
var (
	// ErrInvalidConfiguration indicates a non-positive sample rate or
	// cutoff frequency, or a malformed buffer.
	ErrInvalidConfiguration = errors.New("invalid transform configuration")

	// ErrUnsupportedRatio indicates the computed resampling ratio is
	// not usable (non-positive, or producing an empty output).
	ErrUnsupportedRatio = engine.ErrUnsupportedRatio

	// ErrBufferTooShort indicates the input has fewer frames than the
	// selected engine's minimum processable length.
	ErrBufferTooShort = engine.ErrBufferTooShort

	// ErrSettingsMismatch indicates that a persisted settings digest
	// disagrees with the settings supplied at Restore time. The core
	// transform never returns it; the sidecar layer does.
	ErrSettingsMismatch = errors.New("prepare/restore settings mismatch")
)
