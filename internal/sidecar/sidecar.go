// Package sidecar persists restore metadata next to prepared files.
//
// A prepared file alone does not say how many frames the original had
// or which settings produced it. The sidecar is a small JSON document
// written alongside the output carrying the frame count, the prepare
// settings, and a digest of those settings so a restore run can fail
// fast instead of silently producing wrong-pitch audio.
package sidecar

import (
	"encoding/json"
	"fmt"
	"hash/crc32"
	"os"

	"github.com/downshift-audio/downshift"
)

// Extension is appended to the prepared file's path to form the
// sidecar path.
const Extension = ".json"

// Sidecar is the on-disk companion document for a prepared file.
type Sidecar struct {
	Metadata downshift.Metadata `json:"metadata"`
	CutoffHz float64            `json:"cutoff_hz"`
	Engine   string             `json:"engine"`
	Digest   uint32             `json:"settings_digest"`
}

// For builds a sidecar for a prepare run with the given settings.
func For(meta *downshift.Metadata, cutoffHz float64, eng downshift.Engine) *Sidecar {
	s := &Sidecar{
		CutoffHz: cutoffHz,
		Engine:   eng.String(),
	}
	if meta != nil {
		s.Metadata = *meta
	}
	s.Digest = digest(s.Metadata.OriginalRate, cutoffHz, eng.String())
	return s
}

// Verify checks that the restore settings match the ones recorded at
// prepare time. It returns a wrapped SettingsMismatch error naming the
// first differing field.
func (s *Sidecar) Verify(cutoffHz float64, eng downshift.Engine) error {
	if s.CutoffHz != cutoffHz {
		return fmt.Errorf("%w: prepared with cutoff %g Hz, restoring with %g Hz",
			downshift.ErrSettingsMismatch, s.CutoffHz, cutoffHz)
	}
	if s.Engine != eng.String() {
		return fmt.Errorf("%w: prepared with engine %q, restoring with %q",
			downshift.ErrSettingsMismatch, s.Engine, eng)
	}
	if want := digest(s.Metadata.OriginalRate, cutoffHz, eng.String()); s.Digest != want {
		return fmt.Errorf("%w: settings digest %08x does not match %08x",
			downshift.ErrSettingsMismatch, s.Digest, want)
	}
	return nil
}

// PathFor returns the sidecar path for a prepared file path.
func PathFor(preparedPath string) string {
	return preparedPath + Extension
}

// Write stores the sidecar for the given prepared file.
func Write(preparedPath string, s *Sidecar) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding sidecar: %w", err)
	}
	path := PathFor(preparedPath)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing sidecar %s: %w", path, err)
	}
	return nil
}

// Load reads the sidecar for the given prepared file.
func Load(preparedPath string) (*Sidecar, error) {
	path := PathFor(preparedPath)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sidecar %s: %w", path, err)
	}
	var s Sidecar
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing sidecar %s: %w", path, err)
	}
	return &s, nil
}

func digest(rate int, cutoffHz float64, engine string) uint32 {
	return crc32.ChecksumIEEE(fmt.Appendf(nil, "%d|%.6f|%s", rate, cutoffHz, engine))
}
