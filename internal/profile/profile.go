// Package profile stores named transform presets in a JSON file.
//
// A profile bundles the cutoff frequency, engine, and output format a
// user wants to reuse across runs. The store seeds itself with two
// built-in profiles on first use and survives a corrupt or missing
// file by falling back to those defaults.
package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/downshift-audio/downshift"
)

// Default profile names seeded into a fresh store.
const (
	DefaultAccurateName = "Accurate"
	DefaultFastName     = "Fast"

	defaultCutoffHz = 17000.0
)

// Profile is a named set of transform settings.
type Profile struct {
	CutoffHz     float64 `json:"cutoff"`
	Engine       string  `json:"engine"`
	OutputFormat string  `json:"output_format"`
}

// Settings holds application preferences stored beside the profiles.
type Settings struct {
	LastProfile string `json:"last_profile,omitempty"`
	OutputDir   string `json:"output_dir,omitempty"`
}

type fileData struct {
	Profiles map[string]Profile `json:"profiles"`
	Settings Settings           `json:"_app_settings"`
}

// Store manages the profile file. It is not safe for concurrent use.
type Store struct {
	path string
	data fileData
}

func defaults() map[string]Profile {
	return map[string]Profile{
		DefaultAccurateName: {CutoffHz: defaultCutoffHz, Engine: downshift.EngineAccurate.String(), OutputFormat: "wav"},
		DefaultFastName:     {CutoffHz: defaultCutoffHz, Engine: downshift.EngineFast.String(), OutputFormat: "wav"},
	}
}

// Open loads the store at path, creating it with the default profiles
// when the file is missing. A file that exists but cannot be parsed is
// replaced by defaults rather than aborting the run.
func Open(path string) (*Store, error) {
	s := &Store{path: path, data: fileData{Profiles: defaults()}}

	raw, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		if err := s.flush(); err != nil {
			return nil, err
		}
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("reading profiles %s: %w", path, err)
	}

	var parsed fileData
	if err := json.Unmarshal(raw, &parsed); err != nil || parsed.Profiles == nil {
		// Corrupt file. Start over from defaults.
		if err := s.flush(); err != nil {
			return nil, err
		}
		return s, nil
	}

	s.data = parsed
	for name, p := range defaults() {
		if _, ok := s.data.Profiles[name]; !ok {
			s.data.Profiles[name] = p
		}
	}
	return s, nil
}

// Get returns the named profile.
func (s *Store) Get(name string) (Profile, error) {
	p, ok := s.data.Profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("profile %q not found", name)
	}
	return p, nil
}

// Save stores a profile under the given name, overwriting any existing
// one, and persists the file.
func (s *Store) Save(name string, p Profile) error {
	if name == "" {
		return fmt.Errorf("profile name must not be empty")
	}
	if _, err := downshift.ParseEngine(p.Engine); err != nil {
		return err
	}
	if p.CutoffHz <= 0 {
		return fmt.Errorf("%w: cutoff must be positive, got %g",
			downshift.ErrInvalidConfiguration, p.CutoffHz)
	}
	s.data.Profiles[name] = p
	return s.flush()
}

// Delete removes a named profile. The built-in defaults cannot be
// deleted.
func (s *Store) Delete(name string) error {
	if name == DefaultAccurateName || name == DefaultFastName {
		return fmt.Errorf("profile %q is built in and cannot be deleted", name)
	}
	if _, ok := s.data.Profiles[name]; !ok {
		return fmt.Errorf("profile %q not found", name)
	}
	delete(s.data.Profiles, name)
	return s.flush()
}

// Names returns all profile names in sorted order.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.data.Profiles))
	for name := range s.data.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AppSettings returns the stored application preferences.
func (s *Store) AppSettings() Settings {
	return s.data.Settings
}

// SetAppSettings replaces the application preferences and persists.
func (s *Store) SetAppSettings(set Settings) error {
	s.data.Settings = set
	return s.flush()
}

// Config converts a profile to transform configuration.
func (p Profile) Config() (*downshift.Config, error) {
	eng, err := downshift.ParseEngine(p.Engine)
	if err != nil {
		return nil, err
	}
	cfg := &downshift.Config{CutoffHz: p.CutoffHz, Engine: eng}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s *Store) flush() error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating profile directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding profiles: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing profiles %s: %w", s.path, err)
	}
	return nil
}
