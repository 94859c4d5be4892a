// Package prefs persists per-account display preferences: color, label and
// identity profile assignments, plus the manually added profile list.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/byterings/hubswitch/internal/git"
	"github.com/byterings/hubswitch/internal/platform"
)

// One file per namespace so corruption or absence of one never affects the
// others. Reads that fail to decode degrade to the empty value; this is an
// advisory cache, not authoritative data.
const (
	colorsFileName   = "colors.toml"
	labelsFileName   = "labels.toml"
	profilesFileName = "profiles.toml"
	manualFileName   = "manual_profiles.toml"
)

type colorsFile struct {
	Colors map[string]int `toml:"colors"`
}

type labelsFile struct {
	Labels map[string]string `toml:"labels"`
}

type profilesFile struct {
	Profiles map[string]git.IdentityProfile `toml:"profiles"`
}

type manualFile struct {
	Profiles []git.IdentityProfile `toml:"profiles"`
}

// Store is a key-value preference store keyed by account identity.
type Store struct {
	dir string
}

// DefaultDir returns the standard preference directory (~/.hubswitch).
func DefaultDir() (string, error) {
	return platform.GetConfigDir()
}

// New builds a Store over the given directory, creating it if needed.
func New(dir string) (*Store, error) {
	if err := platform.MkdirSecure(dir); err != nil {
		return nil, fmt.Errorf("failed to create preference directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// ColorIndex returns the stored palette index for the account, or the
// derived default when unset or out of range for the current palette.
func (s *Store) ColorIndex(id string) int {
	var f colorsFile
	s.load(colorsFileName, &f)
	if idx, ok := f.Colors[id]; ok && idx >= 0 && idx < PaletteSize() {
		return idx
	}
	return DefaultColorIndex(id)
}

// SetColorIndex stores a palette index for the account. Out-of-range
// indexes are ignored.
func (s *Store) SetColorIndex(id string, index int) error {
	if index < 0 || index >= PaletteSize() {
		return nil
	}
	var f colorsFile
	s.load(colorsFileName, &f)
	if f.Colors == nil {
		f.Colors = make(map[string]int)
	}
	f.Colors[id] = index
	return s.save(colorsFileName, &f)
}

// Label returns the stored display label for the account, or "" when unset.
func (s *Store) Label(id string) string {
	var f labelsFile
	s.load(labelsFileName, &f)
	return f.Labels[id]
}

// SetLabel stores a display label for the account. An empty or
// whitespace-only value clears the entry.
func (s *Store) SetLabel(id, label string) error {
	var f labelsFile
	s.load(labelsFileName, &f)
	if strings.TrimSpace(label) == "" {
		if _, ok := f.Labels[id]; !ok {
			return nil
		}
		delete(f.Labels, id)
	} else {
		if f.Labels == nil {
			f.Labels = make(map[string]string)
		}
		f.Labels[id] = label
	}
	return s.save(labelsFileName, &f)
}

// Profile returns the identity profile assigned to the account, empty when
// unset.
func (s *Store) Profile(id string) git.IdentityProfile {
	var f profilesFile
	s.load(profilesFileName, &f)
	return f.Profiles[id]
}

// SetProfile assigns an identity profile to the account. An empty profile
// removes the assignment.
func (s *Store) SetProfile(id string, profile git.IdentityProfile) error {
	var f profilesFile
	s.load(profilesFileName, &f)
	if profile.IsEmpty() {
		if _, ok := f.Profiles[id]; !ok {
			return nil
		}
		delete(f.Profiles, id)
	} else {
		if f.Profiles == nil {
			f.Profiles = make(map[string]git.IdentityProfile)
		}
		f.Profiles[id] = profile
	}
	return s.save(profilesFileName, &f)
}

// ManualProfiles returns the user-added profile list, sorted by display
// label.
func (s *Store) ManualProfiles() []git.IdentityProfile {
	var f manualFile
	s.load(manualFileName, &f)
	return f.Profiles
}

// AddManualProfile inserts a profile into the manual list. Empty profiles
// and exact duplicates are no-ops; the list is re-sorted on every insert.
func (s *Store) AddManualProfile(profile git.IdentityProfile) error {
	if profile.IsEmpty() {
		return nil
	}
	var f manualFile
	s.load(manualFileName, &f)
	for _, p := range f.Profiles {
		if p == profile {
			return nil
		}
	}
	f.Profiles = append(f.Profiles, profile)
	git.SortProfiles(f.Profiles)
	return s.save(manualFileName, &f)
}

// RemoveManualProfile removes a profile from the manual list by equality.
func (s *Store) RemoveManualProfile(profile git.IdentityProfile) error {
	var f manualFile
	s.load(manualFileName, &f)
	kept := f.Profiles[:0]
	removed := false
	for _, p := range f.Profiles {
		if p == profile {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	if !removed {
		return nil
	}
	f.Profiles = kept
	return s.save(manualFileName, &f)
}

// load decodes one namespace file into v. Missing or corrupt files leave v
// at its zero value.
func (s *Store) load(name string, v any) {
	path := filepath.Join(s.dir, name)
	if _, err := os.Stat(path); err != nil {
		return
	}
	_, _ = toml.DecodeFile(path, v)
}

func (s *Store) save(name string, v any) error {
	f, err := platform.OpenFileSecure(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
	if err != nil {
		return fmt.Errorf("failed to open preference file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(v); err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	return nil
}
