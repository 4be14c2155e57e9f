// Package profile keeps named snapshots of a deployer's state files.
//
// The live files in the state dir always belong to the current profile.
// Every profile also owns a slot directory, profiles/<id>, holding its own
// copy. Switching saves the live files into the current slot and then
// copies the target slot over them. The manifest, profiles.yaml, records
// the profiles and which one is current.
package profile

import (
	"path/filepath"
	"slices"
	"strconv"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/alekulyn/limo/pkg/errors"
	"github.com/alekulyn/limo/pkg/filesystem"
	"github.com/alekulyn/limo/pkg/logging"
	"github.com/alekulyn/limo/pkg/types"
)

const (
	ManifestFile = "profiles.yaml"
	DefaultName  = "Default"
	slotsDir     = "profiles"
)

// Profile identifies one snapshot.
type Profile struct {
	ID   int    `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
}

type manifest struct {
	Current  int       `yaml:"current"`
	NextID   int       `yaml:"next_id"`
	Profiles []Profile `yaml:"profiles"`
}

// Store manages the profiles of one state dir.
type Store struct {
	fs     types.FS
	dir    string
	files  []string
	m      manifest
	logger zerolog.Logger
}

// Open loads the manifest in dir, creating one with a single Default
// profile when it is missing. files are the live file names, relative to
// dir, that each profile snapshots.
func Open(fsys types.FS, dir string, files []string) (*Store, error) {
	s := &Store{
		fs:     fsys,
		dir:    dir,
		files:  slices.Clone(files),
		logger: logging.GetLogger("profile").With().Str("dir", dir).Logger(),
	}

	path := s.manifestPath()
	exists, err := filesystem.Exists(fsys, path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to stat %s", path)
	}
	if !exists {
		s.m = manifest{Current: 0, NextID: 1, Profiles: []Profile{{ID: 0, Name: DefaultName}}}
		s.logger.Debug().Msg("Creating profile manifest")
		if err := s.save(); err != nil {
			return nil, err
		}
		return s, nil
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", path)
	}
	if err := yaml.Unmarshal(data, &s.m); err != nil {
		return nil, errors.Wrapf(err, errors.ErrStateCorrupt, "profile manifest %s is not valid YAML", path)
	}
	if s.index(s.m.Current) < 0 {
		return nil, errors.Newf(errors.ErrStateCorrupt, "profile manifest %s names unknown current profile %d", path, s.m.Current).
			WithDetail("path", path)
	}
	for _, p := range s.m.Profiles {
		if p.ID >= s.m.NextID {
			s.m.NextID = p.ID + 1
		}
	}
	return s, nil
}

func (s *Store) manifestPath() string {
	return filepath.Join(s.dir, ManifestFile)
}

func (s *Store) slotDir(id int) string {
	return filepath.Join(s.dir, slotsDir, strconv.Itoa(id))
}

func (s *Store) save() error {
	data, err := yaml.Marshal(&s.m)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode profile manifest")
	}
	if err := filesystem.WriteFileAtomic(s.fs, s.manifestPath(), data); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", s.manifestPath())
	}
	return nil
}

func (s *Store) index(id int) int {
	return slices.IndexFunc(s.m.Profiles, func(p Profile) bool { return p.ID == id })
}

func (s *Store) lookup(id int) (int, error) {
	i := s.index(id)
	if i < 0 {
		return -1, errors.Newf(errors.ErrProfileNotFound, "profile %d does not exist", id).WithDetail("id", id)
	}
	return i, nil
}

// copyFiles copies every snapshotted file from src to dst. Files missing in
// src are removed from dst so the destination mirrors the source.
func (s *Store) copyFiles(src, dst string) error {
	for _, name := range s.files {
		from := filepath.Join(src, name)
		to := filepath.Join(dst, name)
		exists, err := filesystem.Exists(s.fs, from)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileRead, "failed to stat %s", from)
		}
		if !exists {
			if err := s.fs.RemoveAll(to); err != nil {
				return errors.Wrapf(err, errors.ErrFileWrite, "failed to remove %s", to)
			}
			continue
		}
		if err := filesystem.CopyFile(s.fs, from, to); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "failed to copy %s to %s", from, to)
		}
	}
	return nil
}

// Add creates a profile named name. Its files are copied from the slot of
// copyFrom, or from the live files when copyFrom is negative, unknown, or
// the current profile.
func (s *Store) Add(name string, copyFrom int) (Profile, error) {
	if name == "" {
		return Profile{}, errors.New(errors.ErrInvalidInput, "profile name cannot be empty")
	}
	if slices.ContainsFunc(s.m.Profiles, func(p Profile) bool { return p.Name == name }) {
		return Profile{}, errors.Newf(errors.ErrAlreadyExists, "profile %q already exists", name)
	}

	p := Profile{ID: s.m.NextID, Name: name}
	src := s.dir
	if copyFrom >= 0 && copyFrom != s.m.Current && s.index(copyFrom) >= 0 {
		src = s.slotDir(copyFrom)
	}
	if err := s.fs.MkdirAll(s.slotDir(p.ID), 0755); err != nil {
		return Profile{}, errors.Wrapf(err, errors.ErrFileWrite, "failed to create profile slot %d", p.ID)
	}
	if err := s.copyFiles(src, s.slotDir(p.ID)); err != nil {
		return Profile{}, err
	}

	s.m.NextID++
	s.m.Profiles = append(s.m.Profiles, p)
	if err := s.save(); err != nil {
		return Profile{}, err
	}
	s.logger.Info().Int("id", p.ID).Str("name", name).Str("from", src).Msg("Added profile")
	return p, nil
}

// Switch makes id the current profile. It reports whether anything
// changed; switching to the current profile is a no-op.
func (s *Store) Switch(id int) (bool, error) {
	if _, err := s.lookup(id); err != nil {
		return false, err
	}
	if id == s.m.Current {
		return false, nil
	}

	if err := s.copyFiles(s.dir, s.slotDir(s.m.Current)); err != nil {
		return false, err
	}
	if err := s.copyFiles(s.slotDir(id), s.dir); err != nil {
		return false, err
	}

	prev := s.m.Current
	s.m.Current = id
	if err := s.save(); err != nil {
		return false, err
	}
	s.logger.Info().Int("from", prev).Int("to", id).Msg("Switched profile")
	return true, nil
}

// Remove deletes a profile and its slot. The current profile cannot be
// removed.
func (s *Store) Remove(id int) error {
	i, err := s.lookup(id)
	if err != nil {
		return err
	}
	if id == s.m.Current {
		return errors.Newf(errors.ErrProfileActive, "profile %q is active and cannot be removed", s.m.Profiles[i].Name).
			WithDetail("id", id)
	}
	if err := s.fs.RemoveAll(s.slotDir(id)); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to remove profile slot %d", id)
	}
	s.m.Profiles = slices.Delete(s.m.Profiles, i, i+1)
	return s.save()
}

// Rename changes the name of profile id.
func (s *Store) Rename(id int, name string) error {
	i, err := s.lookup(id)
	if err != nil {
		return err
	}
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "profile name cannot be empty")
	}
	for _, p := range s.m.Profiles {
		if p.Name == name && p.ID != id {
			return errors.Newf(errors.ErrAlreadyExists, "profile %q already exists", name)
		}
	}
	s.m.Profiles[i].Name = name
	return s.save()
}

// List returns the profiles in creation order.
func (s *Store) List() []Profile {
	return slices.Clone(s.m.Profiles)
}

// Names returns the profile names in creation order.
func (s *Store) Names() []string {
	out := make([]string, len(s.m.Profiles))
	for i, p := range s.m.Profiles {
		out[i] = p.Name
	}
	return out
}

// Current returns the active profile.
func (s *Store) Current() Profile {
	return s.m.Profiles[s.index(s.m.Current)]
}

// Get returns profile id.
func (s *Store) Get(id int) (Profile, error) {
	i, err := s.lookup(id)
	if err != nil {
		return Profile{}, err
	}
	return s.m.Profiles[i], nil
}
