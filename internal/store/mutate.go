package store

import (
	"fmt"

	"ez-sync/internal/logger"
	"ez-sync/internal/profile"

	"gopkg.in/yaml.v3"
)

// AddProfile stores table under name, replacing whatever was there.
//
// A root name is written unconditionally, so a group may be replaced by a
// leaf and the other way round. A child name creates its group on demand but
// refuses to add children to a leaf profile.
func (s *Store) AddProfile(name profile.Name, table *yaml.Node) error {
	switch n := name.(type) {
	case profile.Root:
		set(s.root(), n.Name, table)

	case profile.Child:
		if n.Name == profile.LocalKey || n.Name == profile.RemoteKey {
			return fmt.Errorf("%w: %q is a reserved key and cannot name a child profile", profile.ErrValidation, n.Name)
		}
		parent := get(s.root(), n.Parent)
		if parent == nil {
			logger.Debug("[DEBUG] Creating group %s\n", n.Parent)
			parent = newTable()
			set(s.root(), n.Parent, parent)
		}
		if err := checkGroup(n.Parent, parent); err != nil {
			return err
		}
		set(parent, n.Name, table)

	default:
		return fmt.Errorf("%w: unsupported name %T", profile.ErrValidation, name)
	}

	logger.Debug("[DEBUG] Added %s\n", name)
	return nil
}

// RemoveProfile deletes name and returns the profiles it held. Removing a
// group removes all of its children.
func (s *Store) RemoveProfile(name profile.Name) ([]profile.Profile, error) {
	switch n := name.(type) {
	case profile.Root:
		removed, err := s.GetProfiles(n)
		if err != nil {
			return nil, err
		}
		remove(s.root(), n.Name)
		logger.Debug("[DEBUG] Removed %s with %d profile(s)\n", n, len(removed))
		return removed, nil

	case profile.Child:
		parent := get(s.root(), n.Parent)
		if parent == nil {
			return nil, fmt.Errorf("%w: %q", profile.ErrNotFound, n.Parent)
		}
		if err := checkGroup(n.Parent, parent); err != nil {
			return nil, err
		}
		child := get(parent, n.Name)
		if child == nil {
			return nil, fmt.Errorf("%w: %q in %q", profile.ErrNotFound, n.Name, n.Parent)
		}
		p, err := profile.FromTable(n, child)
		if err != nil {
			return nil, err
		}
		remove(parent, n.Name)
		logger.Debug("[DEBUG] Removed %s\n", n)
		return []profile.Profile{p}, nil

	default:
		return nil, fmt.Errorf("%w: unsupported name %T", profile.ErrValidation, name)
	}
}

// checkGroup ensures value can hold child profiles.
func checkGroup(name string, value *yaml.Node) error {
	if !isTable(value) {
		return fmt.Errorf("%w: %q is not a group", profile.ErrTypeMismatch, name)
	}
	if isLeaf(value) {
		return fmt.Errorf("%w: %q already has local and remote paths and cannot hold child profiles",
			profile.ErrLeafConflict, name)
	}
	return nil
}
