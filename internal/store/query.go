package store

import (
	"fmt"

	"ez-sync/internal/logger"
	"ez-sync/internal/profile"

	"gopkg.in/yaml.v3"
)

// GetProfiles resolves name to the profiles it denotes: a root leaf yields
// itself, a root group yields each of its child tables, and a child name
// yields that single child.
func (s *Store) GetProfiles(name profile.Name) ([]profile.Profile, error) {
	switch n := name.(type) {
	case profile.Root:
		value := get(s.root(), n.Name)
		if value == nil {
			return nil, fmt.Errorf("%w: %q", profile.ErrNotFound, n.Name)
		}
		if !isTable(value) {
			return nil, fmt.Errorf("%w: %q is not a profile or a group", profile.ErrTypeMismatch, n.Name)
		}
		if isLeaf(value) {
			p, err := profile.FromTable(n, value)
			if err != nil {
				return nil, err
			}
			return []profile.Profile{p}, nil
		}
		return children(n.Name, value), nil

	case profile.Child:
		parent := get(s.root(), n.Parent)
		if parent == nil {
			return nil, fmt.Errorf("%w: %q", profile.ErrNotFound, n.Parent)
		}
		if !isTable(parent) {
			return nil, fmt.Errorf("%w: %q is not a group", profile.ErrTypeMismatch, n.Parent)
		}
		child := get(parent, n.Name)
		if child == nil {
			return nil, fmt.Errorf("%w: %q in %q", profile.ErrNotFound, n.Name, n.Parent)
		}
		if !isTable(child) {
			return nil, fmt.Errorf("%w: %q in %q is not a profile", profile.ErrTypeMismatch, n.Name, n.Parent)
		}
		p, err := profile.FromTable(n, child)
		if err != nil {
			return nil, err
		}
		return []profile.Profile{p}, nil

	default:
		return nil, fmt.Errorf("%w: unsupported name %T", profile.ErrValidation, name)
	}
}

// LeafProfiles lists every directly syncable profile: root leaves first, then
// the children of every root group, each in document order. Groups
// themselves are not listed.
func (s *Store) LeafProfiles() []profile.Profile {
	var leaves, nested []profile.Profile
	entries(s.root(), func(key string, value *yaml.Node) {
		if !isTable(value) {
			return
		}
		if isLeaf(value) {
			p, err := profile.FromTable(profile.Root{Name: key}, value)
			if err != nil {
				logger.Warn("[WARN] Skipping %s: %v\n", key, err)
				return
			}
			leaves = append(leaves, p)
			return
		}
		nested = append(nested, children(key, value)...)
	})
	return append(leaves, nested...)
}

// children converts the child tables of group into profiles. Non-table
// entries are unrelated keys and are skipped.
func children(group string, table *yaml.Node) []profile.Profile {
	var out []profile.Profile
	entries(table, func(key string, value *yaml.Node) {
		if !isTable(value) {
			return
		}
		p, err := profile.FromTable(profile.Child{Parent: group, Name: key}, value)
		if err != nil {
			logger.Warn("[WARN] Skipping %s.%s: %v\n", group, key, err)
			return
		}
		out = append(out, p)
	})
	return out
}
