package store

import (
	"errors"
	"fmt"

	"ez-sync/internal/profile"

	"gopkg.in/yaml.v3"
)

// validate rejects the shapes the two-level model cannot represent: a table
// carrying only one of local/remote, non-string paths, and tables nested
// under a group that are not leaf profiles. Repeated keys and aliases are
// rejected too, since lookups and edits only ever see the first entry and
// never follow an alias. Other non-table values are left alone.
func (s *Store) validate() error {
	var errs []error
	errs = append(errs, checkEntries("", s.root())...)
	entries(s.root(), func(key string, value *yaml.Node) {
		if !isTable(value) {
			return
		}
		root := profile.Root{Name: key}
		errs = append(errs, checkEntries(key, value)...)
		if err := checkHalfLeaf(root, value); err != nil {
			errs = append(errs, err)
			return
		}
		if isLeaf(value) {
			if _, err := profile.FromTable(root, value); err != nil {
				errs = append(errs, fmt.Errorf("%w: %v", profile.ErrStoreParse, err))
			}
			return
		}

		entries(value, func(childKey string, child *yaml.Node) {
			if !isTable(child) {
				return
			}
			name := profile.Child{Parent: key, Name: childKey}
			errs = append(errs, checkEntries(name.String(), child)...)
			if err := checkHalfLeaf(name, child); err != nil {
				errs = append(errs, err)
				return
			}
			if !isLeaf(child) {
				errs = append(errs, fmt.Errorf("%w: %s is not a profile, only single and double layered profiles are supported",
					profile.ErrStoreParse, name))
				return
			}
			if _, err := profile.FromTable(name, child); err != nil {
				errs = append(errs, fmt.Errorf("%w: %v", profile.ErrStoreParse, err))
			}
		})
	})
	return errors.Join(errs...)
}

// checkEntries reports keys defined more than once in table and values that
// are aliases. prefix is the dotted path of table, empty for the top level.
func checkEntries(prefix string, table *yaml.Node) []error {
	var errs []error
	seen := make(map[string]bool)
	entries(table, func(key string, value *yaml.Node) {
		path := key
		if prefix != "" {
			path = prefix + profile.Separator + key
		}
		if seen[key] {
			errs = append(errs, fmt.Errorf("%w: %s is defined more than once", profile.ErrStoreParse, path))
		}
		seen[key] = true
		if value.Kind == yaml.AliasNode {
			errs = append(errs, fmt.Errorf("%w: %s is an alias, aliases are not supported", profile.ErrStoreParse, path))
		}
	})
	return errs
}

func checkHalfLeaf(name profile.Name, table *yaml.Node) error {
	hasLocal := indexOf(table, profile.LocalKey) >= 0
	hasRemote := indexOf(table, profile.RemoteKey) >= 0
	if hasLocal != hasRemote {
		return fmt.Errorf("%w: %s must define both %s and %s",
			profile.ErrStoreParse, name, profile.LocalKey, profile.RemoteKey)
	}
	return nil
}
