// Package resolver turns a validated user action into something concrete:
// a pending store mutation, a batch of directional syncs, or a listing.
// It never touches the filesystem; persisting a mutation is the caller's job.
package resolver

import (
	"fmt"

	"ez-sync/internal/profile"
	"ez-sync/internal/store"

	"gopkg.in/yaml.v3"
)

// Action is what the user asked for.
type Action interface {
	isAction()
}

type (
	// Add stores a profile under Name, or under group.name for a grouped one.
	Add struct {
		Name   string
		Local  string
		Remote string
	}
	// Remove deletes a profile, or a group with all of its profiles.
	Remove struct{ Name string }
	// Push copies local onto remote for a profile, a group, or "all".
	Push struct{ Name string }
	// Pull copies remote onto local for a profile, a group, or "all".
	Pull struct{ Name string }
	// List shows every leaf profile.
	List struct{}
)

func (Add) isAction()    {}
func (Remove) isAction() {}
func (Push) isAction()   {}
func (Pull) isAction()   {}
func (List) isAction()   {}

// Command is a resolved action.
type Command interface {
	isCommand()
}

type (
	// PendingAdd stores Table under Name once applied.
	PendingAdd struct {
		Name  profile.Name
		Table *yaml.Node
	}
	// PendingRemove deletes Name once applied.
	PendingRemove struct {
		Name profile.Name
	}
	// Batch is ready for the orchestrator; it no longer depends on the store.
	Batch struct {
		Syncs []profile.Sync
	}
	// Listing holds every leaf profile.
	Listing struct {
		Profiles []profile.Profile
	}
)

func (PendingAdd) isCommand()    {}
func (PendingRemove) isCommand() {}
func (Batch) isCommand()         {}
func (Listing) isCommand()       {}

// Resolve validates a and reads whatever it needs from s. It never mutates s.
func Resolve(s *store.Store, a Action) (Command, error) {
	switch a := a.(type) {
	case Add:
		if err := profile.CheckNotReserved(a.Name); err != nil {
			return nil, err
		}
		name, err := profile.ParseName(a.Name)
		if err != nil {
			return nil, err
		}
		if a.Local == "" || a.Remote == "" {
			return nil, fmt.Errorf("%w: %s needs both a local and a remote path", profile.ErrValidation, name)
		}
		return PendingAdd{Name: name, Table: profile.Table(a.Local, a.Remote)}, nil

	case Remove:
		if a.Name == profile.Reserved {
			return nil, fmt.Errorf("%w: cannot remove '%s', delete the config file instead to drop every profile",
				profile.ErrValidation, profile.Reserved)
		}
		name, err := profile.ParseName(a.Name)
		if err != nil {
			return nil, err
		}
		return PendingRemove{Name: name}, nil

	case Push:
		return batch(s, a.Name, profile.Profile.Push)

	case Pull:
		return batch(s, a.Name, profile.Profile.Pull)

	case List:
		return Listing{Profiles: s.LeafProfiles()}, nil

	default:
		return nil, fmt.Errorf("unsupported action %T", a)
	}
}

// Apply performs a pending mutation on s and returns the profiles it added
// or removed. Read-only commands leave s alone and return nothing.
func Apply(s *store.Store, c Command) ([]profile.Profile, error) {
	switch c := c.(type) {
	case PendingAdd:
		added, err := profile.FromTable(c.Name, c.Table)
		if err != nil {
			return nil, err
		}
		if err := s.AddProfile(c.Name, c.Table); err != nil {
			return nil, err
		}
		return []profile.Profile{added}, nil

	case PendingRemove:
		return s.RemoveProfile(c.Name)

	default:
		return nil, nil
	}
}

// Mutates reports whether c changes the store and therefore has to be saved.
func Mutates(c Command) bool {
	switch c.(type) {
	case PendingAdd, PendingRemove:
		return true
	default:
		return false
	}
}

// batch resolves raw to profiles, or to every leaf profile for the reserved
// name, and applies the same direction to each.
func batch(s *store.Store, raw string, direction func(profile.Profile) profile.Sync) (Command, error) {
	var profiles []profile.Profile
	if raw == profile.Reserved {
		profiles = s.LeafProfiles()
	} else {
		name, err := profile.ParseName(raw)
		if err != nil {
			return nil, err
		}
		if profiles, err = s.GetProfiles(name); err != nil {
			return nil, err
		}
	}

	syncs := make([]profile.Sync, 0, len(profiles))
	for _, p := range profiles {
		syncs = append(syncs, direction(p))
	}
	return Batch{Syncs: syncs}, nil
}
