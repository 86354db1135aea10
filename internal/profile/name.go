package profile

import (
	"fmt"
	"strings"
)

// Reserved selects every leaf profile and can never be used as a literal profile name.
const Reserved = "all"

// Separator joins a group name and a child name.
const Separator = "."

// Name addresses a profile in the store. It is either a Root or a Child;
// the unexported marker method keeps the set closed so type switches over
// Name only ever need those two cases.
type Name interface {
	fmt.Stringer
	isName()
}

// Root names a top-level entry, which may be a leaf profile or a group.
type Root struct {
	Name string
}

// Child names a leaf profile nested one level under a group.
type Child struct {
	Parent string
	Name   string
}

func (Root) isName()  {}
func (Child) isName() {}

// String returns the bare name.
func (r Root) String() string { return r.Name }

// String returns parent.name.
func (c Child) String() string { return c.Parent + Separator + c.Name }

// ParseName splits raw on "." into a Root (no dot) or a Child (one dot).
// Deeper nesting and empty segments are rejected. No trimming or case
// folding is applied: lookups compare keys byte for byte.
func ParseName(raw string) (Name, error) {
	segments := strings.Split(raw, Separator)
	for _, s := range segments {
		if s == "" {
			return nil, fmt.Errorf("%w: empty segment in %q", ErrValidation, raw)
		}
	}

	switch len(segments) {
	case 1:
		return Root{Name: segments[0]}, nil
	case 2:
		return Child{Parent: segments[0], Name: segments[1]}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported nesting depth in %q, only single and double layered profiles are supported",
			ErrValidation, raw)
	}
}

// CheckNotReserved rejects the sentinel as an explicit profile name.
func CheckNotReserved(raw string) error {
	if raw == Reserved {
		return fmt.Errorf("%w: cannot use '%s' as profile name, it selects every profile", ErrValidation, Reserved)
	}
	return nil
}
