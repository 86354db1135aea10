package profile

import "errors"

// Error kinds shared by the profile store and the command resolver.
// Callers match them with errors.Is; the wrapping message names the offending input.
var (
	ErrValidation   = errors.New("invalid profile name")
	ErrNotFound     = errors.New("profile not found")
	ErrTypeMismatch = errors.New("unexpected profile shape")
	ErrLeafConflict = errors.New("profile is leaf")
	ErrStoreIO      = errors.New("profile store I/O failed")
	ErrStoreParse   = errors.New("malformed profile store")
)
