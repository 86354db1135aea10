package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"ez-sync/internal/logger"
	"ez-sync/internal/profile"
)

const (
	// AppDir is the directory created under the user's config directory.
	AppDir = "ez-sync"
	// ProfilesFile holds every profile.
	ProfilesFile = "profiles.yaml"
)

// Resolve returns the profile store to use. An explicit override must point
// at an existing file; without one the per-user default is created on demand.
func Resolve(override string) (string, error) {
	if override == "" {
		return DefaultPath()
	}
	info, err := os.Stat(override)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: specified config file %s not found", profile.ErrStoreIO, override)
		}
		return "", fmt.Errorf("%w: %v", profile.ErrStoreIO, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: specified config %s is a directory", profile.ErrStoreIO, override)
	}
	return override, nil
}

// DefaultPath returns <user config dir>/ez-sync/profiles.yaml, creating it when missing.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%w: config dir not found, specify one with --config <path>: %v", profile.ErrStoreIO, err)
	}
	return EnsureDefault(base)
}

// EnsureDefault creates base/ez-sync/profiles.yaml as an empty file if it does
// not exist yet and returns its path. Existing files are left untouched.
func EnsureDefault(base string) (string, error) {
	dir := filepath.Join(base, AppDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("%w: failed to create config folder at %s: %v", profile.ErrStoreIO, dir, err)
	}

	path := filepath.Join(dir, ProfilesFile)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	switch {
	case err == nil:
		logger.Debug("[DEBUG] Created empty profile store at %s\n", path)
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("%w: %v", profile.ErrStoreIO, err)
		}
	case errors.Is(err, os.ErrExist):
	default:
		return "", fmt.Errorf("%w: failed to create %s: %v", profile.ErrStoreIO, path, err)
	}
	return path, nil
}
