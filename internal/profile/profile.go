package profile

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// Reserved keys of a leaf table.
const (
	LocalKey  = "local"
	RemoteKey = "remote"
)

var (
	nameColor = color.New(color.FgGreen, color.Bold)
	keyColor  = color.New(color.FgYellow)
)

// Profile is a named local/remote path pair with environment variables already expanded.
type Profile struct {
	Name   Name
	Local  string
	Remote string
}

// Sync is one directional transfer resolved from a Profile.
type Sync struct {
	Name   Name
	Source string
	Target string
}

// New builds a Profile, expanding $VAR, ${VAR} and a leading ~ in both paths.
func New(name Name, local, remote string) Profile {
	return Profile{
		Name:   name,
		Local:  ExpandPath(local),
		Remote: ExpandPath(remote),
	}
}

// FromTable builds a Profile from a leaf table holding string local and remote entries.
func FromTable(name Name, table *yaml.Node) (Profile, error) {
	if table == nil || table.Kind != yaml.MappingNode {
		return Profile{}, fmt.Errorf("%w: %s is not a table", ErrTypeMismatch, name)
	}
	local, err := stringEntry(name, table, LocalKey)
	if err != nil {
		return Profile{}, err
	}
	remote, err := stringEntry(name, table, RemoteKey)
	if err != nil {
		return Profile{}, err
	}
	return New(name, local, remote), nil
}

// Table builds the raw leaf table stored for a profile. Paths are stored as
// typed so that variables are expanded again on every read.
func Table(local, remote string) *yaml.Node {
	return &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
		Content: []*yaml.Node{
			stringNode(LocalKey), stringNode(local),
			stringNode(RemoteKey), stringNode(remote),
		},
	}
}

// Push syncs local onto remote.
func (p Profile) Push() Sync {
	return Sync{Name: p.Name, Source: p.Local, Target: p.Remote}
}

// Pull syncs remote onto local.
func (p Profile) Pull() Sync {
	return Sync{Name: p.Name, Source: p.Remote, Target: p.Local}
}

// String renders the listing line "[name] local: L remote: R".
func (p Profile) String() string {
	return fmt.Sprintf("[%s] %s: %s %s: %s",
		nameColor.Sprint(p.Name),
		keyColor.Sprint(LocalKey), p.Local,
		keyColor.Sprint(RemoteKey), p.Remote)
}

// ExpandPath replaces environment variables and a leading ~ with the user's home directory.
func ExpandPath(path string) string {
	path = os.ExpandEnv(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			// Join would drop a trailing separator, and rsync cares about it.
			return home + strings.TrimPrefix(path, "~")
		}
	}
	return path
}

func stringEntry(name Name, table *yaml.Node, key string) (string, error) {
	for i := 0; i+1 < len(table.Content); i += 2 {
		if table.Content[i].Value != key {
			continue
		}
		v := table.Content[i+1]
		if v.Kind != yaml.ScalarNode || v.ShortTag() != "!!str" {
			return "", fmt.Errorf("%w: %s.%s must be a string", ErrTypeMismatch, name, key)
		}
		return v.Value, nil
	}
	return "", fmt.Errorf("%w: %s has no %s path", ErrTypeMismatch, name, key)
}

func stringNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}
