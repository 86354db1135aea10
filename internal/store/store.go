// Package store holds the profile document: an ordered YAML tree whose root
// entries are either leaf profiles (tables with both local and remote) or
// groups of leaf profiles. The whole document is loaded once, mutated in
// memory and written back in one piece.
package store

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"ez-sync/internal/logger"
	"ez-sync/internal/profile"

	"gopkg.in/yaml.v3"
)

// Store is an in-memory profile document. It is not safe for concurrent use;
// commands finish every mutation before any sync starts.
type Store struct {
	doc *yaml.Node
}

// New returns an empty store.
func New() *Store {
	return &Store{doc: emptyDocument()}
}

// Load reads and validates the document at path. An empty file is an empty store.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", profile.ErrStoreIO, path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Debug("[DEBUG] Loaded %d root entries from %s\n", len(s.root().Content)/2, path)
	return s, nil
}

// Parse decodes and validates a document held in memory.
func Parse(data []byte) (*Store, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", profile.ErrStoreParse, err)
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || isNull(doc.Content[0]) {
		// Nothing but comments: keep them as the header of the new document.
		s := New()
		s.doc.HeadComment = commentLines(data)
		return s, nil
	}
	if doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level must be a table of profiles", profile.ErrStoreParse)
	}

	s := &Store{doc: &doc}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Bytes serializes the whole document with two-space indentation. A store
// without entries serializes to its header comment only, or to nothing.
func (s *Store) Bytes() ([]byte, error) {
	if len(s.root().Content) == 0 {
		if s.doc.HeadComment == "" {
			return nil, nil
		}
		return []byte(s.doc.HeadComment + "\n"), nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s.doc); err != nil {
		return nil, fmt.Errorf("encode profiles: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode profiles: %w", err)
	}
	return buf.Bytes(), nil
}

// Save overwrites path with the whole document.
func (s *Store) Save(path string) error {
	data, err := s.Bytes()
	if err != nil {
		return err
	}

	logger.Debug("[DEBUG] Writing profiles to %s:\n%s\n", path, data)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: write %s: %v", profile.ErrStoreIO, path, err)
	}
	return nil
}

func (s *Store) root() *yaml.Node {
	return s.doc.Content[0]
}

func emptyDocument() *yaml.Node {
	return &yaml.Node{
		Kind:    yaml.DocumentNode,
		Content: []*yaml.Node{newTable()},
	}
}

// isNull reports an explicitly empty document such as "---" or "~".
func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

// commentLines keeps the comment lines of a document that holds no entries.
func commentLines(data []byte) string {
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); strings.HasPrefix(line, "#") {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func newTable() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}
