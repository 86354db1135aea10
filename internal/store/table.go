package store

import (
	"ez-sync/internal/profile"

	"gopkg.in/yaml.v3"
)

// Mapping nodes keep their entries as alternating key and value nodes in
// Content; these helpers work on that layout and preserve entry order.

func get(table *yaml.Node, key string) *yaml.Node {
	if i := indexOf(table, key); i >= 0 {
		return table.Content[i+1]
	}
	return nil
}

func indexOf(table *yaml.Node, key string) int {
	for i := 0; i+1 < len(table.Content); i += 2 {
		if table.Content[i].Value == key {
			return i
		}
	}
	return -1
}

// set overwrites key in place, or appends it when absent.
func set(table *yaml.Node, key string, value *yaml.Node) {
	if i := indexOf(table, key); i >= 0 {
		table.Content[i+1] = value
		return
	}
	table.Content = append(table.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		value)
}

func remove(table *yaml.Node, key string) bool {
	i := indexOf(table, key)
	if i < 0 {
		return false
	}
	table.Content = append(table.Content[:i], table.Content[i+2:]...)
	return true
}

func isTable(n *yaml.Node) bool {
	return n != nil && n.Kind == yaml.MappingNode
}

// isLeaf reports whether n holds both reserved keys. Anything else that is a
// table is a group.
func isLeaf(n *yaml.Node) bool {
	return isTable(n) && indexOf(n, profile.LocalKey) >= 0 && indexOf(n, profile.RemoteKey) >= 0
}

// entries calls fn for every key/value pair of table in document order.
func entries(table *yaml.Node, fn func(key string, value *yaml.Node)) {
	for i := 0; i+1 < len(table.Content); i += 2 {
		fn(table.Content[i].Value, table.Content[i+1])
	}
}
