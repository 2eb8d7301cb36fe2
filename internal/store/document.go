package store

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"swapman/pkg/types"
)

// Document is the declarative state handed to the swap service: a mapping of
// model name to launch entry. Key insertion order is preserved through
// load/save so operator edits stay where they were written.
type Document struct {
	Models Entries `yaml:"models"`
}

// NewDocument returns an empty document.
func NewDocument() Document {
	return Document{Models: NewEntries()}
}

// Entries is an insertion-ordered models mapping. The zero value is not
// usable; construct with NewEntries or let yaml unmarshalling populate it.
type Entries struct {
	names  []string
	byName map[string]types.LaunchEntry
}

// NewEntries returns an empty mapping.
func NewEntries() Entries {
	return Entries{byName: map[string]types.LaunchEntry{}}
}

// EntriesFromMap builds an ordered mapping from a plain map. Go maps carry no
// order, so keys are sorted for a stable on-disk result.
func EntriesFromMap(m map[string]types.LaunchEntry) Entries {
	e := NewEntries()
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		e.Set(name, m[name])
	}
	return e
}

// Set inserts or overwrites an entry. New names append to the order.
func (e *Entries) Set(name string, entry types.LaunchEntry) {
	if e.byName == nil {
		e.byName = map[string]types.LaunchEntry{}
	}
	if _, ok := e.byName[name]; !ok {
		e.names = append(e.names, name)
	}
	e.byName[name] = entry
}

// Get looks up an entry by name.
func (e *Entries) Get(name string) (types.LaunchEntry, bool) {
	entry, ok := e.byName[name]
	return entry, ok
}

// Delete removes an entry, reporting whether it existed.
func (e *Entries) Delete(name string) bool {
	if _, ok := e.byName[name]; !ok {
		return false
	}
	delete(e.byName, name)
	for i, n := range e.names {
		if n == name {
			e.names = append(e.names[:i], e.names[i+1:]...)
			break
		}
	}
	return true
}

// Names returns the model names in insertion order.
func (e *Entries) Names() []string {
	out := make([]string, len(e.names))
	copy(out, e.names)
	return out
}

// Len reports the number of entries.
func (e *Entries) Len() int { return len(e.names) }

// Map returns a plain map copy for JSON responses.
func (e *Entries) Map() map[string]types.LaunchEntry {
	out := make(map[string]types.LaunchEntry, len(e.byName))
	for name, entry := range e.byName {
		out[name] = entry
	}
	return out
}

// MarshalYAML emits a block-style mapping in insertion order.
func (e Entries) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, name := range e.names {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name}
		valNode := &yaml.Node{}
		if err := valNode.Encode(e.byName[name]); err != nil {
			return nil, fmt.Errorf("encoding entry %s: %w", name, err)
		}
		node.Content = append(node.Content, keyNode, valNode)
	}
	return node, nil
}

// UnmarshalYAML reads a mapping, keeping the document's key order.
func (e *Entries) UnmarshalYAML(node *yaml.Node) error {
	*e = NewEntries()
	if node.Kind == 0 || node.Tag == "!!null" {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("models: expected a mapping, got %s", node.Tag)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		var entry types.LaunchEntry
		if err := node.Content[i+1].Decode(&entry); err != nil {
			return fmt.Errorf("decoding entry %s: %w", name, err)
		}
		e.Set(name, entry)
	}
	return nil
}
