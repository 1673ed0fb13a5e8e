package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ModelMap is an insertion-ordered map of model name to ModelEntry.
//
// Plain Go maps do not keep key order, but downstream consumers (the record
// normalizer, the rankings tables) need deterministic iteration that matches
// the order models appeared in the source document. ModelMap preserves that
// order across JSON round trips.
type ModelMap struct {
	keys    []string
	entries map[string]*ModelEntry
}

// NewModelMap returns an empty ModelMap.
func NewModelMap() *ModelMap {
	return &ModelMap{entries: make(map[string]*ModelEntry)}
}

// Len returns the number of models.
func (m *ModelMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the model names in insertion order. The returned slice must
// not be mutated.
func (m *ModelMap) Keys() []string {
	if m == nil {
		return nil
	}
	return m.keys
}

// Get returns the entry for name, or nil if absent.
func (m *ModelMap) Get(name string) *ModelEntry {
	if m == nil || m.entries == nil {
		return nil
	}
	return m.entries[name]
}

// Set stores entry under name, appending name to the key order on first
// insertion. Setting an existing name replaces the entry in place.
func (m *ModelMap) Set(name string, entry *ModelEntry) {
	if m.entries == nil {
		m.entries = make(map[string]*ModelEntry)
	}
	if _, ok := m.entries[name]; !ok {
		m.keys = append(m.keys, name)
	}
	m.entries[name] = entry
}

// Delete removes name from the map and the key order. Deleting an absent
// name is a no-op.
func (m *ModelMap) Delete(name string) {
	if m == nil || m.entries == nil {
		return
	}
	if _, ok := m.entries[name]; !ok {
		return
	}
	delete(m.entries, name)
	for i, k := range m.keys {
		if k == name {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// MarshalJSON writes the map as a JSON object with keys in insertion order.
func (m ModelMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(m.entries[k])
		if err != nil {
			return nil, fmt.Errorf("marshaling model %q: %w", k, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, recording keys in document order.
func (m *ModelMap) UnmarshalJSON(data []byte) error {
	m.keys = nil
	m.entries = make(map[string]*ModelEntry)

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil // JSON null → empty map
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("mlips: expected JSON object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("mlips: expected string key, got %v", tok)
		}
		var entry ModelEntry
		if err := dec.Decode(&entry); err != nil {
			return fmt.Errorf("mlips: decoding model %q: %w", name, err)
		}
		m.Set(name, &entry)
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
