// Package registry implements the Registry Store: an immutable, per-version
// mapping from registry name to the set of resource identifiers (and tags)
// legal for that registry, per spec §4.4 and §6.
package registry

import (
	"fmt"
	"sort"
	"sync"
)

// LookupResult distinguishes a found value from a missing value in a known
// registry from a wholly unknown registry, so the validator can phrase
// UnknownRegistryValue with the right hint, per spec §4.4.
type LookupResult int

const (
	Found LookupResult = iota
	NotFound
	RegistryUnknown
)

func (r LookupResult) String() string {
	switch r {
	case Found:
		return "Found"
	case NotFound:
		return "NotFound"
	case RegistryUnknown:
		return "RegistryUnknown"
	}
	return "Unknown"
}

// Store is the immutable, per-version Registry Store. It is safe for
// concurrent reads; it is never mutated after New returns, matching the
// read-only lifecycle the validator depends on (spec §5).
type Store struct {
	mu      sync.RWMutex
	version string
	entries map[string]map[string]struct{}
	tags    map[string]map[string]struct{}
}

// New builds a Store from the init-contract registries mapping: each value
// may be a plain sequence of identifiers, an object whose values are
// sequences (nested categories, flattened), or the vanilla Minecraft
// registry dump shape {"entries": {...}, "tags": {...}}, per spec §6 and
// original_source's registry.rs. Duplicates within a registry are
// tolerated and deduplicated.
func New(version string, registries map[string]any) (*Store, error) {
	s := &Store{
		version: version,
		entries: map[string]map[string]struct{}{},
		tags:    map[string]map[string]struct{}{},
	}
	for name, raw := range registries {
		entrySet, tagSet, err := parseRegistryValue(raw)
		if err != nil {
			return nil, fmt.Errorf("registry %q: %w", name, err)
		}
		s.entries[name] = entrySet
		s.tags[name] = tagSet
	}
	return s, nil
}

func parseRegistryValue(raw any) (entries, tags map[string]struct{}, err error) {
	entries = map[string]struct{}{}
	tags = map[string]struct{}{}

	switch v := raw.(type) {
	case []string:
		for _, s := range v {
			entries[s] = struct{}{}
		}
		return entries, tags, nil
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, nil, fmt.Errorf("sequence element %v is not a string", item)
			}
			entries[s] = struct{}{}
		}
		return entries, tags, nil
	case map[string]any:
		if _, ok := v["entries"]; ok {
			return parseVanillaShape(v)
		}
		if _, ok := v["tags"]; ok {
			return parseVanillaShape(v)
		}
		for _, nested := range v {
			nestedEntries, _, err := parseRegistryValue(nested)
			if err != nil {
				return nil, nil, err
			}
			for s := range nestedEntries {
				entries[s] = struct{}{}
			}
		}
		return entries, tags, nil
	default:
		return nil, nil, fmt.Errorf("unsupported registry shape %T", raw)
	}
}

func parseVanillaShape(v map[string]any) (entries, tags map[string]struct{}, err error) {
	entries = map[string]struct{}{}
	tags = map[string]struct{}{}
	if rawEntries, ok := v["entries"]; ok {
		switch e := rawEntries.(type) {
		case map[string]any:
			for key := range e {
				entries[key] = struct{}{}
			}
		case []any:
			for _, item := range e {
				s, ok := item.(string)
				if !ok {
					return nil, nil, fmt.Errorf("entries element %v is not a string", item)
				}
				entries[s] = struct{}{}
			}
		default:
			return nil, nil, fmt.Errorf("unsupported entries shape %T", rawEntries)
		}
	}
	if rawTags, ok := v["tags"]; ok {
		tagMap, ok := rawTags.(map[string]any)
		if !ok {
			return nil, nil, fmt.Errorf("unsupported tags shape %T", rawTags)
		}
		for tagName := range tagMap {
			tags[tagName] = struct{}{}
		}
	}
	return entries, tags, nil
}

// Lookup reports whether value is legal for registryName. A value prefixed
// with "#" is a tag reference and is checked against the registry's tag
// names rather than its entries, per spec §4.4 and the GLOSSARY's Tag
// convention.
func (s *Store) Lookup(registryName, value string) LookupResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entrySet, ok := s.entries[registryName]
	if !ok {
		return RegistryUnknown
	}
	if len(value) > 0 && value[0] == '#' {
		tagSet := s.tags[registryName]
		if _, ok := tagSet[value[1:]]; ok {
			return Found
		}
		return NotFound
	}
	if _, ok := entrySet[value]; ok {
		return Found
	}
	return NotFound
}

// Contains is a convenience wrapper over Lookup for callers that don't need
// to distinguish an unknown registry from a missing value.
func (s *Store) Contains(registryName, value string) bool {
	return s.Lookup(registryName, value) == Found
}

// HasRegistry reports whether registryName was present in the mapping
// passed to New, even if its entry set is empty.
func (s *Store) HasRegistry(registryName string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.entries[registryName]
	return ok
}

// Version returns the version label this Store was built for.
func (s *Store) Version() string { return s.version }

// RegistryNames returns the sorted list of registries this Store knows
// about, mostly useful for diagnostics and tests.
func (s *Store) RegistryNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
