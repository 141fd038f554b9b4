// Package auth implements the shared-secret API key gate for /api/ routes.
package auth

import "strings"

// KeySet is an immutable set of accepted API keys. The zero value is empty,
// which puts the gate in open mode.
type KeySet struct {
	keys map[string]struct{}
}

// ParseKeys builds a KeySet from a comma-separated list. Entries are
// trimmed and empty entries dropped. Keys are case-sensitive.
func ParseKeys(csv string) KeySet {
	keys := make(map[string]struct{})
	for _, k := range strings.Split(csv, ",") {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		keys[k] = struct{}{}
	}
	return KeySet{keys: keys}
}

// Len returns the number of distinct keys.
func (s KeySet) Len() int {
	return len(s.keys)
}

// Empty reports whether no keys are configured.
func (s KeySet) Empty() bool {
	return len(s.keys) == 0
}

// Contains reports whether key is accepted.
func (s KeySet) Contains(key string) bool {
	if key == "" {
		return false
	}
	_, ok := s.keys[key]
	return ok
}
