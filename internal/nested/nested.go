// Package nested provides safe traversal over decoded JSON values
// (maps, slices and scalars) without a fixed schema.
package nested

import (
	"errors"
	"fmt"
)

// Map is a decoded JSON object.
type Map = map[string]any

// ErrKeyNotFound is matched by every *KeyNotFoundError via errors.Is.
var ErrKeyNotFound = errors.New("key not found")

// KeyNotFoundError reports the first key of a path that could not be resolved.
// Only the failing key is recorded, not the full path.
type KeyNotFoundError struct {
	Key string
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("key not found: %q", e.Key)
}

func (e *KeyNotFoundError) Is(target error) bool {
	return target == ErrKeyNotFound
}

// TypeError is returned when a path resolves to a value of an unexpected type.
type TypeError struct {
	Key   string
	Value any
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("unexpected type %T for key %q", e.Value, e.Key)
}

// Access walks v by each key of path in order and returns the value at the
// last key. An empty path returns v itself.
//
// The first key that is absent, or that would index into something other than
// a Map, is reported as a *KeyNotFoundError.
func Access(v any, path ...string) (any, error) {
	current := v
	for _, key := range path {
		m, ok := current.(Map)
		if !ok {
			return nil, &KeyNotFoundError{Key: key}
		}
		next, ok := m[key]
		if !ok {
			return nil, &KeyNotFoundError{Key: key}
		}
		current = next
	}
	return current, nil
}

// AccessString is Access for paths that must end at a string.
func AccessString(v any, path ...string) (string, error) {
	value, err := Access(v, path...)
	if err != nil {
		return "", err
	}
	s, ok := value.(string)
	if !ok {
		key := ""
		if len(path) > 0 {
			key = path[len(path)-1]
		}
		return "", &TypeError{Key: key, Value: value}
	}
	return s, nil
}
