// Package storage provides the key-value media adventure documents are
// persisted to.
package storage

import (
	"errors"
	"strings"
)

var (
	// ErrQuotaExceeded is returned by a medium that ran out of space.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	// ErrInvalidKey is returned for keys a medium cannot address.
	ErrInvalidKey = errors.New("invalid storage key")
)

// Medium is a persistent string store addressed by key. Values are opaque
// to the medium.
type Medium interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(key string) error
	// Len returns the number of keys currently stored.
	Len() (int, error)
}

func validateKey(key string) error {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, tempPrefix) {
		return ErrInvalidKey
	}
	return nil
}
