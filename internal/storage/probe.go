package storage

import "errors"

const (
	probeKey   = "__storage_test__"
	probeValue = "test"
)

// Available reports whether m can be written to. It sets and removes a
// sentinel key. A quota error against a medium that already holds data still
// counts as available: the medium works, it is just full.
func Available(m Medium) bool {
	if m == nil {
		return false
	}

	err := m.Set(probeKey, probeValue)
	if err == nil {
		err = m.Remove(probeKey)
	}
	if err == nil {
		return true
	}

	if !errors.Is(err, ErrQuotaExceeded) {
		return false
	}
	n, lenErr := m.Len()
	return lenErr == nil && n > 0
}
