package storage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingMedium fails every Set with setErr and reports a fixed key count.
type failingMedium struct {
	setErr error
	keys   int
	lenErr error
}

func (f *failingMedium) Get(string) (string, bool, error) { return "", false, nil }
func (f *failingMedium) Set(string, string) error         { return f.setErr }
func (f *failingMedium) Remove(string) error              { return nil }
func (f *failingMedium) Len() (int, error)                { return f.keys, f.lenErr }

func TestAvailable(t *testing.T) {
	tests := []struct {
		name   string
		medium Medium
		want   bool
	}{
		{
			name:   "nil medium",
			medium: nil,
			want:   false,
		},
		{
			name:   "writable filesystem",
			medium: NewFileMedium(afero.NewMemMapFs(), "/store"),
			want:   true,
		},
		{
			name:   "read-only filesystem",
			medium: NewFileMedium(afero.NewReadOnlyFs(afero.NewMemMapFs()), "/store"),
			want:   false,
		},
		{
			name:   "generic failure",
			medium: &failingMedium{setErr: errors.New("sandboxed"), keys: 3},
			want:   false,
		},
		{
			name:   "quota exceeded on empty medium",
			medium: &failingMedium{setErr: ErrQuotaExceeded, keys: 0},
			want:   false,
		},
		{
			name:   "quota exceeded with existing data",
			medium: &failingMedium{setErr: fmt.Errorf("write: %w", ErrQuotaExceeded), keys: 2},
			want:   true,
		},
		{
			name:   "quota exceeded and length unknown",
			medium: &failingMedium{setErr: ErrQuotaExceeded, keys: 2, lenErr: errors.New("broken")},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Available(tt.medium))
		})
	}
}

func TestAvailable_LeavesNoSentinel(t *testing.T) {
	m := NewFileMedium(afero.NewMemMapFs(), "/store")
	require.True(t, Available(m))

	_, ok, err := m.Get(probeKey)
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := m.Len()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAvailable_FullFileMedium(t *testing.T) {
	m := NewFileMedium(afero.NewMemMapFs(), "/store", WithQuota(4))
	require.NoError(t, m.Set("doc", "1234"))

	assert.True(t, Available(m), "a full medium that holds data still works")

	empty := NewFileMedium(afero.NewMemMapFs(), "/store", WithQuota(1))
	assert.False(t, Available(empty))
}
