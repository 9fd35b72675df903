package app

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/azyu/adventurecrafter/internal/adventure"
	"github.com/azyu/adventurecrafter/internal/storage"
	"github.com/azyu/adventurecrafter/pkg/types"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *types.GlobalConfig {
	cfg := types.DefaultGlobalConfig()
	cfg.Storage.Throttle = "0s"
	return cfg
}

func TestOpen(t *testing.T) {
	t.Run("state survives a restart", func(t *testing.T) {
		medium := storage.NewFileMedium(afero.NewMemMapFs(), "/store")

		first, err := Open(testConfig(), medium, zerolog.Nop())
		require.NoError(t, err)

		first.Dispatch(adventure.NewAdventureAction{})
		adv, ok := first.Store.SelectedAdventure()
		require.True(t, ok)
		adv.Title = "Persisted"
		first.Dispatch(adventure.UpdateAdventureAction{Adventure: adv})
		require.NoError(t, first.Close())

		second, err := Open(testConfig(), medium, zerolog.Nop())
		require.NoError(t, err)
		defer second.Close()

		got, ok := second.Store.SelectedAdventure()
		require.True(t, ok)
		assert.Equal(t, 2, got.ID)
		assert.Equal(t, "Persisted", got.Title)
	})

	t.Run("nil medium runs in memory", func(t *testing.T) {
		a, err := Open(testConfig(), nil, zerolog.Nop())
		require.NoError(t, err)
		defer a.Close()

		assert.False(t, a.Persistence.Available())
		state := a.Dispatch(adventure.NewAdventureAction{})
		assert.Len(t, state.Adventures, 2)
	})

	t.Run("unavailable medium logs a warning", func(t *testing.T) {
		var logs bytes.Buffer
		medium := storage.NewFileMedium(afero.NewReadOnlyFs(afero.NewMemMapFs()), "/store")

		a, err := Open(testConfig(), medium, NewLogger("warn", &logs))
		require.NoError(t, err)
		defer a.Close()

		assert.Contains(t, logs.String(), "storage is not available")
		assert.Equal(t, types.InitialState(), a.Store.State())
	})

	t.Run("bad throttle is rejected", func(t *testing.T) {
		cfg := testConfig()
		cfg.Storage.Throttle = "soon"

		_, err := Open(cfg, nil, zerolog.Nop())
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestNew(t *testing.T) {
	t.Run("file backend from config file", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "config.yaml")
		dataDir := filepath.Join(dir, "data")

		cm := NewConfigManagerAt(configPath)
		cfg := testConfig()
		cfg.Storage.Dir = dataDir
		require.NoError(t, cm.SaveGlobalConfig(cfg))

		a, err := New(Options{ConfigPath: configPath, LogOutput: &bytes.Buffer{}})
		require.NoError(t, err)
		a.Dispatch(adventure.NewAdventureAction{})
		require.NoError(t, a.Close())

		_, err = os.Stat(filepath.Join(dataDir, cfg.Storage.Key))
		assert.NoError(t, err, "document should be written to the storage dir")
	})

	t.Run("invalid config file", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("storage:\n  backend: floppy\n"), 0644))

		_, err := New(Options{ConfigPath: configPath})
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger := NewLogger("error", &buf)
	logger.Warn().Msg("hidden")
	logger.Error().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	fallback := NewLogger("nonsense", &buf)
	fallback.Info().Msg("hidden")
	fallback.Warn().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
