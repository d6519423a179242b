package hostenv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "corrected", config.BroadOrder)
	assert.Equal(t, ":8080", config.ListenAddr)
	assert.Equal(t, OutputText, config.Output)
	assert.Equal(t, 80, config.WordWrap)
	assert.Equal(t, BroadOrderCorrected, config.ParsedBroadOrder())
	assert.Contains(t, config.Path(), filepath.Join(".config", "hostenv", "config.yaml"))
}

func TestConfig_SaveAndReload(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	config, err := LoadConfig()
	require.NoError(t, err)

	require.NoError(t, config.Set("broad_order", "legacy"))
	require.NoError(t, config.Set("word_wrap", "0"))
	require.NoError(t, SaveConfig(config))

	reloaded, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, BroadOrderLegacy, reloaded.ParsedBroadOrder())
	assert.Equal(t, 0, reloaded.WordWrap)
	assert.Equal(t, ":8080", reloaded.ListenAddr)
}

func TestLoadConfigFile_PartialAndInvalid(t *testing.T) {
	dir := t.TempDir()

	partial := filepath.Join(dir, "partial.yaml")
	require.NoError(t, os.WriteFile(partial, []byte("output: json\n"), 0644))

	config, err := LoadConfigFile(partial)
	require.NoError(t, err)
	assert.Equal(t, OutputJSON, config.Output)
	assert.Equal(t, "corrected", config.BroadOrder)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("broad_order: random\n"), 0644))

	_, err = LoadConfigFile(invalid)
	assert.ErrorIs(t, err, ErrUnknownBroadOrder)

	garbage := filepath.Join(dir, "garbage.yaml")
	require.NoError(t, os.WriteFile(garbage, []byte("output: [\n"), 0644))

	_, err = LoadConfigFile(garbage)
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestConfig_GetSet(t *testing.T) {
	config := DefaultConfig()

	tests := []struct {
		key     string
		value   string
		wantErr bool
	}{
		{"broad_order", "legacy", false},
		{"broad_order", "sideways", true},
		{"listen_addr", "127.0.0.1:9000", false},
		{"output", "markdown", false},
		{"output", "html", true},
		{"word_wrap", "120", false},
		{"word_wrap", "-1", true},
		{"word_wrap", "wide", true},
		{"colour", "blue", true},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			before := *config
			err := config.Set(tt.key, tt.value)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, before, *config)
				return
			}

			require.NoError(t, err)
			got, err := config.Get(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.value, got)
		})
	}

	_, err := config.Get("colour")
	assert.Error(t, err)
}
