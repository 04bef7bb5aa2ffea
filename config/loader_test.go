package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_DefaultsOnly(t *testing.T) {
	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, 64*1024, cfg.Stream.DefaultByteBudget)
	assert.Zero(t, cfg.Stream.GenerateTimeout)
	assert.Equal(t, "aes-256", cfg.Cipher.BlockSizeName)
}

func TestLoader_YAMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "creditstream.yaml")
	yamlContent := "stream:\n  default_byte_budget: 32768\ncipher:\n  block_size_name: aes-128\n"
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0o600))

	cfg, err := NewLoader().WithConfigPath(path).Load()
	require.NoError(t, err)

	assert.Equal(t, 32768, cfg.Stream.DefaultByteBudget)
	assert.Equal(t, "aes-128", cfg.Cipher.BlockSizeName)
}

func TestLoader_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := NewLoader().WithConfigPath("/nonexistent/creditstream.yaml").Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoader_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "creditstream.yaml")
	yamlContent := "stream:\n  default_byte_budget: 32768\n"
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0o600))

	t.Setenv("CREDITSTREAM_STREAM_DEFAULT_BYTE_BUDGET", "8192")
	t.Setenv("CREDITSTREAM_STREAM_GENERATE_TIMEOUT", "30s")

	cfg, err := NewLoader().WithConfigPath(path).Load()
	require.NoError(t, err)
	assert.Equal(t, 8192, cfg.Stream.DefaultByteBudget)
	assert.Equal(t, 30*time.Second, cfg.Stream.GenerateTimeout)
}

func TestLoader_RunsValidators(t *testing.T) {
	calls := 0
	_, err := NewLoader().
		WithValidator(func(c *Config) error { calls++; return c.Validate() }).
		Load()

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestConfig_ValidateRejectsBadBlockSize(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cipher.BlockSizeName = "des"
	assert.Error(t, cfg.Validate())
}

func TestConfig_ValidateRejectsNonPositiveByteBudget(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Stream.DefaultByteBudget = 0
	assert.Error(t, cfg.Validate())
}

func TestConfig_ValidateRejectsNegativeGenerateTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Stream.GenerateTimeout = -time.Second
	assert.Error(t, cfg.Validate())
}

func TestCipherConfig_BlockKeySize(t *testing.T) {
	n, err := CipherConfig{BlockSizeName: "aes-128"}.BlockKeySize()
	require.NoError(t, err)
	assert.Equal(t, 16, n)

	n, err = CipherConfig{BlockSizeName: "aes-256"}.BlockKeySize()
	require.NoError(t, err)
	assert.Equal(t, 32, n)

	_, err = CipherConfig{BlockSizeName: "bogus"}.BlockKeySize()
	assert.Error(t, err)
}
