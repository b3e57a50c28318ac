package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mxk/go-pbkdf2/v2/pbkdf2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "HmacSHA256", cfg.PRF)
	assert.Equal(t, 600000, cfg.Iterations)
	assert.Equal(t, 32, cfg.KeyLength)
	assert.Equal(t, "utf8", cfg.SaltEncoding)
	assert.Equal(t, "hex", cfg.Output)
	assert.Equal(t, 1, cfg.Workers)
}

func TestDecode(t *testing.T) {
	cfg, err := Decode(strings.NewReader("prf: sha512\niterations: 1000\noutput: base64\n"))
	require.NoError(t, err)
	assert.Equal(t, "sha512", cfg.PRF)
	assert.Equal(t, 1000, cfg.Iterations)
	assert.Equal(t, "base64", cfg.Output)
	assert.Equal(t, DefaultKeyLength, cfg.KeyLength, "unset keys keep defaults")

	cfg, err = Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"unknown key", "salt: abc\n", "salt"},
		{"unknown prf", "prf: whirlpool\n", "prf"},
		{"negative iterations", "iterations: -1\n", "iterations"},
		{"negative key length", "key_length: -3\n", "key_length"},
		{"bad output", "output: base32\n", "output"},
		{"bad salt encoding", "salt_encoding: rot13\n", "salt_encoding"},
		{"negative workers", "workers: -2\n", "workers"},
		{"not yaml", "prf: [\n", "yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	_, err := Decode(strings.NewReader("prf: whirlpool\n"))
	var e pbkdf2.UnsupportedPRFError
	assert.True(t, errors.As(err, &e))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pbkdf2.yml")
	require.NoError(t, os.WriteFile(path, []byte("iterations: 4096\nworkers: 4\n"), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4096, cfg.Iterations)
	assert.Equal(t, 4, cfg.Workers)

	t.Setenv(EnvPath, path)
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 4096, cfg.Iterations)

	t.Setenv(EnvPath, "")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
