package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String(FlagFormat, FormatTable, "")
	fs.Bool(FlagPreview, false, "")
	fs.String(FlagHost, "", "")
	fs.String(FlagMetricsFile, "", "")
	fs.Int64(FlagMaxBytes, 0, "")
	fs.Duration(FlagTimeout, 0, "")
	return fs
}

func TestDefaults(t *testing.T) {
	cfg, err := NewBuilder().WithLookup(env(nil)).WithEnvConfig().Build()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, FormatTable, cfg.Format)
	assert.Equal(t, PreviewAuto, cfg.Preview)
}

func TestPrecedence(t *testing.T) {
	path := writeConfig(t, `
format: json
preview: never
host: /usr/local/bin/figma-host
timeout: 5s
headers:
  Authorization: Bearer abc
`)
	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--preview", "--max-bytes", "2048"}))

	cfg, err := NewBuilder().
		WithFile(path, true).
		WithLookup(env(map[string]string{
			"TETHER_HOST":    "/opt/host",
			"TETHER_TIMEOUT": "10s",
		})).
		WithEnvConfig().
		WithFlags(fs).
		Build()
	require.NoError(t, err)

	assert.Equal(t, FormatJSON, cfg.Format, "file overrides default")
	assert.Equal(t, "/opt/host", cfg.Host, "env overrides file")
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, PreviewAlways, cfg.Preview, "flag overrides file")
	assert.Equal(t, int64(2048), cfg.MaxDocumentBytes)
	assert.Equal(t, "Bearer abc", cfg.Headers["Authorization"])
}

func TestUnsetFlagsDoNotOverride(t *testing.T) {
	path := writeConfig(t, "format: json\n")
	fs := testFlags()
	require.NoError(t, fs.Parse(nil))

	cfg, err := NewBuilder().WithFile(path, true).WithFlags(fs).Build()
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, cfg.Format)
	assert.Equal(t, PreviewAuto, cfg.Preview)
}

func TestPreviewFlagOff(t *testing.T) {
	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--preview=false"}))

	cfg, err := NewBuilder().WithFlags(fs).Build()
	require.NoError(t, err)
	assert.Equal(t, PreviewNever, cfg.Preview)
}

func TestMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.yaml")

	_, err := NewBuilder().WithFile(missing, false).Build()
	require.NoError(t, err)

	_, err = NewBuilder().WithFile(missing, true).Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestInvalid(t *testing.T) {
	tests := []struct {
		name          string
		file          string
		env           map[string]string
		errorContains string
	}{
		{
			name:          "bad yaml",
			file:          "format: [",
			errorContains: "failed to parse config file",
		},
		{
			name:          "bad format",
			file:          "format: xml\n",
			errorContains: "Format: must be one of [table json]",
		},
		{
			name:          "bad preview env",
			env:           map[string]string{"TETHER_PREVIEW": "sometimes"},
			errorContains: "Preview: must be one of",
		},
		{
			name:          "bad size env",
			env:           map[string]string{"TETHER_MAX_DOCUMENT_BYTES": "lots"},
			errorContains: "invalid TETHER_MAX_DOCUMENT_BYTES",
		},
		{
			name:          "zero size",
			file:          "max_document_bytes: 0\n",
			errorContains: "MaxDocumentBytes: must be at least 1",
		},
		{
			name:          "bad timeout env",
			env:           map[string]string{"TETHER_TIMEOUT": "soon"},
			errorContains: "invalid TETHER_TIMEOUT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder().WithLookup(env(tt.env)).WithEnvConfig()
			if tt.file != "" {
				b = b.WithFile(writeConfig(t, tt.file), true)
			}
			_, err := b.Build()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorContains)
		})
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if p := DefaultPath(); p != "" {
		assert.Equal(t, "config.yaml", filepath.Base(p))
		assert.Equal(t, "tether", filepath.Base(filepath.Dir(p)))
	}
}
