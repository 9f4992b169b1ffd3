package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestSearchTomlFile(t *testing.T) {
	tcs := []struct {
		name   string
		setup  func(t *testing.T) (string, []string)
		assert func(t *testing.T, path string, err error)
	}{
		{
			name: "custom path exists",
			setup: func(t *testing.T) (string, []string) {
				return writeFile(t, "custom.toml", ""), nil
			},
			assert: func(t *testing.T, path string, err error) {
				assert.NoError(t, err)
				assert.NotEmpty(t, path)
			},
		},
		{
			name: "custom path not found",
			setup: func(t *testing.T) (string, []string) {
				return "nonexistent.toml", nil
			},
			assert: func(t *testing.T, path string, err error) {
				assert.Error(t, err)
				assert.Empty(t, path)
			},
		},
		{
			name: "found in lookup paths",
			setup: func(t *testing.T) (string, []string) {
				return "", []string{"", "nonexistent", writeFile(t, "lookup.toml", "")}
			},
			assert: func(t *testing.T, path string, err error) {
				assert.NoError(t, err)
				assert.Equal(t, "lookup.toml", filepath.Base(path))
			},
		},
		{
			name: "not found in lookup paths",
			setup: func(t *testing.T) (string, []string) {
				return "", []string{"nonexistent"}
			},
			assert: func(t *testing.T, path string, err error) {
				assert.NoError(t, err)
				assert.Empty(t, path)
			},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			customPath, lookupPaths := tc.setup(t)
			path, err := searchTomlFile(customPath, lookupPaths)
			tc.assert(t, path, err)
		})
	}
}

func TestFindFrom(t *testing.T) {
	tcs := []struct {
		name      string
		data      map[string]any
		parser    func(any) (int, error)
		errPtrVal error
		assert    func(t *testing.T, val *int, err error)
	}{
		{
			name:   "valid value",
			data:   map[string]any{"key": int64(1500)},
			parser: parseIntFn[int](checkSnapLen),
			assert: func(t *testing.T, val *int, err error) {
				assert.NoError(t, err)
				require.NotNil(t, val)
				assert.Equal(t, 1500, *val)
			},
		},
		{
			name:   "missing key",
			data:   map[string]any{},
			parser: parseIntFn[int](checkSnapLen),
			assert: func(t *testing.T, val *int, err error) {
				assert.NoError(t, err)
				assert.Nil(t, val)
			},
		},
		{
			name:   "invalid type",
			data:   map[string]any{"key": "string"},
			parser: parseIntFn[int](checkSnapLen),
			assert: func(t *testing.T, val *int, err error) {
				assert.ErrorContains(t, err, `field "key"`)
				assert.Nil(t, val)
			},
		},
		{
			name:   "validation error",
			data:   map[string]any{"key": int64(70000)},
			parser: parseIntFn[int](checkSnapLen),
			assert: func(t *testing.T, val *int, err error) {
				assert.ErrorContains(t, err, "out of range")
				assert.Nil(t, val)
			},
		},
		{
			name:      "existing error",
			data:      map[string]any{"key": int64(10)},
			parser:    parseIntFn[int](checkSnapLen),
			errPtrVal: errors.New("previous"),
			assert: func(t *testing.T, val *int, err error) {
				assert.EqualError(t, err, "previous")
				assert.Nil(t, val)
			},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.errPtrVal
			val := findFrom(tc.data, "key", tc.parser, &err)
			tc.assert(t, val, err)
		})
	}
}

func TestFromTomlFile(t *testing.T) {
	tcs := []struct {
		name    string
		content string
		assert  func(t *testing.T, cfg *Config, err error)
	}{
		{
			name: "all sections",
			content: `
[general]
log-level = "debug"
silent = true
no-color = true

[capture]
interface = "eth0"
snaplen = 1514
count = 10
promiscuous = true

[output]
data = true
write = "out.pcap"
log-frames = true
stats = false
`,
			assert: func(t *testing.T, cfg *Config, err error) {
				require.NoError(t, err)
				assert.Equal(t, zerolog.DebugLevel, *cfg.General.LogLevel)
				assert.True(t, *cfg.General.Silent)
				assert.True(t, *cfg.General.NoColor)
				assert.Equal(t, "eth0", *cfg.Capture.Interface)
				assert.Nil(t, cfg.Capture.ReadFile)
				assert.Equal(t, 1514, *cfg.Capture.SnapLen)
				assert.Equal(t, uint64(10), *cfg.Capture.Count)
				assert.True(t, *cfg.Capture.Promiscuous)
				assert.True(t, *cfg.Output.ShowData)
				assert.Equal(t, "out.pcap", *cfg.Output.WriteFile)
				assert.True(t, *cfg.Output.LogFrames)
				assert.False(t, *cfg.Output.Stats)
			},
		},
		{
			name: "partial file leaves other groups unset",
			content: `
[capture]
read = "in.pcap"
`,
			assert: func(t *testing.T, cfg *Config, err error) {
				require.NoError(t, err)
				assert.Nil(t, cfg.General)
				assert.Nil(t, cfg.Output)
				assert.Equal(t, "in.pcap", *cfg.Capture.ReadFile)
				assert.Nil(t, cfg.Capture.Interface)
			},
		},
		{
			name: "invalid log level",
			content: `
[general]
log-level = "loud"
`,
			assert: func(t *testing.T, cfg *Config, err error) {
				assert.ErrorContains(t, err, "log-level")
				assert.Nil(t, cfg)
			},
		},
		{
			name: "snaplen out of range",
			content: `
[capture]
snaplen = 0
`,
			assert: func(t *testing.T, cfg *Config, err error) {
				assert.ErrorContains(t, err, "snaplen")
			},
		},
		{
			name: "negative count",
			content: `
[capture]
count = -1
`,
			assert: func(t *testing.T, cfg *Config, err error) {
				assert.ErrorContains(t, err, "count")
			},
		},
		{
			name: "wrong type",
			content: `
[output]
data = "yes"
`,
			assert: func(t *testing.T, cfg *Config, err error) {
				assert.ErrorContains(t, err, "expected boolean")
			},
		},
		{
			name:    "section is not a table",
			content: `general = 1`,
			assert: func(t *testing.T, cfg *Config, err error) {
				assert.ErrorContains(t, err, "non-table")
			},
		},
		{
			name:    "malformed toml",
			content: `[capture`,
			assert: func(t *testing.T, cfg *Config, err error) {
				assert.Error(t, err)
			},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := fromTomlFile(writeFile(t, "netsniff.toml", tc.content))
			tc.assert(t, cfg, err)
		})
	}
}
