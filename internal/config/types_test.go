package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xvzc/netsniff/internal/packet"
	"github.com/xvzc/netsniff/internal/ptr"
)

func TestNewConfig(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, zerolog.InfoLevel, *cfg.General.LogLevel)
	assert.Equal(t, packet.AllInterfaces, *cfg.Capture.Interface)
	assert.Equal(t, packet.DefaultSnapLen, *cfg.Capture.SnapLen)
	assert.Zero(t, *cfg.Capture.Count)
	assert.True(t, *cfg.Output.Stats)
	assert.False(t, cfg.Offline())
}

func TestConfig_Merge(t *testing.T) {
	tcs := []struct {
		name      string
		origin    *Config
		overrides *Config
		assert    func(t *testing.T, merged *Config)
	}{
		{
			name:      "nil overrides clones origin",
			origin:    NewConfig(),
			overrides: nil,
			assert: func(t *testing.T, merged *Config) {
				assert.Equal(t, NewConfig(), merged)
			},
		},
		{
			name:   "nil origin clones overrides",
			origin: nil,
			overrides: &Config{
				Capture: &CaptureOptions{Interface: ptr.FromValue("eth0")},
			},
			assert: func(t *testing.T, merged *Config) {
				assert.Nil(t, merged.General)
				assert.Equal(t, "eth0", *merged.Capture.Interface)
			},
		},
		{
			name:   "set fields win, unset fields fall back",
			origin: NewConfig(),
			overrides: &Config{
				General: &GeneralOptions{LogLevel: ptr.FromValue(zerolog.TraceLevel)},
				Capture: &CaptureOptions{
					ReadFile: ptr.FromValue("in.pcap"),
					Count:    ptr.FromValue(uint64(5)),
				},
			},
			assert: func(t *testing.T, merged *Config) {
				assert.Equal(t, zerolog.TraceLevel, *merged.General.LogLevel)
				assert.False(t, *merged.General.Silent)
				assert.Equal(t, "in.pcap", *merged.Capture.ReadFile)
				assert.Equal(t, uint64(5), *merged.Capture.Count)
				assert.Equal(t, packet.DefaultSnapLen, *merged.Capture.SnapLen)
				assert.True(t, *merged.Output.Stats)
				assert.True(t, merged.Offline())
			},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			tc.assert(t, tc.origin.Merge(tc.overrides))
		})
	}
}

func TestConfig_MergeDoesNotAlias(t *testing.T) {
	origin := NewConfig()
	overrides := &Config{Capture: &CaptureOptions{SnapLen: ptr.FromValue(128)}}

	merged := origin.Merge(overrides)
	*merged.Capture.SnapLen = 64
	*merged.Capture.Interface = "lo"

	assert.Equal(t, 128, *overrides.Capture.SnapLen)
	assert.Equal(t, packet.AllInterfaces, *origin.Capture.Interface)
}

func TestConfig_Clone(t *testing.T) {
	var nilCfg *Config
	assert.Nil(t, nilCfg.Clone())

	cfg := NewConfig()
	cfg.Output.WriteFile = ptr.FromValue("out.pcap")

	clone := cfg.Clone()
	require.Equal(t, cfg, clone)
	assert.NotSame(t, cfg.Output.WriteFile, clone.Output.WriteFile)
	assert.NotSame(t, cfg.General.LogLevel, clone.General.LogLevel)
}
