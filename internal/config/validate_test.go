package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xvzc/netsniff/internal/ptr"
)

func TestCheckInterfaceName(t *testing.T) {
	tcs := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain name", "eth0", false},
		{"all", "all", false},
		{"vlan suffix", "eth0.100", false},
		{"empty", "", true},
		{"whitespace", "eth 0", true},
		{"path", "/dev/eth0", true},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			err := checkInterfaceName(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheckSnapLen(t *testing.T) {
	tcs := []struct {
		name    string
		input   int64
		wantErr bool
	}{
		{"minimum", 1, false},
		{"default", 9000, false},
		{"maximum", 65535, false},
		{"zero", 0, true},
		{"too large", 65536, true},
		{"negative", -1, true},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			err := checkSnapLen(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheckLogLevel(t *testing.T) {
	assert.NoError(t, checkLogLevel("debug"))
	assert.NoError(t, checkLogLevel("WARN"))
	assert.Error(t, checkLogLevel("loud"))
	assert.Error(t, checkLogLevel(""))
}

func TestCheckConfig(t *testing.T) {
	tcs := []struct {
		name    string
		read    *string
		write   *string
		wantErr bool
	}{
		{"nothing set", nil, nil, false},
		{"read only", ptr.FromValue("in.pcap"), nil, false},
		{"different files", ptr.FromValue("in.pcap"), ptr.FromValue("out.pcap"), false},
		{"same file", ptr.FromValue("cap.pcap"), ptr.FromValue("./cap.pcap"), true},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			cfg := NewConfig()
			cfg.Capture.ReadFile = tc.read
			cfg.Output.WriteFile = tc.write

			err := checkConfig(cfg)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
