package config

import (
	"os"
	"path"

	"github.com/rs/zerolog"
	"github.com/xvzc/netsniff/internal/packet"
	"github.com/xvzc/netsniff/internal/ptr"
)

const configFilename = "netsniff.toml"

// NewConfig returns a config with every option set to its default.
func NewConfig() *Config {
	return &Config{
		General: &GeneralOptions{
			LogLevel: ptr.FromValue(zerolog.InfoLevel),
			Silent:   ptr.FromValue(false),
			NoColor:  ptr.FromValue(false),
		},
		Capture: &CaptureOptions{
			Interface:   ptr.FromValue(packet.AllInterfaces),
			ReadFile:    nil,
			SnapLen:     ptr.FromValue(packet.DefaultSnapLen),
			Count:       ptr.FromValue(uint64(0)),
			Promiscuous: ptr.FromValue(false),
		},
		Output: &OutputOptions{
			ShowData:  ptr.FromValue(false),
			WriteFile: nil,
			LogFrames: ptr.FromValue(false),
			Stats:     ptr.FromValue(true),
		},
	}
}

func defaultConfigPaths() []string {
	paths := []string{path.Join(string(os.PathSeparator), "etc", configFilename)}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, path.Join(xdg, "netsniff", configFilename))
	}

	if home := os.Getenv("HOME"); home != "" {
		paths = append(paths, path.Join(home, ".config", "netsniff", configFilename))
	}

	return paths
}

// Offline reports whether frames come from a capture file.
func (c *Config) Offline() bool {
	return c.Capture != nil && ptr.FromPtr(c.Capture.ReadFile) != ""
}
