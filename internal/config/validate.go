package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xvzc/netsniff/internal/packet"
)

var ErrInvalidConfig = errors.New("invalid config")

// ┌──────────────────┐
// │ FIELD VALIDATORS │
// └──────────────────┘
func checkLogLevel(v string) error {
	level, err := zerolog.ParseLevel(strings.ToLower(v))
	if err != nil || level == zerolog.NoLevel {
		return fmt.Errorf("invalid level string %q", v)
	}

	return nil
}

func checkInterfaceName(v string) error {
	if v == "" {
		return fmt.Errorf("interface name must not be empty")
	}

	if strings.ContainsAny(v, " \t\n/") {
		return fmt.Errorf("invalid interface name %q", v)
	}

	return nil
}

func checkNonEmpty(v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("must not be empty")
	}

	return nil
}

func checkSnapLen(v int64) error {
	if v < 1 || packet.MaxSnapLen < v {
		return fmt.Errorf("out of range[%d-%d]", 1, packet.MaxSnapLen)
	}

	return nil
}

func checkNonNegative(v int64) error {
	if v < 0 {
		return fmt.Errorf("must not be negative")
	}

	return nil
}

// ┌─────────────────┐
// │ FLAG VALIDATORS │
// └─────────────────┘
func validateSnapLen(v int) error {
	return checkSnapLen(int64(v))
}

func validateCount(v int) error {
	return checkNonNegative(int64(v))
}

// ┌──────────────┐
// │ CROSS FIELDS │
// └──────────────┘
func checkConfig(c *Config) error {
	if c.Capture == nil || c.Output == nil {
		return nil
	}

	read, write := c.Capture.ReadFile, c.Output.WriteFile
	if read != nil && write != nil &&
		filepath.Clean(*read) == filepath.Clean(*write) {
		return fmt.Errorf(
			"%w: capture file %q would be overwritten by the dump",
			ErrInvalidConfig,
			*read,
		)
	}

	return nil
}
