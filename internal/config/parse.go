package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

type integer interface {
	~int | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

func isOk[T any](p *T, err error) bool {
	return p != nil && err == nil
}

func parseBoolFn() func(any) (bool, error) {
	return func(v any) (bool, error) {
		b, ok := v.(bool)
		if !ok {
			return false, fmt.Errorf("expected boolean, got %T", v)
		}

		return b, nil
	}
}

func parseStringFn(check func(string) error) func(any) (string, error) {
	return func(v any) (string, error) {
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("expected string, got %T", v)
		}

		if check != nil {
			if err := check(s); err != nil {
				return "", err
			}
		}

		return s, nil
	}
}

// parseIntFn parses TOML integers, which the decoder always yields as int64.
func parseIntFn[T integer](check func(int64) error) func(any) (T, error) {
	return func(v any) (T, error) {
		i, ok := v.(int64)
		if !ok {
			return 0, fmt.Errorf("expected integer, got %T", v)
		}

		if check != nil {
			if err := check(i); err != nil {
				return 0, err
			}
		}

		return T(i), nil
	}
}

func MustParseLogLevel(s string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil || level == zerolog.NoLevel {
		panic(fmt.Sprintf("invalid log level %q", s))
	}

	return level
}
