package version

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var raw string

// Version returns the release embedded at build time.
func Version() string {
	return strings.TrimSpace(raw)
}
