package config

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/xvzc/netsniff/internal/ptr"
)

var (
	_ merger[*Config]         = (*Config)(nil)
	_ merger[*GeneralOptions] = (*GeneralOptions)(nil)
	_ merger[*CaptureOptions] = (*CaptureOptions)(nil)
	_ merger[*OutputOptions]  = (*OutputOptions)(nil)
)

type merger[T any] interface {
	Clone() T
	Merge(overrides T) T
}

// Config is the union of every option group. A nil field inside a group
// means "not set here" so that layers can be merged in priority order.
type Config struct {
	General *GeneralOptions `toml:"general"`
	Capture *CaptureOptions `toml:"capture"`
	Output  *OutputOptions  `toml:"output"`
}

func (c *Config) UnmarshalTOML(data any) (err error) {
	m, ok := data.(map[string]any)
	if !ok {
		return fmt.Errorf("non-table type config")
	}

	c.General = findStructFrom[GeneralOptions](m, "general", &err)
	c.Capture = findStructFrom[CaptureOptions](m, "capture", &err)
	c.Output = findStructFrom[OutputOptions](m, "output", &err)

	return err
}

func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	return &Config{
		General: c.General.Clone(),
		Capture: c.Capture.Clone(),
		Output:  c.Output.Clone(),
	}
}

func (origin *Config) Merge(overrides *Config) *Config {
	if overrides == nil {
		return origin.Clone()
	}

	if origin == nil {
		return overrides.Clone()
	}

	return &Config{
		General: origin.General.Merge(overrides.General),
		Capture: origin.Capture.Merge(overrides.Capture),
		Output:  origin.Output.Merge(overrides.Output),
	}
}

// ┌─────────────────┐
// │ GENERAL OPTIONS │
// └─────────────────┘
type GeneralOptions struct {
	LogLevel *zerolog.Level `toml:"log-level"`
	Silent   *bool          `toml:"silent"`
	NoColor  *bool          `toml:"no-color"`
}

func (o *GeneralOptions) UnmarshalTOML(data any) (err error) {
	m, ok := data.(map[string]any)
	if !ok {
		return fmt.Errorf("non-table type general config")
	}

	o.Silent = findFrom(m, "silent", parseBoolFn(), &err)
	o.NoColor = findFrom(m, "no-color", parseBoolFn(), &err)
	if p := findFrom(m, "log-level", parseStringFn(checkLogLevel), &err); isOk(p, err) {
		o.LogLevel = ptr.FromValue(MustParseLogLevel(*p))
	}

	return err
}

func (o *GeneralOptions) Clone() *GeneralOptions {
	if o == nil {
		return nil
	}

	return &GeneralOptions{
		LogLevel: ptr.Clone(o.LogLevel),
		Silent:   ptr.Clone(o.Silent),
		NoColor:  ptr.Clone(o.NoColor),
	}
}

func (origin *GeneralOptions) Merge(overrides *GeneralOptions) *GeneralOptions {
	if overrides == nil {
		return origin.Clone()
	}

	if origin == nil {
		return overrides.Clone()
	}

	return &GeneralOptions{
		LogLevel: ptr.CloneOr(overrides.LogLevel, origin.LogLevel),
		Silent:   ptr.CloneOr(overrides.Silent, origin.Silent),
		NoColor:  ptr.CloneOr(overrides.NoColor, origin.NoColor),
	}
}

// ┌─────────────────┐
// │ CAPTURE OPTIONS │
// └─────────────────┘
type CaptureOptions struct {
	Interface   *string `toml:"interface"`
	ReadFile    *string `toml:"read"`
	SnapLen     *int    `toml:"snaplen"`
	Count       *uint64 `toml:"count"`
	Promiscuous *bool   `toml:"promiscuous"`
}

func (o *CaptureOptions) UnmarshalTOML(data any) (err error) {
	m, ok := data.(map[string]any)
	if !ok {
		return fmt.Errorf("non-table type capture config")
	}

	o.Interface = findFrom(m, "interface", parseStringFn(checkInterfaceName), &err)
	o.ReadFile = findFrom(m, "read", parseStringFn(checkNonEmpty), &err)
	o.SnapLen = findFrom(m, "snaplen", parseIntFn[int](checkSnapLen), &err)
	o.Count = findFrom(m, "count", parseIntFn[uint64](checkNonNegative), &err)
	o.Promiscuous = findFrom(m, "promiscuous", parseBoolFn(), &err)

	return err
}

func (o *CaptureOptions) Clone() *CaptureOptions {
	if o == nil {
		return nil
	}

	return &CaptureOptions{
		Interface:   ptr.Clone(o.Interface),
		ReadFile:    ptr.Clone(o.ReadFile),
		SnapLen:     ptr.Clone(o.SnapLen),
		Count:       ptr.Clone(o.Count),
		Promiscuous: ptr.Clone(o.Promiscuous),
	}
}

func (origin *CaptureOptions) Merge(overrides *CaptureOptions) *CaptureOptions {
	if overrides == nil {
		return origin.Clone()
	}

	if origin == nil {
		return overrides.Clone()
	}

	return &CaptureOptions{
		Interface:   ptr.CloneOr(overrides.Interface, origin.Interface),
		ReadFile:    ptr.CloneOr(overrides.ReadFile, origin.ReadFile),
		SnapLen:     ptr.CloneOr(overrides.SnapLen, origin.SnapLen),
		Count:       ptr.CloneOr(overrides.Count, origin.Count),
		Promiscuous: ptr.CloneOr(overrides.Promiscuous, origin.Promiscuous),
	}
}

// ┌────────────────┐
// │ OUTPUT OPTIONS │
// └────────────────┘
type OutputOptions struct {
	ShowData  *bool   `toml:"data"`
	WriteFile *string `toml:"write"`
	LogFrames *bool   `toml:"log-frames"`
	Stats     *bool   `toml:"stats"`
}

func (o *OutputOptions) UnmarshalTOML(data any) (err error) {
	m, ok := data.(map[string]any)
	if !ok {
		return fmt.Errorf("non-table type output config")
	}

	o.ShowData = findFrom(m, "data", parseBoolFn(), &err)
	o.WriteFile = findFrom(m, "write", parseStringFn(checkNonEmpty), &err)
	o.LogFrames = findFrom(m, "log-frames", parseBoolFn(), &err)
	o.Stats = findFrom(m, "stats", parseBoolFn(), &err)

	return err
}

func (o *OutputOptions) Clone() *OutputOptions {
	if o == nil {
		return nil
	}

	return &OutputOptions{
		ShowData:  ptr.Clone(o.ShowData),
		WriteFile: ptr.Clone(o.WriteFile),
		LogFrames: ptr.Clone(o.LogFrames),
		Stats:     ptr.Clone(o.Stats),
	}
}

func (origin *OutputOptions) Merge(overrides *OutputOptions) *OutputOptions {
	if overrides == nil {
		return origin.Clone()
	}

	if origin == nil {
		return overrides.Clone()
	}

	return &OutputOptions{
		ShowData:  ptr.CloneOr(overrides.ShowData, origin.ShowData),
		WriteFile: ptr.CloneOr(overrides.WriteFile, origin.WriteFile),
		LogFrames: ptr.CloneOr(overrides.LogFrames, origin.LogFrames),
		Stats:     ptr.CloneOr(overrides.Stats, origin.Stats),
	}
}
