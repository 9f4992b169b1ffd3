package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"github.com/xvzc/netsniff/internal/ptr"
)

func CreateCommand(
	runFunc func(ctx context.Context, configPath string, cfg *Config) error,
	version string,
	commit string,
	build string,
) *cli.Command {
	cli.RootCommandHelpTemplate = createHelpTemplate()

	cmd := &cli.Command{
		Name:        "netsniff",
		Description: "Link-layer packet sniffer and protocol decoder",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name: "clean",
				Usage: `
				if set, all configuration files will be ignored`,
				OnlyOnce: true,
			},

			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage: `
				Custom location of the config file to load. Options given through the command
				line flags will override the options set in this file.`,
				OnlyOnce: true,
				Sources:  cli.EnvVars("NETSNIFF_CONFIG"),
			},

			&cli.IntFlag{
				Name:    "count",
				Aliases: []string{"n"},
				Usage: `
				Stop after this many frames. No limit when the value is 0 (default: 0)`,
				OnlyOnce:  true,
				Validator: validateCount,
			},

			&cli.BoolFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage: `
				Print the undecoded payload of each frame`,
				OnlyOnce: true,
			},

			&cli.StringFlag{
				Name:    "interface",
				Aliases: []string{"i"},
				Usage: `
				Interface to capture on. 'all' captures on every interface and
				'default' picks the one holding the default route (default: all)`,
				OnlyOnce:  true,
				Validator: checkInterfaceName,
			},

			&cli.BoolFlag{
				Name: "log-frames",
				Usage: `
				Emit one structured log line per frame at info level`,
				OnlyOnce: true,
			},

			&cli.StringFlag{
				Name: "log-level",
				Usage: `
				Set log level (default: 'info')`,
				OnlyOnce:  true,
				Validator: checkLogLevel,
			},

			&cli.BoolFlag{
				Name: "no-color",
				Usage: `
				Disable colored output`,
				OnlyOnce: true,
			},

			&cli.BoolFlag{
				Name: "no-stats",
				Usage: `
				Do not print the capture summary on exit`,
				OnlyOnce: true,
			},

			&cli.BoolFlag{
				Name: "promisc",
				Usage: `
				Put the interface into promiscuous mode`,
				OnlyOnce: true,
			},

			&cli.StringFlag{
				Name:    "read",
				Aliases: []string{"r"},
				Usage: `
				Read frames from a pcap or pcapng file instead of a live interface`,
				OnlyOnce:  true,
				Validator: checkNonEmpty,
			},

			&cli.BoolFlag{
				Name: "silent",
				Usage: `
				Do not show the banner at start up`,
				OnlyOnce: true,
			},

			&cli.IntFlag{
				Name: "snaplen",
				Usage: `
				Maximum number of bytes captured per frame (default: 9000, max: 65535)`,
				OnlyOnce:  true,
				Validator: validateSnapLen,
			},

			&cli.BoolFlag{
				Name: "version",
				Usage: `
				Print version; this may contain some other relevant information`,
				Aliases:  []string{"v"},
				OnlyOnce: true,
			},

			&cli.StringFlag{
				Name:    "write",
				Aliases: []string{"w"},
				Usage: `
				Also write every captured frame to this pcap file`,
				OnlyOnce:  true,
				Validator: checkNonEmpty,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Bool("version") {
				fmt.Printf("netsniff %s %s (%s)\n", version, commit, build)
				return nil
			}

			cfg, configPath, err := loadConfig(cmd, defaultConfigPaths())
			if err != nil {
				return err
			}

			return runFunc(ctx, strings.Replace(configPath, os.Getenv("HOME"), "~", 1), cfg)
		},
	}

	cli.HelpFlag = &cli.BoolFlag{
		Name:    "help",
		Aliases: []string{"h"},
		Usage: `
        show help`,
	}

	return cmd
}

// loadConfig layers defaults, the TOML file and explicitly set flags, in
// increasing priority.
func loadConfig(cmd *cli.Command, lookupPaths []string) (*Config, string, error) {
	cfg := NewConfig()

	var configPath string
	if !cmd.Bool("clean") {
		p, err := searchTomlFile(cmd.String("config"), lookupPaths)
		if err != nil {
			return nil, "", err
		}

		if p != "" {
			tomlCfg, err := fromTomlFile(p)
			if err != nil {
				return nil, "", fmt.Errorf("error parsing toml config: %w", err)
			}
			configPath = p
			cfg = cfg.Merge(tomlCfg)
		}
	}

	cfg = cfg.Merge(parseConfigFromArgs(cmd))
	if err := checkConfig(cfg); err != nil {
		return nil, "", err
	}

	return cfg, configPath, nil
}

func createHelpTemplate() string {
	return fmt.Sprintf(`DESCRIPTION:
  %s
USAGE:
  %s {{if .Flags}}%s{{end}}
GLOBAL OPTIONS:
  {{range .VisibleFlags}}%s{{if .Aliases}}{{range .Aliases}}%s{{end}}{{end}} %s %s %s
	{{end}}
	`,
		"{{.Name}} - {{.Description}}",
		"{{.Name}}",
		"[global options]",
		"--{{.Name}}",
		", -{{.}}",
		"{{.TypeName}}",
		"{{.Usage}}",
		"{{.DefaultText}}",
	)
}

func parseConfigFromArgs(cmd *cli.Command) *Config {
	cfg := &Config{
		General: &GeneralOptions{
			Silent:  flagValue(cmd, "silent", cmd.Bool),
			NoColor: flagValue(cmd, "no-color", cmd.Bool),
		},
		Capture: &CaptureOptions{
			Interface:   flagValue(cmd, "interface", cmd.String),
			ReadFile:    flagValue(cmd, "read", cmd.String),
			SnapLen:     flagValue(cmd, "snaplen", cmd.Int),
			Promiscuous: flagValue(cmd, "promisc", cmd.Bool),
		},
		Output: &OutputOptions{
			ShowData:  flagValue(cmd, "data", cmd.Bool),
			WriteFile: flagValue(cmd, "write", cmd.String),
			LogFrames: flagValue(cmd, "log-frames", cmd.Bool),
		},
	}

	if p := flagValue(cmd, "log-level", cmd.String); p != nil {
		cfg.General.LogLevel = ptr.FromValue(MustParseLogLevel(*p))
	}

	if p := flagValue(cmd, "count", cmd.Int); p != nil {
		cfg.Capture.Count = ptr.FromValue(uint64(*p))
	}

	if p := flagValue(cmd, "no-stats", cmd.Bool); p != nil {
		cfg.Output.Stats = ptr.FromValue(!*p)
	}

	return cfg
}

// flagValue returns nil unless the flag was given on the command line or
// through its environment source.
func flagValue[T any](cmd *cli.Command, name string, get func(string) T) *T {
	if !cmd.IsSet(name) {
		return nil
	}

	return ptr.FromValue(get(name))
}
