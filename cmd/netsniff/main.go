package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"github.com/rs/zerolog"
	"github.com/xvzc/netsniff/internal/config"
	"github.com/xvzc/netsniff/internal/logging"
	"github.com/xvzc/netsniff/internal/output"
	"github.com/xvzc/netsniff/internal/packet"
	"github.com/xvzc/netsniff/internal/proto"
	"github.com/xvzc/netsniff/internal/ptr"
	"github.com/xvzc/netsniff/internal/system"
	"github.com/xvzc/netsniff/version"
)

// Set by the linker.
var (
	commit = "unknown"
	build  = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
		syscall.SIGHUP,
	)

	cmd := config.CreateCommand(runApp, version.Version(), commit, build)
	err := cmd.Run(ctx, os.Args)
	stop()

	if err != nil {
		pterm.Error.WithWriter(os.Stderr).Println(err)
		os.Exit(exitCode(err))
	}
}

func runApp(ctx context.Context, configPath string, cfg *config.Config) error {
	noColor := ptr.FromPtr(cfg.General.NoColor)
	if noColor {
		pterm.DisableColor()
	}

	logger := logging.SetGlobalLogger(ctx, ptr.FromPtrOr(cfg.General.LogLevel, zerolog.InfoLevel), nil)
	mainLogger := logging.WithScope(logger, "MAIN")

	if !ptr.FromPtr(cfg.General.Silent) {
		printBanner(cfg, configPath)
	}

	handle, err := openHandle(cfg)
	if err != nil {
		logging.ErrorUnwrapped(&mainLogger, "failed to open capture source", err)
		return err
	}

	sniffer, closeFn, err := createSniffer(logger, handle, cfg, os.Stdout)
	if err != nil {
		handle.Close()
		return err
	}
	defer func() {
		if err := closeFn(); err != nil {
			logging.WarnUnwrapped(&mainLogger, "failed to close pcap dump", err)
		}
	}()

	runErr := sniffer.Run(ctx)

	if ptr.FromPtr(cfg.Output.Stats) {
		if err := output.RenderStats(os.Stdout, sniffer.Stats()); err != nil {
			mainLogger.Warn().Err(err).Msg("failed to print stats")
		}
	}

	return runErr
}

func openHandle(cfg *config.Config) (packet.Handle, error) {
	if cfg.Offline() {
		return packet.OpenFile(*cfg.Capture.ReadFile)
	}

	if err := system.CheckPrivileges(); err != nil {
		return nil, err
	}

	iface, err := system.ResolveInterface(ptr.FromPtr(cfg.Capture.Interface))
	if err != nil {
		return nil, err
	}

	return packet.OpenLive(packet.Options{
		Interface:   iface,
		SnapLen:     ptr.FromPtrOr(cfg.Capture.SnapLen, packet.DefaultSnapLen),
		Promiscuous: ptr.FromPtr(cfg.Capture.Promiscuous),
	})
}

// createSniffer wires the observers selected by cfg. The returned function
// flushes and closes the pcap dump, if any.
func createSniffer(
	logger zerolog.Logger,
	handle packet.Handle,
	cfg *config.Config,
	stdout io.Writer,
) (*packet.Sniffer, func() error, error) {
	sniffer := packet.NewSniffer(
		logging.WithScope(logger, "SNIFF"),
		handle,
		proto.DefaultRegistry(),
	)
	sniffer.SetLimit(ptr.FromPtr(cfg.Capture.Count))

	sniffer.Register(output.NewScreen(
		stdout,
		ptr.FromPtr(cfg.Output.ShowData),
		!ptr.FromPtr(cfg.General.NoColor),
	))

	if ptr.FromPtr(cfg.Output.LogFrames) {
		sniffer.Register(output.NewLog(logging.WithScope(logger, "FRAME")))
	}

	closeFn := func() error { return nil }
	if path := ptr.FromPtr(cfg.Output.WriteFile); path != "" {
		dump, err := output.CreatePcapDump(
			logging.WithScope(logger, "DUMP"),
			path,
			ptr.FromPtrOr(cfg.Capture.SnapLen, packet.DefaultSnapLen),
		)
		if err != nil {
			return nil, nil, err
		}
		sniffer.Register(dump)
		closeFn = dump.Close
	}

	return sniffer, closeFn, nil
}

func printBanner(cfg *config.Config, configPath string) {
	cyan := putils.LettersFromStringWithStyle("net", pterm.NewStyle(pterm.FgCyan))
	purple := putils.LettersFromStringWithStyle("sniff", pterm.NewStyle(pterm.FgLightMagenta))
	_ = pterm.DefaultBigText.WithLetters(cyan, purple).Render()

	source := "live " + ptr.FromPtr(cfg.Capture.Interface)
	if cfg.Offline() {
		source = "file " + *cfg.Capture.ReadFile
	}

	if configPath == "" {
		configPath = "none"
	}

	_ = pterm.DefaultBulletList.WithItems([]pterm.BulletListItem{
		{Level: 0, Text: "SOURCE    : " + source},
		{Level: 0, Text: "SNAPLEN   : " + fmt.Sprint(ptr.FromPtr(cfg.Capture.SnapLen))},
		{Level: 0, Text: "LOG_LEVEL : " + ptr.FromPtr(cfg.General.LogLevel).String()},
		{Level: 0, Text: "CONFIG    : " + configPath},
	}).Render()

	if !cfg.Offline() {
		pterm.DefaultBasicText.Println("Press 'CTRL + c' to quit")
	}
}

// exitCode maps setup failures to 2 and everything else to 1.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, packet.ErrBind), errors.Is(err, system.ErrInsufficientPrivileges):
		return 2
	default:
		return 1
	}
}
