package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/zhouzirui/z-tavern/askwidget/internal/config"
	"github.com/zhouzirui/z-tavern/askwidget/internal/console"
	"github.com/zhouzirui/z-tavern/askwidget/internal/service/ask"
	"github.com/zhouzirui/z-tavern/askwidget/internal/tui"
)

func run(cmd *cobra.Command, opts *options) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := applyFlags(cfg, opts); err != nil {
		return err
	}

	interactive := !opts.plain && isTerminal(cmd.InOrStdin()) && isTerminal(cmd.OutOrStdout())

	logPath := "stderr"
	if interactive {
		logPath = cfg.Log.File
	}
	logger, err := newLogger(cfg.Log.Level, logPath)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	client := ask.NewClient(cfg.Client.BaseURL, ask.WithPath(cfg.Client.Path))
	logger.Debug("starting", zap.String("endpoint", client.Endpoint()), zap.Bool("interactive", interactive))

	if !interactive {
		session := console.NewSession(cmd.InOrStdin(), cmd.OutOrStdout(), client,
			console.WithLogger(logger),
			console.WithBoldLabels(isTerminal(cmd.OutOrStdout())),
		)
		_, err := session.Run(cmd.Context())
		return err
	}

	model, err := tui.New(tui.Options{Asker: client, Logger: logger, Endpoint: client.Endpoint()})
	if err != nil {
		return err
	}
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	_, err = program.Run()
	model.Widget().Close()
	return err
}

func applyFlags(cfg *config.Config, opts *options) error {
	if opts.endpoint != "" {
		base, err := config.ParseBaseURL("--endpoint", opts.endpoint)
		if err != nil {
			return err
		}
		cfg.Client.BaseURL = base
	}
	if opts.path != "" {
		cfg.Client.Path = opts.path
	}
	if opts.logFile != "" {
		cfg.Log.File = opts.logFile
	}
	if opts.verbose {
		cfg.Log.Level = zapcore.DebugLevel
	}
	return nil
}

// newLogger builds a production zap logger writing to path ("stderr" or a file).
func newLogger(level zapcore.Level, path string) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.OutputPaths = []string{path}
	zcfg.ErrorOutputPaths = []string{path}
	return zcfg.Build()
}

func isTerminal(stream any) bool {
	f, ok := stream.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
