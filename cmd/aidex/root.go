package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"aidex/internal/app"
	"aidex/internal/domain"
	"aidex/internal/infra/catalog"
)

const defaultConfigPath = "aidex.yaml"

type cliOptions struct {
	configPath string
	envFiles   []string
	jsonOutput bool
	width      int
	verbose    bool
	logger     *zap.Logger
}

func newRootCommand() *cobra.Command {
	opts := cliOptions{
		configPath: defaultConfigPath,
		envFiles:   []string{".env"},
		logger:     zap.NewNop(),
	}

	root := &cobra.Command{
		Use:           "aidex",
		Short:         "Browse the AI tool catalog",
		Version:       app.Version + " (" + app.Build + ")",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			logger, err := newLogger(opts.verbose)
			if err != nil {
				return err
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = opts.logger.Sync()
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", opts.configPath, "path to config file (optional)")
	root.PersistentFlags().StringSliceVar(&opts.envFiles, "env-file", opts.envFiles, "env files loaded before the config (missing files are skipped)")
	root.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "output JSON")
	root.PersistentFlags().IntVar(&opts.width, "width", 0, "output width in columns (0 = default)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log at debug level")

	root.AddCommand(
		newListCmd(&opts),
		newToolCmd(&opts),
		newImageCmd(&opts),
		newBookmarksCmd(&opts),
		newLoginCmd(&opts),
		newLogoutCmd(&opts),
		newServeCmd(&opts),
		newValidateCmd(&opts),
	)

	return root
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return newLoggerAt(zapcore.DebugLevel)
	}
	return newLoggerAt(zapcore.WarnLevel)
}

func newLoggerAt(level zapcore.Level) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	return cfg.Build()
}

// loadConfig reads env files and the config file. The default config path is
// optional; an explicitly named file must exist.
func loadConfig(ctx context.Context, opts *cliOptions, explicit bool) (domain.Config, error) {
	loader := catalog.NewLoader(opts.logger)
	if err := loader.LoadDotEnv(opts.envFiles...); err != nil {
		return domain.Config{}, err
	}
	path := strings.TrimSpace(opts.configPath)
	if !explicit && path == defaultConfigPath {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			path = ""
		}
	}
	return loader.Load(ctx, path)
}

// withApplication loads the config, lets tweak adjust it, wires the
// application and runs fn.
func withApplication(cmd *cobra.Command, opts *cliOptions, tweak func(*domain.Config), fn func(context.Context, *app.Application) error) error {
	ctx, cancel := signalAwareContext(cmd.Context())
	defer cancel()

	cfg, err := loadConfig(ctx, opts, cmd.Flags().Changed("config"))
	if err != nil {
		return exitError{code: exitUsage, message: err.Error()}
	}
	if tweak != nil {
		tweak(&cfg)
	}
	application, cleanup, err := app.InitializeApplication(cfg, app.LoggingConfig{Logger: opts.logger})
	if err != nil {
		return err
	}
	defer cleanup()
	return classifyExit(fn(ctx, application))
}

func signalAwareContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(signals)
		select {
		case <-signals:
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
