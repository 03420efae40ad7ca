package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"aidex/internal/app"
	"aidex/internal/domain"
)

func newServeCmd(opts *cliOptions) *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog as a JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tweak := func(cfg *domain.Config) {
				if listen != "" {
					cfg.Server.ListenAddress = listen
				}
			}
			// serve logs at info at least, so the listen addresses are visible.
			if !opts.verbose {
				logger, err := newLoggerAt(zapcore.InfoLevel)
				if err != nil {
					return err
				}
				opts.logger = logger
			}
			return withApplication(cmd, opts, tweak, func(ctx context.Context, application *app.Application) error {
				return application.Serve(ctx, app.ServeOptions{
					ConfigPath: watchPath(opts),
					Adjust:     tweak,
				})
			})
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "API listen address (default from config)")
	return cmd
}

// watchPath returns the config file to hot reload, or "" when it does not
// exist.
func watchPath(opts *cliOptions) string {
	if opts.configPath == "" {
		return ""
	}
	if _, err := os.Stat(opts.configPath); err != nil {
		return ""
	}
	return opts.configPath
}

func newValidateCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration without contacting the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd.Context(), opts, cmd.Flags().Changed("config"))
			if err != nil {
				return exitError{code: exitUsage, message: err.Error()}
			}
			if opts.jsonOutput {
				return writeJSON(cfg)
			}
			fmt.Printf("config ok: api=%s tab=%s sort=%s featured=%d\n",
				cfg.API.BaseURL, cfg.Listing.DefaultTab, cfg.Listing.DefaultSort, cfg.Listing.FeaturedCount)
			return nil
		},
	}
}
