package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"aidex/internal/app"
)

func newToolCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tool <id>",
		Short: "Show one tool in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApplication(cmd, opts, nil, func(ctx context.Context, application *app.Application) error {
				detail, err := application.Details().Get(ctx, args[0])
				if err != nil {
					return err
				}
				if opts.jsonOutput {
					return writeJSON(detail)
				}
				printDetail(newRenderer(os.Stdout, opts), detail)
				return nil
			})
		},
	}
	return cmd
}

func newImageCmd(opts *cliOptions) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "image <service name>",
		Short: "Resolve the asset URLs of a service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApplication(cmd, opts, nil, func(_ context.Context, application *app.Application) error {
				mapping := application.Images().Resolve(args[0], category)
				if opts.jsonOutput {
					return writeJSON(mapping)
				}
				printImages(newRenderer(os.Stdout, opts), mapping)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "category slug of the service")
	return cmd
}
