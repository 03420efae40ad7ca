package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"aidex/internal/app"
)

type loginArgs struct {
	provider    string
	callbackURL string
	token       string
}

func newLoginCmd(opts *cliOptions) *cobra.Command {
	args := &loginArgs{provider: "google"}
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the catalog",
		Long: "Without flags, prints the sign-in URL. After signing in, pass the URL the browser\n" +
			"was redirected to with --callback-url, or the bare token with --token. While\n" +
			"`aidex serve` runs, the redirect is captured automatically.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApplication(cmd, opts, nil, func(_ context.Context, application *app.Application) error {
				auth := application.Auth()
				input := args.callbackURL
				if input == "" {
					input = args.token
				}
				if input != "" {
					if err := auth.CompleteLogin(input); err != nil {
						return err
					}
					fmt.Println("signed in")
					return nil
				}
				url, err := auth.LoginURL(args.provider)
				if err != nil {
					return err
				}
				if opts.jsonOutput {
					return writeJSON(map[string]string{"loginUrl": url})
				}
				fmt.Println("Open this URL to sign in:")
				fmt.Println(url)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&args.provider, "provider", args.provider, "OAuth provider")
	cmd.Flags().StringVar(&args.callbackURL, "callback-url", "", "redirect URL received after signing in")
	cmd.Flags().StringVar(&args.token, "token", "", "access token")
	cmd.MarkFlagsMutuallyExclusive("callback-url", "token")
	return cmd
}

func newLogoutCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApplication(cmd, opts, nil, func(_ context.Context, application *app.Application) error {
				if err := application.Auth().Logout(); err != nil {
					return err
				}
				fmt.Println("signed out")
				return nil
			})
		},
	}
}
