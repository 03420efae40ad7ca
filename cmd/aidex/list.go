package main

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"aidex/internal/app"
	"aidex/internal/domain"
)

type listArgs struct {
	tab      string
	sort     string
	keywords []string
	price    string
	query    string
	featured int
}

// listingFlags is shared by every command that draws a listing.
func listingFlags(args *listArgs) *pflag.FlagSet {
	flags := pflag.NewFlagSet("listing", pflag.ContinueOnError)
	flags.StringVar(&args.tab, "tab", "", "category tab (default from config)")
	flags.StringVar(&args.sort, "sort", "", "sort order: popular or newest (default from config)")
	flags.StringSliceVarP(&args.keywords, "keyword", "k", nil, "keyword chip (repeatable, OR semantics)")
	flags.StringVar(&args.price, "price", string(domain.PriceAll), "price filter: all, free, paid or freemium")
	flags.StringVarP(&args.query, "query", "q", "", "free-text search")
	flags.IntVar(&args.featured, "featured", 0, "number of featured tools (default from config)")
	return flags
}

func newListCmd(opts *cliOptions) *cobra.Command {
	args := &listArgs{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the tools of one tab",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tweak := func(cfg *domain.Config) {
				if args.featured > 0 {
					cfg.Listing.FeaturedCount = args.featured
				}
			}
			return withApplication(cmd, opts, tweak, func(ctx context.Context, application *app.Application) error {
				page := application.Page()
				if err := applyListArgs(page, args); err != nil {
					return err
				}
				loadErr := page.Load(ctx)
				if opts.jsonOutput {
					if loadErr != nil {
						return loadErr
					}
					return writeJSON(page.View())
				}
				printListing(newRenderer(os.Stdout, opts), page.View(), loadErr)
				if loadErr != nil {
					return exitSilent(exitUpstream)
				}
				return nil
			})
		},
	}
	cmd.Flags().AddFlagSet(listingFlags(args))
	return cmd
}

func applyListArgs(page *app.ListPage, args *listArgs) error {
	if strings.TrimSpace(args.tab) != "" {
		if err := page.SelectTab(args.tab); err != nil {
			return err
		}
	}
	if strings.TrimSpace(args.sort) != "" {
		if err := page.SelectSort(domain.SortType(args.sort)); err != nil {
			return err
		}
	}
	if err := page.SetPriceFilter(domain.PriceFilter(args.price)); err != nil {
		return err
	}
	page.SetKeywords(args.keywords)
	page.SetQuery(args.query)
	return nil
}
