package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"aidex/internal/app"
	"aidex/internal/domain"
)

func newBookmarksCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookmarks",
		Short: "List and edit bookmarks of the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApplication(cmd, opts, nil, func(ctx context.Context, application *app.Application) error {
				bookmarks, err := application.Bookmarks().List(ctx)
				if err != nil {
					return err
				}
				if opts.jsonOutput {
					if bookmarks == nil {
						bookmarks = []domain.Bookmark{}
					}
					return writeJSON(bookmarks)
				}
				printBookmarks(newRenderer(os.Stdout, opts), bookmarks, bookmarkNames(ctx, application, bookmarks))
				return nil
			})
		},
	}
	cmd.AddCommand(
		newBookmarkEditCmd(opts, "add", "Bookmark a tool", func(ctx context.Context, s *app.BookmarkService, id string) (bool, error) {
			return true, s.Add(ctx, id)
		}),
		newBookmarkEditCmd(opts, "remove", "Remove a bookmark", func(ctx context.Context, s *app.BookmarkService, id string) (bool, error) {
			return false, s.Remove(ctx, id)
		}),
		newBookmarkEditCmd(opts, "toggle", "Bookmark a tool or remove its bookmark", func(ctx context.Context, s *app.BookmarkService, id string) (bool, error) {
			return s.Toggle(ctx, id)
		}),
	)
	return cmd
}

type bookmarkEdit func(ctx context.Context, s *app.BookmarkService, id string) (bool, error)

func newBookmarkEditCmd(opts *cliOptions, use, short string, edit bookmarkEdit) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApplication(cmd, opts, nil, func(ctx context.Context, application *app.Application) error {
				bookmarked, err := edit(ctx, application.Bookmarks(), args[0])
				if err != nil {
					return err
				}
				if opts.jsonOutput {
					return writeJSON(map[string]any{"toolId": args[0], "bookmarked": bookmarked})
				}
				if bookmarked {
					fmt.Printf("bookmarked %s\n", args[0])
				} else {
					fmt.Printf("removed bookmark %s\n", args[0])
				}
				return nil
			})
		},
	}
}

// bookmarkNames resolves display names for the bookmark list. Tools that
// cannot be loaded are listed by ID only.
func bookmarkNames(ctx context.Context, application *app.Application, bookmarks []domain.Bookmark) map[string]string {
	names := make(map[string]string, len(bookmarks))
	for _, bookmark := range bookmarks {
		detail, err := application.Details().Get(ctx, bookmark.ToolID)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				break
			}
			continue
		}
		names[bookmark.ToolID] = detail.Name
	}
	return names
}
