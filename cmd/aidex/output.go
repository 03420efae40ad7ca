package main

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	"aidex/internal/app"
	"aidex/internal/domain"
	"aidex/internal/ui/render"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func newRenderer(w io.Writer, opts *cliOptions) *render.Renderer {
	return render.New(w, opts.width)
}

func printListing(r *render.Renderer, view app.ListView, err error) {
	title := view.TabLabel
	if title == "" {
		title = view.Tab
	}
	fmt.Print(r.Listing(render.Listing{
		Title:    title,
		Sort:     view.Sort,
		Keywords: view.Keywords,
		Price:    view.Price,
		Query:    view.Query,
		Featured: view.Featured,
		Rest:     view.Rest,
		Err:      err,
	}))
}

func printDetail(r *render.Renderer, detail app.Detail) {
	fmt.Print(r.Detail(detail.Card))
	if detail.Bookmarked {
		fmt.Println("★ bookmarked")
	}
}

func printImages(r *render.Renderer, mapping domain.ImageMapping) {
	fmt.Print(r.Images(mapping))
}

func printBookmarks(r *render.Renderer, bookmarks []domain.Bookmark, names map[string]string) {
	fmt.Print(r.Bookmarks(bookmarks, names))
}
