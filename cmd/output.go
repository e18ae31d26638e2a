package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/brogergvhs/galleryd/internal/config"
	"github.com/brogergvhs/galleryd/internal/providers"
)

func render(w io.Writer, format string, v any) error {
	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case config.FormatTable, "":
		return renderTable(w, v)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func renderTable(w io.Writer, v any) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)

	switch v := v.(type) {
	case providers.Book:
		writeBook(tw, v)
	case providers.Chapter:
		writeChapter(tw, v)
	case providers.SearchResult:
		_, _ = fmt.Fprintf(tw, "Query:\t%s\n", v.Query)
		_, _ = fmt.Fprintf(tw, "Page:\t%d of %d (~%d results)\n\n", v.Page, v.TotalPages, v.TotalResults)
		writeSummaries(tw, v.Results)
	case providers.BookListResult:
		_, _ = fmt.Fprintf(tw, "Page:\t%d\n\n", v.Page)
		writeSummaries(tw, v.Results)
	case []providers.BookSummary:
		writeSummaries(tw, v)
	default:
		return fmt.Errorf("no table layout for %T", v)
	}

	return tw.Flush()
}

func joinLanguages(langs []providers.Language) string {
	return strings.Join(lo.Map(langs, func(l providers.Language, _ int) string { return string(l) }), ",")
}

func writeSummaries(w io.Writer, items []providers.BookSummary) {
	if len(items) == 0 {
		_, _ = fmt.Fprintln(w, "No results.")
		return
	}

	_, _ = fmt.Fprintln(w, "ID\tLANGUAGES\tTITLE")
	for _, b := range items {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", b.ID, joinLanguages(b.AvailableLanguages), b.Title)
	}
}

func writeBook(w io.Writer, b providers.Book) {
	if b.ID == "" {
		_, _ = fmt.Fprintln(w, "Book not available.")
		return
	}

	tags := lo.Map(b.Tags, func(t providers.Tag, _ int) string { return t.Name })

	_, _ = fmt.Fprintf(w, "ID:\t%s\n", b.ID)
	_, _ = fmt.Fprintf(w, "Title:\t%s\n", b.Title)
	_, _ = fmt.Fprintf(w, "Author:\t%s\n", b.Author)
	_, _ = fmt.Fprintf(w, "Languages:\t%s\n", joinLanguages(b.AvailableLanguages))
	_, _ = fmt.Fprintf(w, "Cover:\t%s\n", b.Cover.URI)
	_, _ = fmt.Fprintf(w, "Tags:\t%s\n", strings.Join(tags, ", "))
	for _, ch := range b.Chapters {
		_, _ = fmt.Fprintf(w, "Pages:\t%d\n", len(ch.Pages))
	}
}

func writeChapter(w io.Writer, c providers.Chapter) {
	_, _ = fmt.Fprintf(w, "ID:\t%s\n", c.ID)
	_, _ = fmt.Fprintf(w, "Title:\t%s\n", c.Title)
	_, _ = fmt.Fprintf(w, "Language:\t%s\n", c.Language)
	_, _ = fmt.Fprintf(w, "Pages:\t%d\n\n", len(c.Pages))

	for i, p := range c.Pages {
		uri := p.URI
		if uri == "" {
			uri = "(no image)"
		}
		_, _ = fmt.Fprintf(w, "%d\t%s\n", i+1, uri)
	}
}
