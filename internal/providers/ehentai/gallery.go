package ehentai

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/brogergvhs/galleryd/internal/dom"
	"github.com/brogergvhs/galleryd/internal/imgurl"
	"github.com/brogergvhs/galleryd/internal/providers"
)

const (
	listingSelector = "table.itg.glte"
	rowsSelector    = "table.itg.glte > tbody > tr"
)

var (
	// ErrNoListing means the page has no listing table or the table is empty.
	ErrNoListing = fmt.Errorf("%w: gallery listing", providers.ErrNotFound)

	// ErrEmptyListing means the listing has rows but none links to a gallery.
	ErrEmptyListing = fmt.Errorf("%w: gallery links in listing", providers.ErrNotFound)
)

// extractGalleries turns an extended-layout listing page into summaries.
// Rows that fail to extract are logged and dropped.
func (r *Repository) extractGalleries(doc dom.Node) ([]providers.BookSummary, error) {
	if !doc.Find(listingSelector).Exists() {
		return nil, ErrNoListing
	}

	rows := doc.FindAll(rowsSelector)
	if len(rows) == 0 {
		return nil, ErrNoListing
	}

	linked := make([]dom.Node, 0, len(rows))
	for _, row := range rows {
		if href, _ := row.Find("a").Attr("href"); strings.TrimSpace(href) != "" {
			linked = append(linked, row)
		}
	}
	if len(linked) == 0 {
		return nil, ErrEmptyListing
	}

	savedAt := providers.Epoch(time.Now())
	out := make([]providers.BookSummary, 0, len(linked))
	for i, row := range linked {
		summary, err := r.summarize(row, savedAt)
		if err != nil {
			r.log.Warnf("skipping listing row %d: %v\n", i+1, err)
			continue
		}
		out = append(out, summary)
	}

	return out, nil
}

func (r *Repository) summarize(row dom.Node, savedAt int64) (providers.BookSummary, error) {
	href, _ := row.Find("a").Attr("href")
	id := r.galleryID(href)
	if id == "" {
		return providers.BookSummary{}, fmt.Errorf("%w: gallery id from %q", providers.ErrExtraction, href)
	}

	title := row.Find(".glink").Text()

	return providers.BookSummary{
		ID:                 id,
		Cover:              providers.Image{URI: imgurl.ImageSrc(coverSource(row), r.log)},
		Title:              title,
		AvailableLanguages: inferLanguages(row, title),
		SavedAt:            savedAt,
	}, nil
}

// coverSource falls back to data-src for lazily loaded thumbnails.
func coverSource(row dom.Node) string {
	img := row.Find("img")
	if src, ok := img.Attr("src"); ok && src != "" && !strings.HasPrefix(src, "data:") {
		return src
	}

	src, _ := img.Attr("data-src")
	return src
}

// galleryID strips the gallery base (absolute or path-only) and a single
// trailing slash from a gallery href, leaving "<gid>/<token>".
func (r *Repository) galleryID(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}

	id := href
	if rest, ok := strings.CutPrefix(href, r.domains.GalleryBaseURL+"/"); ok {
		id = rest
	} else if u, err := url.Parse(r.domains.GalleryBaseURL); err == nil {
		if rest, ok := strings.CutPrefix(href, u.Path+"/"); ok {
			id = rest
		}
	}

	return strings.TrimSuffix(id, "/")
}
