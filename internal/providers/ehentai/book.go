package ehentai

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/brogergvhs/galleryd/internal/chain"
	"github.com/brogergvhs/galleryd/internal/dom"
	"github.com/brogergvhs/galleryd/internal/imgurl"
	"github.com/brogergvhs/galleryd/internal/providers"
)

const (
	// thumbsPerPage is how many image links one gallery page lists.
	thumbsPerPage = 20

	coverSelector     = "#gd1 div"
	thumbLinkSelector = "#gdt a"
	detailSelector    = ".gdt2"
	tagSelector       = `div[id^="td_"]`
	titleSelector     = "h1#gn"

	// tagWordSeparator replaces the underscores the site uses between words
	// of a tag value.
	tagWordSeparator = " |"
)

var (
	reStyleURL   = regexp.MustCompile(`url\((https?://[^\s)]+)\)`)
	reLeadingInt = regexp.MustCompile(`^\s*(\d+)`)
)

type galleryTag struct {
	namespace string
	value     string
}

// galleryURL is the gallery page for id, "<gallery base>/<gid>/<token>".
func (r *Repository) galleryURL(id string) string {
	return r.domains.GalleryBaseURL + "/" + strings.Trim(id, "/")
}

// assembleBook fetches a gallery and every continuation page it needs, then
// resolves each image link. The gallery becomes a single-chapter book.
func (r *Repository) assembleBook(ctx context.Context, id string) (providers.Book, error) {
	id = strings.Trim(strings.TrimSpace(id), "/")
	if id == "" {
		return providers.Book{}, fmt.Errorf("%w: empty gallery id", providers.ErrExtraction)
	}

	doc, err := r.fetch(ctx, r.galleryURL(id))
	if err != nil {
		return providers.Book{}, err
	}

	pageCount, err := galleryPageCount(doc)
	if err != nil {
		return providers.Book{}, err
	}

	links := thumbLinks(doc)
	more, err := r.continuationLinks(ctx, id, continuationPages(pageCount))
	if err != nil {
		return providers.Book{}, err
	}
	links = append(links, more...)

	tags := galleryTags(doc)
	title := doc.Find(titleSelector).Text()
	languages := languagesFromTags(tags)

	pages, err := r.loadImages(ctx, links)
	if err != nil {
		return providers.Book{}, err
	}

	savedAt := providers.Epoch(time.Now())
	primary := providers.English
	if len(languages) > 0 {
		primary = languages[0]
	}

	return providers.Book{
		ID:                 id,
		Cover:              providers.Image{URI: imgurl.ImageSrc(coverFromStyle(doc), r.log)},
		Title:              title,
		Author:             authorFromTags(tags),
		Tags:               bookTags(tags),
		AvailableLanguages: languages,
		Chapters: []providers.Chapter{{
			ID:            id,
			Title:         title,
			Language:      primary,
			ChapterNumber: 1,
			Pages:         pages,
			SavedAt:       savedAt,
		}},
		SavedAt: savedAt,
	}, nil
}

// galleryPageCount reads "<n> pages" from the gallery detail table.
func galleryPageCount(doc dom.Node) (int, error) {
	details := doc.FindAll(detailSelector)
	if len(details) == 0 {
		return 0, fmt.Errorf("%w: gallery details", providers.ErrNotFound)
	}

	for _, d := range details {
		text := d.Text()
		if !strings.Contains(strings.ToLower(text), "page") {
			continue
		}

		m := reLeadingInt.FindStringSubmatch(text)
		if m == nil {
			return 0, fmt.Errorf("%w: page count %q", providers.ErrExtraction, text)
		}

		return strconv.Atoi(m[1])
	}

	return 0, fmt.Errorf("%w: page count", providers.ErrNotFound)
}

// continuationPages lists the 0-based "p" values still needed after the
// first gallery page for total images.
func continuationPages(total int) []int {
	if total <= thumbsPerPage {
		return nil
	}

	n := (total + thumbsPerPage - 1) / thumbsPerPage
	return lo.RangeFrom(1, n-1)
}

func thumbLinks(doc dom.Node) []string {
	var out []string
	for _, a := range doc.FindAll(thumbLinkSelector) {
		if href, _ := a.Attr("href"); strings.TrimSpace(href) != "" {
			out = append(out, strings.TrimSpace(href))
		}
	}

	return out
}

func (r *Repository) continuationLinks(ctx context.Context, id string, pages []int) ([]string, error) {
	tasks := lo.Map(pages, func(p int, _ int) chain.Task[[]string] {
		return func(ctx context.Context) ([]string, error) {
			doc, err := r.fetch(ctx, r.galleryURL(id), param{"p", strconv.Itoa(p)})
			if err != nil {
				return nil, err
			}
			return thumbLinks(doc), nil
		}
	})

	var links []string
	err := chain.Run(ctx, tasks, func(batch []string) error {
		links = append(links, batch...)
		return nil
	}, r.chainOptions()...)
	if err != nil {
		return nil, fmt.Errorf("gallery %s continuation: %w", id, err)
	}

	return links, nil
}

func coverFromStyle(doc dom.Node) string {
	style, _ := doc.Find(coverSelector).Attr("style")
	m := reStyleURL.FindStringSubmatch(style)
	if m == nil {
		return ""
	}

	return m[1]
}

// parseTagID splits a tag element id such as "td_artist:some_name".
func parseTagID(id string) (galleryTag, bool) {
	rest, ok := strings.CutPrefix(id, "td_")
	if !ok {
		return galleryTag{}, false
	}

	namespace, value, ok := strings.Cut(rest, ":")
	if !ok || value == "" {
		return galleryTag{}, false
	}

	value = strings.ReplaceAll(value, ".gt1", "")
	value = strings.ReplaceAll(value, "_", tagWordSeparator)

	return galleryTag{namespace: namespace, value: value}, true
}

func galleryTags(doc dom.Node) []galleryTag {
	var out []galleryTag
	for _, el := range doc.FindAll(tagSelector) {
		id, _ := el.Attr("id")
		if tag, ok := parseTagID(id); ok {
			out = append(out, tag)
		}
	}

	return out
}

func bookTags(tags []galleryTag) []providers.Tag {
	names := lo.Uniq(lo.Map(tags, func(t galleryTag, _ int) string { return t.value }))

	return lo.Map(names, func(name string, _ int) providers.Tag {
		return providers.Tag{ID: name, Name: name}
	})
}

const unknownAuthor = "unknown"

func authorFromTags(tags []galleryTag) string {
	if t, ok := lo.Find(tags, func(t galleryTag) bool { return t.namespace == "artist" }); ok {
		return t.value
	}

	return unknownAuthor
}

func languagesFromTags(tags []galleryTag) []providers.Language {
	var out []providers.Language
	for _, t := range tags {
		if t.namespace != "language" {
			continue
		}
		if lang, ok := mapLanguage(t.value); ok {
			out = append(out, lang)
		}
	}

	if out = lo.Uniq(out); len(out) == 0 {
		return []providers.Language{providers.Japanese}
	}

	return out
}
