package ehentai

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/samber/lo"

	"github.com/brogergvhs/galleryd/internal/chain"
	"github.com/brogergvhs/galleryd/internal/dom"
	"github.com/brogergvhs/galleryd/internal/providers"
	"github.com/brogergvhs/galleryd/internal/rangefinder"
)

const (
	lastPageSelector   = "section.pagination a.last"
	pageLinkSelector   = "table.ptt td a"
	defaultSearchLimit = rangefinder.NativePageSize
)

var rePageParam = regexp.MustCompile(`page=(\d+)`)

// nativePage is one fetched source listing page.
type nativePage struct {
	number     int
	totalPages int
	results    []providers.BookSummary
}

// totalPages reads how many native result pages the source reports.
func totalPages(doc dom.Node) (int, error) {
	if last := doc.Find(lastPageSelector); last.Exists() {
		href, _ := last.Attr("href")
		if m := rePageParam.FindStringSubmatch(href); m != nil {
			return strconv.Atoi(m[1])
		}
		return 1, nil
	}

	highest := 0
	for _, a := range doc.FindAll(pageLinkSelector) {
		if n, err := strconv.Atoi(a.Text()); err == nil && n > highest {
			highest = n
		}
	}
	if highest > 0 {
		return highest, nil
	}

	return 0, fmt.Errorf("%w: pagination", providers.ErrNotFound)
}

func (r *Repository) searchNative(ctx context.Context, query string, n int) (nativePage, error) {
	params := []param{{"f_search", query}}
	if n > 1 {
		params = append(params, param{"range", strconv.Itoa(n)})
	}

	doc, err := r.fetch(ctx, r.domains.BaseURL, params...)
	if err != nil {
		return nativePage{}, err
	}

	total, err := totalPages(doc)
	if err != nil {
		return nativePage{}, err
	}

	results, err := r.extractGalleries(doc)
	if err != nil {
		return nativePage{}, err
	}

	return nativePage{number: n, totalPages: total, results: results}, nil
}

func normalizeSearchOptions(opts providers.SearchOptions) providers.SearchOptions {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Size < 1 {
		opts.Size = defaultSearchLimit
	}
	if opts.Sort == "" {
		opts.Sort = providers.SortLatest
	}

	return opts
}

// Search maps the logical page of opts onto the native pages covering it,
// fetches them one at a time and trims the merged results to the window.
// On failure it returns whatever was accumulated.
func (r *Repository) Search(ctx context.Context, query string, opts providers.SearchOptions) providers.SearchResult {
	opts = normalizeSearchOptions(opts)
	if opts.Sort != providers.SortLatest {
		r.log.Debugf("sort %q: %v, using source order\n", opts.Sort, providers.ErrUnsupported)
	}

	finder := rangefinder.New(opts.Size)
	window, native := finder.Pagination(opts.Page)
	r.log.Debugf("search %q page %d: items %d-%d from native pages %v\n",
		query, opts.Page, window.StartIndex, window.EndIndex, native)

	lastPage := 0
	tasks := lo.Map(native, func(n int, _ int) chain.Task[nativePage] {
		return func(ctx context.Context) (nativePage, error) {
			if len(rangefinder.Clamp([]int{n}, lastPage)) == 0 {
				return nativePage{number: n}, nil
			}
			return r.searchNative(ctx, query, n)
		}
	})

	var merged []providers.BookSummary
	err := chain.Run(ctx, tasks, func(p nativePage) error {
		if p.totalPages > 0 {
			lastPage = p.totalPages
		}
		merged = append(merged, p.results...)
		return nil
	}, r.chainOptions()...)
	if err != nil {
		r.log.Errorf("search %q: %v\n", query, err)
	}

	totalResults := rangefinder.NativePageSize * lastPage

	return providers.SearchResult{
		Query:        query,
		Page:         opts.Page,
		TotalResults: totalResults,
		TotalPages:   (totalResults + opts.Size - 1) / opts.Size,
		Results:      filterLanguages(rangefinder.Slice(finder, merged, window, native[0]), r.opts.RequiredLanguages),
	}
}
