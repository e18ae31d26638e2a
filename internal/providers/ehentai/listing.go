package ehentai

import (
	"context"
	"strconv"

	"github.com/brogergvhs/galleryd/internal/providers"
)

func (r *Repository) GetBook(ctx context.Context, id string) providers.Book {
	book, err := r.assembleBook(ctx, id)
	if err != nil {
		r.log.Errorf("book %s: %v\n", id, err)
		return providers.EmptyBook()
	}

	r.log.Debugf("book %s: %d pages\n", book.ID, len(book.Chapters[0].Pages))
	return book
}

// GetChapter returns the single chapter of the gallery id; galleries have
// no separate chapter pages.
func (r *Repository) GetChapter(ctx context.Context, id string) providers.Chapter {
	book := r.GetBook(ctx, id)
	if len(book.Chapters) == 0 {
		return providers.EmptyChapter(id)
	}

	return book.Chapters[0]
}

func (r *Repository) GetLatestBooks(ctx context.Context, page int) providers.BookListResult {
	if page < 1 {
		page = 1
	}

	var params []param
	if page > 1 {
		params = append(params, param{"range", strconv.Itoa(page)})
	}

	result := providers.BookListResult{Page: page, Results: []providers.BookSummary{}}

	doc, err := r.fetch(ctx, r.domains.BaseURL, params...)
	if err != nil {
		r.log.Errorf("latest page %d: %v\n", page, err)
		return result
	}

	books, err := r.extractGalleries(doc)
	if err != nil {
		r.log.Errorf("latest page %d: %v\n", page, err)
		return result
	}

	result.Results = filterLanguages(books, r.opts.RequiredLanguages)
	return result
}

func (r *Repository) GetTrendingBooks(ctx context.Context) []providers.BookSummary {
	doc, err := r.fetch(ctx, r.domains.BaseURL+"/popular")
	if err != nil {
		r.log.Errorf("trending: %v\n", err)
		return []providers.BookSummary{}
	}

	books, err := r.extractGalleries(doc)
	if err != nil {
		r.log.Errorf("trending: %v\n", err)
		return []providers.BookSummary{}
	}

	return filterLanguages(books, r.opts.RequiredLanguages)
}

// GetRandomBook always returns the placeholder: the source has no random
// gallery endpoint.
func (r *Repository) GetRandomBook(context.Context) providers.Book {
	r.log.Debugf("random book: %v\n", providers.ErrUnsupported)

	book := providers.EmptyBook()
	book.Author = unknownAuthor
	return book
}
