package providers

import (
	"context"
	"time"
)

type Language string

const (
	English  Language = "english"
	Japanese Language = "japanese"
	Mandarin Language = "mandarin"
)

// Languages lists every supported language.
func Languages() []Language {
	return []Language{English, Japanese, Mandarin}
}

type Sort string

const (
	SortLatest     Sort = "latest"
	SortPopular    Sort = "popular"
	SortPopularDay Sort = "popular-today"
	SortPopularWk  Sort = "popular-week"
)

// Image.URI is empty when no renderable image could be derived.
type Image struct {
	URI string `json:"uri" yaml:"uri"`
}

// Tag IDs equal their names; the source exposes no stable tag id.
type Tag struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

type BookSummary struct {
	ID                 string     `json:"id" yaml:"id"`
	Cover              Image      `json:"cover" yaml:"cover"`
	Title              string     `json:"title" yaml:"title"`
	AvailableLanguages []Language `json:"availableLanguages" yaml:"availableLanguages"`
	SavedAt            int64      `json:"savedAt" yaml:"savedAt"`
}

type Chapter struct {
	ID            string   `json:"id" yaml:"id"`
	Title         string   `json:"title" yaml:"title"`
	Language      Language `json:"language" yaml:"language"`
	ChapterNumber int      `json:"chapterNumber" yaml:"chapterNumber"`
	Pages         []Image  `json:"pages" yaml:"pages"`
	SavedAt       int64    `json:"savedAt" yaml:"savedAt"`
}

type Book struct {
	ID                 string     `json:"id" yaml:"id"`
	Cover              Image      `json:"cover" yaml:"cover"`
	Title              string     `json:"title" yaml:"title"`
	Author             string     `json:"author" yaml:"author"`
	Tags               []Tag      `json:"tags" yaml:"tags"`
	AvailableLanguages []Language `json:"availableLanguages" yaml:"availableLanguages"`
	Chapters           []Chapter  `json:"chapters" yaml:"chapters"`
	SavedAt            int64      `json:"savedAt" yaml:"savedAt"`
}

// SearchResult.TotalResults is an estimate: the source only reports how many
// pages of results exist.
type SearchResult struct {
	Query        string        `json:"query" yaml:"query"`
	TotalPages   int           `json:"totalPages" yaml:"totalPages"`
	Page         int           `json:"page" yaml:"page"`
	TotalResults int           `json:"totalResults" yaml:"totalResults"`
	Results      []BookSummary `json:"results" yaml:"results"`
}

type BookListResult struct {
	Page    int           `json:"page" yaml:"page"`
	Results []BookSummary `json:"results" yaml:"results"`
}

type SearchOptions struct {
	Page int
	Size int
	Sort Sort
}

type Domains struct {
	BaseURL        string `json:"baseUrl" yaml:"base_url"`
	GalleryBaseURL string `json:"galleryBaseUrl" yaml:"gallery_base_url"`
	ImageBaseURL   string `json:"imgBaseUrl" yaml:"image_base_url"`
}

// Repository is the upward boundary of a source. None of its operations
// fail: on error they log and return the documented empty value.
type Repository interface {
	Domains() Domains
	GetBook(ctx context.Context, id string) Book
	GetChapter(ctx context.Context, id string) Chapter
	Search(ctx context.Context, query string, opts SearchOptions) SearchResult
	GetLatestBooks(ctx context.Context, page int) BookListResult
	GetTrendingBooks(ctx context.Context) []BookSummary
	GetRandomBook(ctx context.Context) Book
}

// Logger is what providers log through.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Epoch returns t as whole seconds since the Unix epoch.
func Epoch(t time.Time) int64 {
	return t.Unix()
}

// EmptyBook is the placeholder returned when a book cannot be assembled.
func EmptyBook() Book {
	return Book{
		Tags:               []Tag{},
		AvailableLanguages: []Language{},
		Chapters:           []Chapter{},
		SavedAt:            Epoch(time.Now()),
	}
}

// EmptyChapter is the placeholder returned when a chapter cannot be loaded.
func EmptyChapter(id string) Chapter {
	return Chapter{
		ID:            id,
		Language:      English,
		ChapterNumber: 1,
		Pages:         []Image{},
		SavedAt:       Epoch(time.Now()),
	}
}
