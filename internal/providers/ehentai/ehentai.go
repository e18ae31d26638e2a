// Package ehentai scrapes the e-hentai gallery site into the providers
// catalog model. The site has no API: listings and galleries are read from
// rendered HTML, and every request is issued through a sequential chain so
// that a single operation never hits the site with parallel requests.
package ehentai

import (
	"net/http"
	"strings"
	"time"

	"github.com/brogergvhs/galleryd/internal/chain"
	"github.com/brogergvhs/galleryd/internal/providers"
	"github.com/brogergvhs/galleryd/internal/ui"
)

const (
	DefaultBaseURL   = "https://e-hentai.org"
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:141.0) Gecko/20100101 Firefox/141.0"

	// sl=dm_2 switches listings to the extended layout, which is the only
	// one that puts cover images and language tags into the markup.
	displayCookie = "sl=dm_2"
)

type Options struct {
	BaseURL   string
	UserAgent string
	// Cookie is sent after the display cookie.
	Cookie string
	// RequiredLanguages filters listing results; empty means all languages.
	RequiredLanguages []providers.Language
	// RequestDelay is an extra pause between consecutive chained requests.
	RequestDelay time.Duration
}

type Repository struct {
	client  *http.Client
	log     providers.Logger
	opts    Options
	domains providers.Domains
}

var _ providers.Repository = (*Repository)(nil)

func New(client *http.Client, log providers.Logger, opts Options) *Repository {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if log == nil {
		log = ui.Discard()
	}

	opts.BaseURL = strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if strings.TrimSpace(opts.UserAgent) == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if len(opts.RequiredLanguages) == 0 {
		opts.RequiredLanguages = providers.Languages()
	}

	return &Repository{
		client: client,
		log:    log,
		opts:   opts,
		domains: providers.Domains{
			BaseURL:        opts.BaseURL,
			GalleryBaseURL: opts.BaseURL + "/g",
			ImageBaseURL:   opts.BaseURL + "/s",
		},
	}
}

func (r *Repository) Domains() providers.Domains {
	return r.domains
}

func (r *Repository) chainOptions() []chain.Option {
	return []chain.Option{chain.WithDelay(r.opts.RequestDelay)}
}
