package ehentai

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/brogergvhs/galleryd/internal/dom"
	"github.com/brogergvhs/galleryd/internal/providers"
)

type param struct {
	key   string
	value string
}

// urlWithParams appends params in order, skipping empty values.
func urlWithParams(target string, params ...param) string {
	pairs := make([]string, 0, len(params))
	for _, p := range params {
		if p.key == "" || p.value == "" {
			continue
		}
		pairs = append(pairs, url.QueryEscape(p.key)+"="+url.QueryEscape(p.value))
	}

	if len(pairs) == 0 {
		return target
	}

	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
	}

	return target + sep + strings.Join(pairs, "&")
}

func (r *Repository) cookie() string {
	extra := strings.TrimSpace(r.opts.Cookie)
	if extra == "" {
		return displayCookie
	}

	return displayCookie + "; " + extra
}

// fetch GETs a source page and parses it. Any status other than 200 is a
// *providers.TransportError carrying the body.
func (r *Repository) fetch(ctx context.Context, target string, params ...param) (dom.Node, error) {
	endpoint := urlWithParams(target, params...)
	r.log.Debugf("GET %s\n", endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", r.opts.UserAgent)
	req.Header.Set("Cookie", r.cookie())
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", endpoint, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", endpoint, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &providers.TransportError{
			URL:    endpoint,
			Status: resp.StatusCode,
			Body:   string(body),
		}
	}

	doc, err := dom.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", endpoint, err)
	}

	return doc, nil
}
