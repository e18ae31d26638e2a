package downloader

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/brogergvhs/galleryd/internal/chapters"
)

var ErrNoImage = errors.New("page has no image")

// Progress receives page and byte counts as a download advances.
type Progress interface {
	SetTotal(total int)
	Update(done int, bytes int64)
	MarkDone()
}

type Logger interface {
	Debugf(format string, args ...any)
}

type Options struct {
	Workers    int
	SkipBroken bool
	Attempts   int
	Backoff    time.Duration
	Timeout    time.Duration
}

type Downloader struct {
	client *http.Client
	log    Logger
	opts   Options
}

func New(c *http.Client, log Logger, opts Options) *Downloader {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.Attempts < 1 {
		opts.Attempts = 3
	}
	if opts.Backoff <= 0 {
		opts.Backoff = time.Second
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	return &Downloader{client: c, log: log, opts: opts}
}

type chapterState struct {
	mu     sync.Mutex
	done   int
	bytes  int64
	ph     Progress
	errors []error
}

func (cs *chapterState) finish(err error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if err != nil {
		cs.errors = append(cs.errors, err)
	}
	cs.done++
	cs.report()
}

func (cs *chapterState) addBytes(n int64) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.bytes += n
	cs.report()
}

func (cs *chapterState) report() {
	if cs.ph != nil {
		cs.ph.Update(cs.done, cs.bytes)
	}
}

// PageFileName is "page_<nnn><ext>" with the extension taken from the image
// URL, jpg when it has none.
func PageFileName(p chapters.Page) string {
	ext := ".jpg"
	if u, err := url.Parse(p.URI); err == nil {
		if e := strings.ToLower(path.Ext(u.Path)); e != "" {
			ext = e
		}
	}

	return fmt.Sprintf("page_%03d%s", p.Number, ext)
}

// DownloadPages fetches pages into folder with up to Workers requests in
// flight. It returns the written files and byte count. Failed pages fail the
// whole call unless SkipBroken is set.
func (d *Downloader) DownloadPages(
	ctx context.Context,
	pages []chapters.Page,
	folder string,
	referer string,
	ph Progress,
) ([]string, int64, error) {
	if err := os.MkdirAll(folder, 0755); err != nil {
		return nil, 0, err
	}

	total := len(pages)
	workers := min(d.opts.Workers, max(total, 1))

	cs := &chapterState{ph: ph}
	if ph != nil {
		ph.SetTotal(total)
		ph.Update(0, 0)
	}

	var filesMu sync.Mutex
	files := make([]string, 0, total)

	jobs := make(chan chapters.Page)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for p := range jobs {
			if p.URI == "" {
				cs.finish(fmt.Errorf("page %d: %w", p.Number, ErrNoImage))
				continue
			}

			out := filepath.Join(folder, PageFileName(p))
			var last int64
			progress := func(done int64) {
				if delta := done - last; delta > 0 {
					last = done
					cs.addBytes(delta)
				}
			}

			if err := d.downloadWithRetry(ctx, p.URI, out, referer, progress); err != nil {
				cs.finish(fmt.Errorf("page %d: %w", p.Number, err))
				continue
			}

			filesMu.Lock()
			files = append(files, out)
			filesMu.Unlock()
			cs.finish(nil)
		}
	}

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go worker()
	}

	var cancelled error
feed:
	for _, p := range pages {
		select {
		case <-ctx.Done():
			cancelled = ctx.Err()
			break feed
		case jobs <- p:
		}
	}

	close(jobs)
	wg.Wait()

	if cancelled != nil {
		return files, cs.bytes, cancelled
	}

	if ph != nil {
		ph.MarkDone()
	}

	if len(cs.errors) > 0 {
		for _, err := range cs.errors {
			d.debugf("%v\n", err)
		}
		if !d.opts.SkipBroken {
			return files, cs.bytes, fmt.Errorf("failed %d/%d pages (use --skip-broken to continue): %w",
				len(cs.errors), total, errors.Join(cs.errors...))
		}
	}

	return files, cs.bytes, nil
}

func (d *Downloader) debugf(format string, args ...any) {
	if d.log != nil {
		d.log.Debugf(format, args...)
	}
}

func (d *Downloader) downloadWithRetry(
	ctx context.Context,
	u string,
	output string,
	referer string,
	progress func(done int64),
) error {
	var err error
	for attempt := 1; attempt <= d.opts.Attempts; attempt++ {
		err = d.download(ctx, u, output, referer, progress)
		if err == nil {
			return nil
		}
		d.debugf("download %s attempt %d/%d: %v\n", u, attempt, d.opts.Attempts, err)

		if attempt == d.opts.Attempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * d.opts.Backoff):
		}
	}

	return err
}

func (d *Downloader) download(
	ctx context.Context,
	u, output, referer string,
	progress func(done int64),
) (err error) {
	ctx, cancel := context.WithTimeout(ctx, d.opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	if referer != "" {
		req.Header.Set("Referer", referer)
	}
	req.Header.Set("Accept", "image/avif,image/webp,image/apng,image/*,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		if mt, _, _ := mime.ParseMediaType(ct); !strings.HasPrefix(mt, "image/") {
			return fmt.Errorf("unexpected MIME: %s", ct)
		}
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	written, err := copyWithProgress(f, resp.Body, progress)
	if err != nil {
		return err
	}

	if progress != nil && resp.ContentLength > 0 && written < resp.ContentLength {
		progress(resp.ContentLength)
	}

	return nil
}
