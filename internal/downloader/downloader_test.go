package downloader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/brogergvhs/galleryd/internal/chapters"
	"github.com/brogergvhs/galleryd/internal/providers"
)

type recordingProgress struct {
	mu    sync.Mutex
	total int
	done  int
	bytes int64
	final bool
}

func (p *recordingProgress) SetTotal(total int) { p.mu.Lock(); p.total = total; p.mu.Unlock() }
func (p *recordingProgress) MarkDone()          { p.mu.Lock(); p.final = true; p.mu.Unlock() }
func (p *recordingProgress) Update(done int, bytes int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done, p.bytes = done, bytes
}

func imageServer(t *testing.T, referers *[]string) *httptest.Server {
	t.Helper()

	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		*referers = append(*referers, r.Header.Get("Referer"))
		mu.Unlock()

		switch r.URL.Path {
		case "/broken.jpg":
			http.Error(w, "gone", http.StatusNotFound)
		case "/page.html":
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html></html>"))
		default:
			w.Header().Set("Content-Type", "image/jpeg")
			_, _ = w.Write([]byte("img:" + r.URL.Path))
		}
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestDownloadPages(t *testing.T) {
	Convey("Given an image host", t, func() {
		var referers []string
		srv := imageServer(t, &referers)
		folder := filepath.Join(t.TempDir(), "book_tmp")

		pages := func(paths ...string) []chapters.Page {
			imgs := make([]providers.Image, len(paths))
			for i, p := range paths {
				if p != "" {
					imgs[i] = providers.Image{URI: srv.URL + p}
				}
			}
			out, _ := chapters.SelectPages(imgs, "", "")
			return out
		}

		Convey("All pages land in numbered files", func() {
			ph := &recordingProgress{}
			dl := New(srv.Client(), nil, Options{Workers: 2, Backoff: time.Millisecond})

			files, bytes, err := dl.DownloadPages(context.Background(), pages("/a.jpg", "/b.webp", "/c"), folder, "https://gallery.example/g/1/a/", ph)
			So(err, ShouldBeNil)

			sort.Strings(files)
			So(files, ShouldResemble, []string{
				filepath.Join(folder, "page_001.jpg"),
				filepath.Join(folder, "page_002.webp"),
				filepath.Join(folder, "page_003.jpg"),
			})

			body, err := os.ReadFile(filepath.Join(folder, "page_002.webp"))
			So(err, ShouldBeNil)
			So(string(body), ShouldEqual, "img:/b.webp")
			So(bytes, ShouldEqual, int64(len("img:/a.jpg")+len("img:/b.webp")+len("img:/c")))

			So(ph.total, ShouldEqual, 3)
			So(ph.done, ShouldEqual, 3)
			So(ph.final, ShouldBeTrue)
			So(referers, ShouldContain, "https://gallery.example/g/1/a/")
		})

		Convey("Broken pages fail the call unless skipped", func() {
			input := pages("/a.jpg", "/broken.jpg", "", "/page.html")

			dl := New(srv.Client(), nil, Options{Attempts: 2, Backoff: time.Millisecond})
			files, _, err := dl.DownloadPages(context.Background(), input, folder, "", nil)
			So(err, ShouldNotBeNil)
			So(errors.Is(err, ErrNoImage), ShouldBeTrue)
			So(len(files), ShouldEqual, 1)

			dl = New(srv.Client(), nil, Options{Attempts: 1, SkipBroken: true})
			files, _, err = dl.DownloadPages(context.Background(), input, folder, "", nil)
			So(err, ShouldBeNil)
			So(len(files), ShouldEqual, 1)
		})

		Convey("A cancelled context stops feeding pages", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			dl := New(srv.Client(), nil, Options{})
			_, _, err := dl.DownloadPages(ctx, pages("/a.jpg", "/b.jpg"), folder, "", nil)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}

func TestPageFileName(t *testing.T) {
	Convey("The extension follows the URL path and ignores the query", t, func() {
		So(PageFileName(chapters.Page{Number: 7, Image: providers.Image{URI: "https://x.example/a/b.PNG?x=1"}}), ShouldEqual, "page_007.png")
		So(PageFileName(chapters.Page{Number: 12, Image: providers.Image{URI: "https://x.example/a/b"}}), ShouldEqual, "page_012.jpg")
	})
}
