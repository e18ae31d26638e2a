package ehentai

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/brogergvhs/galleryd/internal/ui"
)

type listingRow struct {
	href   string
	title  string
	cover  string
	langs  []string
	noLink bool

	// markerTitles are written verbatim as marker title attributes.
	markerTitles []string
}

func listingRowHTML(r listingRow) string {
	var markers strings.Builder
	for _, l := range r.langs {
		fmt.Fprintf(&markers, `<tr><td><div class="gt" title="language:%s">%s</div></td></tr>`, l, l)
	}
	for _, title := range r.markerTitles {
		fmt.Fprintf(&markers, `<tr><td><div class="gt" title="%s">%s</div></td></tr>`, title, title)
	}

	if r.noLink {
		return fmt.Sprintf(`<tr><td class="gl1e"><div><img src="%s"></div></td><td class="gl2e"><div class="glink">%s</div></td></tr>`, r.cover, r.title)
	}

	return fmt.Sprintf(`
<tr>
  <td class="gl1e"><div><a href="%[1]s"><img src="%[3]s" title="%[2]s"></a></div></td>
  <td class="gl2e"><div>
    <a href="%[1]s"><div class="gl3e"><div>Doujinshi</div></div></a>
    <div class="gl4e glname">
      <div class="glink">%[2]s</div>
      <div><table><tbody>%[4]s</tbody></table></div>
    </div>
  </div></td>
</tr>`, r.href, r.title, r.cover, markers.String())
}

// listingHTML renders an extended layout listing. lastPage 0 omits the
// pagination section.
func listingHTML(rows []listingRow, lastPage int) string {
	var body strings.Builder
	for _, r := range rows {
		body.WriteString(listingRowHTML(r))
	}

	pagination := ""
	if lastPage > 0 {
		pagination = fmt.Sprintf(`<section class="pagination"><a class="first" href="?page=1">First</a><a class="last" href="?f_search=x&page=%d">Last</a></section>`, lastPage)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html><body>
%s
<table class="itg glte"><tbody>%s</tbody></table>
</body></html>`, pagination, body.String())
}

type galleryFixture struct {
	title     string
	cover     string
	pageCount string
	tags      []string
	links     []string
}

func galleryHTML(g galleryFixture) string {
	var tags strings.Builder
	for _, t := range g.tags {
		fmt.Fprintf(&tags, `<div id="td_%s" class="gt" style="opacity:1.0"><a href="#">%s</a></div>`, t, t)
	}

	var thumbs strings.Builder
	for _, l := range g.links {
		fmt.Fprintf(&thumbs, `<a href="%s"><div title="page"></div></a>`, l)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html><body>
<div id="gd1"><div style="width:250px; height:354px; background:transparent url(%s) 0 0 no-repeat"></div></div>
<div id="gd2"><h1 id="gn">%s</h1></div>
<div id="gdd"><table>
  <tr><td class="gdt1">Posted:</td><td class="gdt2">2024-01-01 10:00</td></tr>
  <tr><td class="gdt1">Language:</td><td class="gdt2">English</td></tr>
  <tr><td class="gdt1">Length:</td><td class="gdt2">%s</td></tr>
</table></div>
<div id="taglist"><table><tbody><tr><td>%s</td></tr></tbody></table></div>
<div id="gdt">%s</div>
</body></html>`, g.cover, g.title, g.pageCount, tags.String(), thumbs.String())
}

func imagePageHTML(src string) string {
	if src == "" {
		return `<!DOCTYPE html><html><body><div id="i3"></div></body></html>`
	}

	return fmt.Sprintf(`<!DOCTYPE html><html><body><div id="i3"><a href="#"><img id="img" src="%s"></a></div></body></html>`, src)
}

// fakeSite records every request it serves.
type fakeSite struct {
	*httptest.Server
	mux *http.ServeMux

	mu       sync.Mutex
	requests []*http.Request
}

func newFakeSite(t *testing.T) *fakeSite {
	t.Helper()

	site := &fakeSite{mux: http.NewServeMux()}
	site.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		site.mu.Lock()
		site.requests = append(site.requests, r.Clone(r.Context()))
		site.mu.Unlock()
		site.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(site.Close)

	return site
}

func (s *fakeSite) html(pattern string, body func(r *http.Request) string) {
	s.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(body(r)))
	})
}

// count returns how many requests hit path with the query param key set.
func (s *fakeSite) count(path, key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, r := range s.requests {
		if r.URL.Path == path && (key == "" || r.URL.Query().Has(key)) {
			n++
		}
	}

	return n
}

func (s *fakeSite) lastRequest() *http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.requests) == 0 {
		return nil
	}

	return s.requests[len(s.requests)-1]
}

// recordingLogger keeps warnings for assertions.
type recordingLogger struct {
	mu    sync.Mutex
	warns []string
}

func (l *recordingLogger) Debugf(string, ...any) {}
func (l *recordingLogger) Infof(string, ...any)  {}
func (l *recordingLogger) Errorf(string, ...any) {}

func (l *recordingLogger) Warnf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) warnings() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.warns...)
}

func newTestRepository(site *fakeSite) *Repository {
	return New(&http.Client{Timeout: 5 * time.Second}, ui.Discard(), Options{BaseURL: site.URL})
}
