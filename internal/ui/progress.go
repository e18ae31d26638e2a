package ui

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

const maxLabelWidth = 28

type MPBProgressManager struct {
	p *mpb.Progress
}

// NewProgressManager draws bars on stderr so stdout stays parseable.
func NewProgressManager() *MPBProgressManager {
	return newProgressManager(os.Stderr)
}

func newProgressManager(out io.Writer) *MPBProgressManager {
	p := mpb.New(
		mpb.WithWidth(52),
		mpb.WithOutput(out),
		mpb.WithRefreshRate(120*time.Millisecond),
	)
	return &MPBProgressManager{p: p}
}

func (pm *MPBProgressManager) Close() {
	pm.p.Wait()
}

// Register adds a bar for one book. Long titles are shortened.
func (pm *MPBProgressManager) Register(label string) *ProgressHandle {
	h := &ProgressHandle{
		pm:    pm,
		label: shorten(label, maxLabelWidth),
	}
	h.initBar()
	return h
}

func shorten(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}

	return string(r[:width-1]) + "…"
}

// ProgressHandle tracks pages and bytes for one book download.
type ProgressHandle struct {
	pm    *MPBProgressManager
	label string
	bar   *mpb.Bar

	total int64
	bytes atomic.Int64

	start   time.Time
	elapsed atomic.Int64

	final  atomic.Bool
	failed atomic.Bool
}

func (h *ProgressHandle) initBar() {
	h.start = time.Now()

	h.bar = h.pm.p.New(
		0,
		mpb.BarStyle().Rbound("]"),

		mpb.PrependDecorators(
			decor.Name(h.label+"  ", decor.WCSyncSpaceR),
		),

		mpb.AppendDecorators(
			decor.Percentage(decor.WCSyncWidth),
			decor.CountersNoUnit(" | %d/%d pages", decor.WCSyncWidth),
			decor.Any(func(_ decor.Statistics) string {
				return " | " + Human(h.bytes.Load())
			}),
			decor.Any(func(_ decor.Statistics) string {
				if h.failed.Load() {
					return " | failed"
				}
				if h.final.Load() {
					return fmt.Sprintf(" | %ds", h.elapsed.Load())
				}
				return fmt.Sprintf(" | %ds", int(time.Since(h.start).Seconds()))
			}),
		),
	)
}

func (h *ProgressHandle) SetTotal(total int) {
	if h.final.Load() {
		return
	}

	atomic.StoreInt64(&h.total, int64(total))
	h.bar.SetTotal(int64(total), false)
}

func (h *ProgressHandle) Update(done int, bytes int64) {
	if h.final.Load() {
		return
	}

	h.bytes.Store(bytes)
	h.bar.SetCurrent(int64(done))
}

func (h *ProgressHandle) MarkDone() {
	if h.final.Swap(true) {
		return
	}

	h.elapsed.Store(int64(time.Since(h.start).Seconds()))
	total := atomic.LoadInt64(&h.total)
	h.bar.SetCurrent(total)
	h.bar.SetTotal(total, true)
}

// MarkFailed stops the bar where it is.
func (h *ProgressHandle) MarkFailed() {
	if h.final.Swap(true) {
		return
	}

	h.failed.Store(true)
	h.elapsed.Store(int64(time.Since(h.start).Seconds()))
	h.bar.Abort(false)
}
