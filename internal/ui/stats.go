package ui

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"
)

type Stats struct {
	TotalBooks  atomic.Int64
	TotalImages atomic.Int64
	TotalBytes  atomic.Int64
	Failed      atomic.Int64
}

func (s *Stats) Summary(w io.Writer, elapsed time.Duration) {
	_, _ = fmt.Fprintln(w, "Download Summary:")
	_, _ = fmt.Fprintf(w, "Books:  %d\n", s.TotalBooks.Load())
	_, _ = fmt.Fprintf(w, "Images: %d\n", s.TotalImages.Load())
	if failed := s.Failed.Load(); failed > 0 {
		_, _ = fmt.Fprintf(w, "Failed: %d\n", failed)
	}
	_, _ = fmt.Fprintf(w, "Data:   %s\n", Human(s.TotalBytes.Load()))
	_, _ = fmt.Fprintf(w, "Time:   %s\n", elapsed.Round(time.Second))
}

func Human(n int64) string {
	switch {
	case n >= 1<<30:
		return fmt.Sprintf("%.2f GB", float64(n)/(1<<30))
	case n >= 1<<20:
		return fmt.Sprintf("%.2f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.2f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
