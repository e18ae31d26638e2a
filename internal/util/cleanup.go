package util

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
)

const tmpSuffix = "_tmp"

// WithInterrupt returns a context cancelled on SIGINT or SIGTERM. After the
// signal, unfinished "_tmp" folders in outputDir are removed and the process
// exits with status 130. Call stop once the work is done.
func WithInterrupt(parent context.Context, outputDir string, w io.Writer) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-ctx.Done():
			return
		case <-sig:
		}

		cancel()
		_, _ = fmt.Fprintln(w, "\nInterrupt received. Cleaning up...")
		CleanupUnfinishedTempFolders(outputDir, w)
		RemoveIfEmpty(outputDir, w)
		_, _ = fmt.Fprintln(w, "Exiting due to interrupt.")

		os.Exit(130)
	}()

	stop := func() {
		signal.Stop(sig)
		cancel()
	}

	return ctx, stop
}

func CleanupUnfinishedTempFolders(outputDir string, w io.Writer) {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return
	}

	for _, e := range entries {
		if !e.IsDir() || !strings.HasSuffix(e.Name(), tmpSuffix) {
			continue
		}

		full := filepath.Join(outputDir, e.Name())
		if err := os.RemoveAll(full); err != nil {
			_, _ = fmt.Fprintf(w, "Error cleaning up %s: %v\n", full, err)
		} else {
			_, _ = fmt.Fprintf(w, "Removed %s\n", full)
		}
	}
}

func RemoveIfEmpty(dir string, w io.Writer) {
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) > 0 {
		return
	}

	if err := os.Remove(dir); err == nil {
		_, _ = fmt.Fprintf(w, "Removed empty output folder: %s\n", dir)
	}
}

func CleanupFolder(folder string) {
	_ = os.RemoveAll(folder)
}
