package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/brogergvhs/galleryd/internal/chapters"
	"github.com/brogergvhs/galleryd/internal/downloader"
	"github.com/brogergvhs/galleryd/internal/ui"
	"github.com/brogergvhs/galleryd/internal/util"
)

var (
	// selection
	flagRange string
	flagList  string

	// runtime
	flagOutput       string
	flagImageWorkers int
	flagKeepFolders  bool
	flagDryRun       bool
	flagSkipBroken   bool
)

func init() {
	downloadCmd := &cobra.Command{
		Use:   "download <gallery-id>...",
		Short: "Download galleries as CBZ files. Uses the defaults from the selected config, overwritten by CLI flags",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runDownload,
	}

	// selection
	downloadCmd.Flags().StringVar(&flagRange, "range", "", "download a range of pages (e.g. 5-12)")
	downloadCmd.Flags().StringVar(&flagList, "list", "", "download specific pages (e.g. 1,3,5)")

	// runtime
	downloadCmd.Flags().StringVar(&flagOutput, "output", "", "output folder for CBZ files")
	downloadCmd.Flags().IntVar(&flagImageWorkers, "image-workers", 1, "parallel image downloads per gallery")
	downloadCmd.Flags().BoolVar(&flagKeepFolders, "keep-folders", false, "keep temporary folders")
	downloadCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "show what would be downloaded, don't download")
	downloadCmd.Flags().BoolVar(&flagSkipBroken, "skip-broken", false, "skip failed images instead of failing the whole gallery")

	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	opts := globalOptions()
	opts.Output = flagOutput
	opts.KeepFolders = flagKeepFolders
	opts.SkipBroken = flagSkipBroken
	if cmd.Flags().Changed("image-workers") {
		opts.ImageWorkers = flagImageWorkers
	}

	a, err := newApp(cmd, opts)
	if err != nil {
		return err
	}
	cfg := a.cfg

	if err := os.MkdirAll(cfg.Output, 0755); err != nil {
		return fmt.Errorf("cannot create output folder: %w", err)
	}

	if cfg.Debug {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Full config:")
		cfg.Print(cmd.ErrOrStderr())
	}

	ctx, stop := util.WithInterrupt(cmd.Context(), cfg.Output, cmd.ErrOrStderr())
	defer stop()

	type job struct {
		ch    chapters.Chapter
		pages []chapters.Page
	}

	var jobs []job
	for _, id := range args {
		book := a.repo.GetBook(ctx, id)
		ch, ok := chapters.New(book, a.repo.Domains().GalleryBaseURL+"/"+book.ID)
		if !ok {
			a.log.Errorf("gallery %s could not be loaded\n", id)
			continue
		}

		pages, err := chapters.SelectPages(ch.Pages, flagRange, flagList)
		if err != nil {
			return fmt.Errorf("gallery %s: %w", id, err)
		}
		if len(pages) == 0 {
			a.log.Errorf("gallery %s has no pages selected\n", id)
			continue
		}

		jobs = append(jobs, job{ch: ch, pages: pages})
	}

	if len(jobs) == 0 {
		return errors.New("nothing to download")
	}

	if flagDryRun {
		_, _ = fmt.Fprintf(a.out, "Dry-run: %d galleries selected.\n\n", len(jobs))
		for i, j := range jobs {
			_, _ = fmt.Fprintf(a.out, "%3d) %s  [%d pages]\n    %s\n", i+1, j.ch.Title, len(j.pages), j.ch.OutputCBZPath(cfg.Output))
		}
		return nil
	}

	pm := ui.NewProgressManager()
	stats := &ui.Stats{}
	dl := downloader.New(a.client, a.log, downloader.Options{
		Workers:    cfg.ImageWorkers,
		SkipBroken: cfg.SkipBroken,
		Timeout:    cfg.Timeout,
	})
	start := time.Now()

	// Galleries go one at a time so the source sees a single client.
	for _, j := range jobs {
		handle := pm.Register(j.ch.Title)

		tmpFolder := filepath.Join(cfg.Output, j.ch.FolderName())
		files, bytes, err := dl.DownloadPages(ctx, j.pages, tmpFolder, j.ch.URL, handle)
		if err != nil {
			handle.MarkFailed()
			stats.Failed.Add(1)
			a.log.Errorf("%s failed: %v\n", j.ch.ID, err)
			_ = os.RemoveAll(tmpFolder)
			continue
		}

		if err := util.CreateCBZ(files, j.ch.OutputCBZPath(cfg.Output), j.ch.ComicInfo(len(files))); err != nil {
			stats.Failed.Add(1)
			a.log.Errorf("CBZ for %s failed: %v\n", j.ch.ID, err)
			_ = os.RemoveAll(tmpFolder)
			continue
		}

		if !cfg.KeepFolders {
			util.CleanupFolder(tmpFolder)
		}

		stats.TotalBooks.Add(1)
		stats.TotalImages.Add(int64(len(files)))
		stats.TotalBytes.Add(bytes)
	}
	pm.Close()

	_, _ = fmt.Fprintln(a.out)
	stats.Summary(a.out, time.Since(start))

	if stats.Failed.Load() > 0 {
		return fmt.Errorf("%d of %d galleries failed", stats.Failed.Load(), len(jobs))
	}

	return nil
}
