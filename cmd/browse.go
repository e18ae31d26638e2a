package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/brogergvhs/galleryd/internal/providers"
)

var (
	flagPage int
	flagSize int
	flagSort string
)

var bookCmd = &cobra.Command{
	Use:     "book <gallery-id>",
	Short:   "Show a gallery with its tags and pages",
	Example: "  galleryd book 12345/abcdef0123",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, globalOptions())
		if err != nil {
			return err
		}

		return a.render(a.repo.GetBook(cmd.Context(), args[0]))
	},
}

var chapterCmd = &cobra.Command{
	Use:   "chapter <gallery-id>",
	Short: "List the page images of a gallery",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, globalOptions())
		if err != nil {
			return err
		}

		return a.render(a.repo.GetChapter(cmd.Context(), args[0]))
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search galleries",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, globalOptions())
		if err != nil {
			return err
		}

		res := a.repo.Search(cmd.Context(), strings.Join(args, " "), providers.SearchOptions{
			Page: flagPage,
			Size: flagSize,
			Sort: providers.Sort(flagSort),
		})
		return a.render(res)
	},
}

var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "List the newest galleries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd, globalOptions())
		if err != nil {
			return err
		}

		return a.render(a.repo.GetLatestBooks(cmd.Context(), flagPage))
	},
}

var trendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "List currently popular galleries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd, globalOptions())
		if err != nil {
			return err
		}

		return a.render(a.repo.GetTrendingBooks(cmd.Context()))
	},
}

var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "Show a random gallery (not offered by the source, always empty)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd, globalOptions())
		if err != nil {
			return err
		}

		return a.render(a.repo.GetRandomBook(cmd.Context()))
	},
}

func init() {
	searchCmd.Flags().IntVar(&flagPage, "page", 1, "result page")
	searchCmd.Flags().IntVar(&flagSize, "size", 20, "results per page")
	searchCmd.Flags().StringVar(&flagSort, "sort", string(providers.SortLatest), "result order (source order is always used)")

	latestCmd.Flags().IntVar(&flagPage, "page", 1, "listing page")

	rootCmd.AddCommand(bookCmd, chapterCmd, searchCmd, latestCmd, trendingCmd, randomCmd)
}
