package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	flagIgnoreConfig bool
	flagDebug        bool
	flagFormat       string

	// source
	flagBaseURL      string
	flagUserAgent    string
	flagCookie       string
	flagCookieFile   string
	flagTimeout      time.Duration
	flagRequestDelay time.Duration
	flagCFBypass     bool
	flagLanguages    []string
)

var rootCmd = &cobra.Command{
	Use:           "galleryd",
	Short:         "Browse, search and download galleries as CBZ",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&flagDebug, "debug", false, "enable debug logging")
	pf.BoolVar(&flagIgnoreConfig, "ignore-config", false, "ignore config and use only CLI flags")
	pf.StringVar(&flagFormat, "format", "", "output format: table, json or yaml")

	pf.StringVar(&flagBaseURL, "base-url", "", "source base URL")
	pf.StringVar(&flagUserAgent, "user-agent", "", "override User-Agent")
	pf.StringVar(&flagCookie, "cookie", "", "extra cookies, e.g. \"key=value; other=123\"")
	pf.StringVar(&flagCookieFile, "cookie-file", "", "path to a text file with cookies (one header line)")
	pf.DurationVar(&flagTimeout, "timeout", 0, "per request timeout (e.g. 30s)")
	pf.DurationVar(&flagRequestDelay, "delay", 0, "pause between consecutive source requests (e.g. 500ms)")
	pf.BoolVar(&flagCFBypass, "cf-bypass", false, "use a Cloudflare bypass transport")
	pf.StringSliceVar(&flagLanguages, "lang", nil, "only list galleries in these languages (english, japanese, mandarin)")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
