package cmd

import (
	"io"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/brogergvhs/galleryd/internal/config"
	"github.com/brogergvhs/galleryd/internal/providers"
	"github.com/brogergvhs/galleryd/internal/providers/ehentai"
	"github.com/brogergvhs/galleryd/internal/ui"
	"github.com/brogergvhs/galleryd/internal/util"
)

// app is what every source command runs against.
type app struct {
	cfg    *config.Config
	log    *ui.Logger
	client *http.Client
	repo   providers.Repository
	out    io.Writer
}

func globalOptions() config.Options {
	return config.Options{
		IgnoreConfig: flagIgnoreConfig,
		Debug:        flagDebug,
		BaseURL:      flagBaseURL,
		UserAgent:    flagUserAgent,
		Cookie:       flagCookie,
		CookieFile:   flagCookieFile,
		Timeout:      flagTimeout,
		RequestDelay: flagRequestDelay,
		CFBypass:     flagCFBypass,
		Languages:    flagLanguages,
		Format:       flagFormat,
	}
}

func newApp(cmd *cobra.Command, opts config.Options) (*app, error) {
	cfg, used, err := config.LoadMerged(opts)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := ui.NewLogger(cfg.Debug)
	log.Out = cmd.ErrOrStderr()
	log.Debugf("config: %s\n", used)

	client, err := util.NewHTTPClient(util.HTTPClientOptions{
		Timeout:     cfg.Timeout,
		UserAgent:   cfg.UserAgent,
		Cookie:      cfg.Cookie,
		CookieFile:  cfg.CookieFile,
		CFBypass:    cfg.CFBypass,
		DebugLogger: log,
	})
	if err != nil {
		return nil, err
	}

	repo := ehentai.New(client, log, ehentai.Options{
		BaseURL:           cfg.BaseURL,
		UserAgent:         cfg.UserAgent,
		Cookie:            util.JoinCookies(cfg.Cookie, cfg.CookieFile),
		RequiredLanguages: cfg.RequiredLanguages,
		RequestDelay:      cfg.RequestDelay,
	})

	return &app{
		cfg:    cfg,
		log:    log,
		client: client,
		repo:   repo,
		out:    cmd.OutOrStdout(),
	}, nil
}

func (a *app) render(v any) error {
	return render(a.out, a.cfg.Format, v)
}
