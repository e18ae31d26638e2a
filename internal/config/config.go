package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/brogergvhs/galleryd/internal/providers"
)

type Config struct {
	BaseURL           string               `yaml:"base_url"`
	UserAgent         string               `yaml:"user_agent"`
	Cookie            string               `yaml:"cookie"`
	CookieFile        string               `yaml:"cookie_file"`
	Timeout           time.Duration        `yaml:"timeout"`
	RequestDelay      time.Duration        `yaml:"request_delay"`
	CFBypass          bool                 `yaml:"cf_bypass"`
	Debug             bool                 `yaml:"debug"`
	RequiredLanguages []providers.Language `yaml:"required_languages"`
	Format            string               `yaml:"format"`

	Output       string `yaml:"output"`
	ImageWorkers int    `yaml:"image_workers"`
	KeepFolders  bool   `yaml:"keep_folders"`
	SkipBroken   bool   `yaml:"skip_broken"`
}

// Options carries CLI flag values. Zero values leave the loaded config alone.
type Options struct {
	IgnoreConfig bool
	Debug        bool
	BaseURL      string
	UserAgent    string
	Cookie       string
	CookieFile   string
	Timeout      time.Duration
	RequestDelay time.Duration
	CFBypass     bool
	Languages    []string
	Format       string
	Output       string
	ImageWorkers int
	KeepFolders  bool
	SkipBroken   bool
}

const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

func DefaultConfig() *Config {
	return &Config{
		BaseURL:           "https://e-hentai.org",
		Timeout:           30 * time.Second,
		RequestDelay:      0,
		RequiredLanguages: providers.Languages(),
		Format:            FormatTable,
		Output:            ".",
		ImageWorkers:      1,
	}
}

func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func loadYAML(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := DefaultConfig()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}

	return c, nil
}

// LoadMerged resolves the effective config: defaults, then the active
// profile, then GALLERYD_* environment variables, then CLI flags. The second
// return value describes where the config came from.
func LoadMerged(opts Options) (*Config, string, error) {
	cfg, source, err := loadBase(opts.IgnoreConfig)
	if err != nil {
		return nil, "", err
	}

	if err := applyEnv(cfg); err != nil {
		return nil, "", err
	}
	if err := mergeConfig(cfg, opts); err != nil {
		return nil, "", err
	}
	normalizeDefaults(cfg)

	return cfg, source, nil
}

func loadBase(ignore bool) (*Config, string, error) {
	if ignore {
		return DefaultConfig(), "(ignored config)", nil
	}

	activePath, err := ActiveConfigPath()
	if errors.Is(err, ErrNoConfig) || activePath == "" {
		return DefaultConfig(), "(default config in memory, run `galleryd config init` to create one)", nil
	}
	if err != nil {
		return nil, "", err
	}

	cfg, err := loadYAML(activePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config %s: %w", activePath, err)
	}

	return cfg, activePath, nil
}

func mergeConfig(c *Config, o Options) error {
	if o.Debug {
		c.Debug = true
	}
	if o.BaseURL != "" {
		c.BaseURL = o.BaseURL
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
	if o.Cookie != "" {
		c.Cookie = o.Cookie
	}
	if o.CookieFile != "" {
		c.CookieFile = o.CookieFile
	}
	if o.Timeout > 0 {
		c.Timeout = o.Timeout
	}
	if o.RequestDelay > 0 {
		c.RequestDelay = o.RequestDelay
	}
	if o.CFBypass {
		c.CFBypass = true
	}
	if len(o.Languages) > 0 {
		langs, err := ParseLanguages(o.Languages)
		if err != nil {
			return err
		}
		c.RequiredLanguages = langs
	}
	if o.Format != "" {
		c.Format = o.Format
	}
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.ImageWorkers != 0 {
		c.ImageWorkers = o.ImageWorkers
	}
	if o.KeepFolders {
		c.KeepFolders = true
	}
	if o.SkipBroken {
		c.SkipBroken = true
	}

	return nil
}

func normalizeDefaults(c *Config) {
	if c.BaseURL == "" {
		c.BaseURL = DefaultConfig().BaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.RequestDelay < 0 {
		c.RequestDelay = 0
	}
	if len(c.RequiredLanguages) == 0 {
		c.RequiredLanguages = providers.Languages()
	}
	if c.Format == "" {
		c.Format = FormatTable
	}
	if c.Output == "" {
		c.Output = "."
	}
	if c.ImageWorkers < 1 {
		c.ImageWorkers = 1
	}
}

// ParseLanguages maps names such as "english" or "chinese" onto catalog
// languages, accepting comma separated lists.
func ParseLanguages(raw []string) ([]providers.Language, error) {
	var out []providers.Language
	for _, item := range raw {
		for _, name := range strings.Split(item, ",") {
			name = strings.ToLower(strings.TrimSpace(name))
			if name == "" {
				continue
			}

			switch name {
			case "english", "en":
				out = append(out, providers.English)
			case "japanese", "ja", "jp":
				out = append(out, providers.Japanese)
			case "mandarin", "chinese", "zh":
				out = append(out, providers.Mandarin)
			default:
				return nil, fmt.Errorf("unknown language %q", name)
			}
		}
	}

	return out, nil
}

// Validate rejects settings no command can work with.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatTable, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("unknown format %q, expected table|json|yaml", c.Format)
	}

	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("base_url %q must be an http(s) URL", c.BaseURL)
	}

	return nil
}

func (c *Config) Print(w io.Writer) {
	_, _ = fmt.Fprintf(w, " -base_url: %s\n", c.BaseURL)
	if c.UserAgent != "" {
		_, _ = fmt.Fprintf(w, " -user_agent: %s\n", c.UserAgent)
	}
	if c.CookieFile != "" {
		_, _ = fmt.Fprintf(w, " -cookie_file: %s\n", c.CookieFile)
	}
	_, _ = fmt.Fprintf(w, " -timeout: %s\n", c.Timeout)
	if c.RequestDelay > 0 {
		_, _ = fmt.Fprintf(w, " -request_delay: %s\n", c.RequestDelay)
	}
	if c.CFBypass {
		_, _ = fmt.Fprintf(w, " -cf_bypass: %t\n", c.CFBypass)
	}
	if c.Debug {
		_, _ = fmt.Fprintf(w, " -debug: %t\n", c.Debug)
	}
	langs := make([]string, len(c.RequiredLanguages))
	for i, l := range c.RequiredLanguages {
		langs[i] = string(l)
	}
	_, _ = fmt.Fprintf(w, " -required_languages: %s\n", strings.Join(langs, ", "))
	_, _ = fmt.Fprintf(w, " -format: %s\n", c.Format)
	_, _ = fmt.Fprintf(w, " -output: %s\n", c.Output)
	_, _ = fmt.Fprintf(w, " -image_workers: %d\n", c.ImageWorkers)
	if c.KeepFolders {
		_, _ = fmt.Fprintf(w, " -keep_folders: %t\n", c.KeepFolders)
	}
	if c.SkipBroken {
		_, _ = fmt.Fprintf(w, " -skip_broken: %t\n", c.SkipBroken)
	}
}
