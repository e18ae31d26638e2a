package chapters

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/brogergvhs/galleryd/internal/providers"
	"github.com/brogergvhs/galleryd/internal/util"
)

const maxBaseNameLen = 80

var reUnderscore = regexp.MustCompile(`_+`)

// Chapter is a book's chapter ready to be written to disk.
type Chapter struct {
	providers.Chapter
	Book providers.Book
	// URL is the gallery page, sent as Referer for image requests.
	URL string
}

// New wraps the single chapter of book. ok is false for books without one.
func New(book providers.Book, galleryURL string) (Chapter, bool) {
	if len(book.Chapters) == 0 {
		return Chapter{}, false
	}

	return Chapter{Chapter: book.Chapters[0], Book: book, URL: galleryURL}, true
}

func sanitize(s string) string {
	s = strings.ToLower(s)

	repl := strings.NewReplacer(
		"•", "_",
		"-", "_",
		"—", "_",
		"–", "_",
		"/", "_",
		"\\", "_",
		".", "_",
		" ", "_",
		"|", "_",
		"(", "",
		")", "",
		"[", "",
		"]", "",
	)
	s = repl.Replace(s)

	clean := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			clean = append(clean, r)
		}
	}
	s = reUnderscore.ReplaceAllString(string(clean), "_")

	return strings.Trim(s, "_")
}

// baseName is "<gallery id>_<title>", cut to a filesystem friendly length.
func (c Chapter) baseName() string {
	id := sanitize(c.ID)
	title := sanitize(c.Title)
	if title == "" {
		title = sanitize(c.Book.Title)
	}

	name := id
	if title != "" {
		name = id + "_" + title
	}

	if r := []rune(name); len(r) > maxBaseNameLen {
		name = strings.TrimRight(string(r[:maxBaseNameLen]), "_")
	}
	if name == "" {
		return "gallery"
	}

	return name
}

func (c Chapter) FolderName() string {
	return c.baseName() + "_tmp"
}

func (c Chapter) OutputCBZ() string {
	return c.baseName() + ".cbz"
}

func (c Chapter) OutputCBZPath(out string) string {
	return filepath.Join(out, c.OutputCBZ())
}

var languageISO = map[providers.Language]string{
	providers.English:  "en",
	providers.Japanese: "ja",
	providers.Mandarin: "zh",
}

// ComicInfo describes the chapter for the archive's ComicInfo.xml.
func (c Chapter) ComicInfo(pageCount int) *util.ComicInfo {
	tags := make([]string, len(c.Book.Tags))
	for i, t := range c.Book.Tags {
		tags[i] = t.Name
	}

	writer := c.Book.Author
	if writer == "unknown" {
		writer = ""
	}

	return &util.ComicInfo{
		Title:       c.Title,
		Series:      c.Book.Title,
		Number:      "1",
		Writer:      writer,
		Tags:        strings.Join(tags, ", "),
		Web:         c.URL,
		PageCount:   pageCount,
		LanguageISO: languageISO[c.Language],
		Manga:       "YesAndRightToLeft",
	}
}
