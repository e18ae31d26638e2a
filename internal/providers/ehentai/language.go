package ehentai

import (
	"regexp"
	"strings"

	"github.com/samber/lo"

	"github.com/brogergvhs/galleryd/internal/dom"
	"github.com/brogergvhs/galleryd/internal/providers"
)

// languageNames maps the site's language labels to catalog languages.
// Chinese galleries are catalogued as mandarin.
var languageNames = map[string]providers.Language{
	"english":  providers.English,
	"chinese":  providers.Mandarin,
	"japanese": providers.Japanese,
}

var reBracketToken = regexp.MustCompile(`\[(.*?)\]`)

const languageMarkerPrefix = "language:"

func mapLanguage(raw string) (providers.Language, bool) {
	lang, ok := languageNames[strings.ToLower(strings.TrimSpace(raw))]
	return lang, ok
}

// languagesFromMarkers reads the language tag markers of an extended
// listing row (title attributes of the form "language:<name>").
func languagesFromMarkers(row dom.Node) []providers.Language {
	var out []providers.Language
	for _, marker := range row.FindAll("div.gl4e tbody div.gt") {
		title, _ := marker.Attr("title")
		name := strings.TrimPrefix(title, languageMarkerPrefix)
		if lang, ok := mapLanguage(name); ok {
			out = append(out, lang)
		}
	}

	return lo.Uniq(out)
}

// languagesFromTitle maps bracketed title tokens such as "[English]".
func languagesFromTitle(title string) []providers.Language {
	var out []providers.Language
	for _, m := range reBracketToken.FindAllStringSubmatch(title, -1) {
		if lang, ok := mapLanguage(m[1]); ok {
			out = append(out, lang)
		}
	}

	return lo.Uniq(out)
}

// inferLanguages prefers row markers, then the title, then japanese, which
// is what untagged galleries on the site are in practice.
func inferLanguages(row dom.Node, title string) []providers.Language {
	if langs := languagesFromMarkers(row); len(langs) > 0 {
		return langs
	}
	if langs := languagesFromTitle(title); len(langs) > 0 {
		return langs
	}

	return []providers.Language{providers.Japanese}
}

// filterLanguages keeps summaries available in at least one required
// language. It never returns nil.
func filterLanguages(items []providers.BookSummary, required []providers.Language) []providers.BookSummary {
	if len(required) == 0 {
		return append([]providers.BookSummary{}, items...)
	}

	return lo.Filter(items, func(item providers.BookSummary, _ int) bool {
		return lo.Some(item.AvailableLanguages, required)
	})
}
