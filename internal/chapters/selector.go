package chapters

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/brogergvhs/galleryd/internal/providers"
)

// Page is a chapter image with its 1-based position in the gallery.
type Page struct {
	Number int
	providers.Image
}

// SelectPages picks pages by range ("5-12") or list ("1,3,5"). With neither
// set every page is selected. Pages keep their gallery numbering.
func SelectPages(all []providers.Image, rng, list string) ([]Page, error) {
	numbered := make([]Page, len(all))
	for i, img := range all {
		numbered[i] = Page{Number: i + 1, Image: img}
	}

	switch {
	case strings.TrimSpace(rng) != "":
		return pageRange(numbered, rng)
	case strings.TrimSpace(list) != "":
		return pageList(numbered, list)
	default:
		return numbered, nil
	}
}

func pageRange(all []Page, rng string) ([]Page, error) {
	from, to, ok := strings.Cut(rng, "-")
	if !ok {
		return nil, fmt.Errorf("invalid range %q, expected start-end", rng)
	}

	start, err1 := atoi(from)
	end, err2 := atoi(to)
	if err1 != nil || err2 != nil {
		return nil, fmt.Errorf("invalid range %q, expected start-end", rng)
	}
	if start <= 0 || start > end || end > len(all) {
		return nil, fmt.Errorf("range %q outside 1-%d", rng, len(all))
	}

	return all[start-1 : end], nil
}

func pageList(all []Page, list string) ([]Page, error) {
	out := []Page{}
	for _, n := range strings.Split(list, ",") {
		if strings.TrimSpace(n) == "" {
			continue
		}

		idx, err := atoi(n)
		if err != nil {
			return nil, fmt.Errorf("invalid page %q in list", n)
		}
		if idx <= 0 || idx > len(all) {
			return nil, fmt.Errorf("page %d outside 1-%d", idx, len(all))
		}
		out = append(out, all[idx-1])
	}

	return out, nil
}

func atoi(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}
