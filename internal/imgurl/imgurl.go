// Package imgurl normalizes image links scraped from listing and detail
// pages. The source emits protocol-relative links and links whose file name
// carries several stacked extensions (c.jpg.png); both are repaired here.
package imgurl

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrEmpty       = errors.New("image url is empty")
	ErrNoExtension = errors.New("image url has no valid extension")
)

// Extensions the source serves images with.
var Extensions = []string{"jpg", "webp", "png", "gif"}

var reScheme = regexp.MustCompile(`^[a-zA-Z][a-zA-Z\d+\-.]*://`)

type warnLogger interface {
	Warnf(format string, args ...any)
}

// Sanitize returns raw as an absolute https URL with duplicate extensions
// removed. Sanitize(Sanitize(x)) == Sanitize(x) for every valid output.
func Sanitize(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", ErrEmpty
	}

	s = stripProtocol(s)

	cleaned, err := RemoveDuplicateExtensions(s)
	if err != nil {
		return "", err
	}

	return "https://" + cleaned, nil
}

// ImageSrc is Sanitize for call sites that treat a bad link as "no image":
// the failure is logged and the empty string returned.
func ImageSrc(raw string, log warnLogger) string {
	out, err := Sanitize(raw)
	if err == nil {
		return out
	}

	if log != nil {
		if errors.Is(err, ErrEmpty) {
			log.Warnf("image src is empty\n")
		} else {
			log.Warnf("invalid image src %q: %v\n", raw, err)
		}
	}

	return ""
}

// RemoveDuplicateExtensions keeps only the trailing extension of u when
// other dot-separated segments are themselves image extensions.
func RemoveDuplicateExtensions(u string) (string, error) {
	if !strings.Contains(u, ".") {
		return "", ErrNoExtension
	}

	parts := strings.Split(u, ".")
	last := parts[len(parts)-1]
	if !isExtension(last) {
		return "", ErrNoExtension
	}

	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if !isExtension(p) {
			kept = append(kept, p)
		}
	}

	return strings.Join(kept, ".") + "." + last, nil
}

func stripProtocol(u string) string {
	u = reScheme.ReplaceAllString(u, "")
	return strings.TrimPrefix(u, "//")
}

func isExtension(s string) bool {
	for _, ext := range Extensions {
		if s == ext {
			return true
		}
	}

	return false
}
