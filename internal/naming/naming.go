// Package naming derives the token forms used to rewrite a template from a
// single project slug.
package naming

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

var (
	// ErrEmptySlug is returned when a slug is empty after normalization.
	ErrEmptySlug = errors.New("slug must not be empty")

	// ErrInvalidSlug is returned when a slug contains characters outside [a-z0-9-].
	ErrInvalidSlug = errors.New("invalid slug")
)

// Names is the derived name set for one slug.
type Names struct {
	Pascal     string // MyCoolTheme
	UpperSnake string // MY_COOL_THEME
	Kebab      string // my-cool-theme
	LowerSnake string // my_cool_theme
	Title      string // My Cool Theme
}

// Normalize trims surrounding whitespace and lower-cases the slug.
func Normalize(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

// Validate checks that slug is a non-empty, filesystem-safe token.
func Validate(slug string) error {
	if slug == "" {
		return ErrEmptySlug
	}
	if !slugPattern.MatchString(slug) {
		return fmt.Errorf("%w %q: must match pattern [a-z0-9][a-z0-9-]*", ErrInvalidSlug, slug)
	}
	return nil
}

// Derive returns the name set for slug. The slug is used as-is; callers
// normalize and validate user input first. An empty slug is rejected.
func Derive(slug string) (Names, error) {
	if slug == "" {
		return Names{}, ErrEmptySlug
	}

	title := titleCase(strings.ReplaceAll(slug, "-", " "))
	lowerSnake := strings.ReplaceAll(slug, "-", "_")

	return Names{
		Pascal:     strings.ReplaceAll(title, " ", ""),
		UpperSnake: strings.ToUpper(lowerSnake),
		Kebab:      slug,
		LowerSnake: lowerSnake,
		Title:      title,
	}, nil
}

// MustDerive is Derive for slugs already known to be valid.
func MustDerive(slug string) Names {
	n, err := Derive(slug)
	if err != nil {
		panic(err)
	}
	return n
}

// titleCase upper-cases the first character of every space-delimited word
// and leaves the rest of each word untouched.
func titleCase(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		if size == 0 {
			continue
		}
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
