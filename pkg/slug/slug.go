// Copyright (c) 2026 The gae-blog Authors. All rights reserved.

// Package slug generates ASCII URL slugs from arbitrary Unicode strings.
//
// # Usage
//
// Slugs are the public identifiers of blog posts (e.g., "new-post"). They are
// never stored: callers derive them from a title whenever they need one.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonWord matches any character that is not a word character, whitespace or hyphen.
	// RE2's \s omits \v and the \x1c-\x1f separators, so they are listed explicitly.
	nonWord = regexp.MustCompile(`[^\w\s\v\x1c-\x1f-]`)
	// separators matches runs of whitespace and/or hyphens.
	separators = regexp.MustCompile(`[-\s\v\x1c-\x1f]+`)
)

// From converts an arbitrary Unicode string into a URL-safe ASCII slug.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFKD (é → e + combining acute, ﬁ → fi).
// 2. Drops every rune outside ASCII (combining marks, symbols, CJK).
// 3. Removes characters other than letters, digits, underscores, whitespace and hyphens.
// 4. Trims surrounding whitespace and lowercases.
// 5. Collapses whitespace/hyphen runs into one hyphen and trims edge hyphens.
//
// The result of From is always a fixed point: From(From(s)) == From(s).
func From(s string) string {
	// 1. Normalize and transliterate best-effort to ASCII
	t := transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(isNonASCII)))
	result, _, _ := transform.String(t, s)

	// 2. Keep word characters, whitespace and hyphens only
	result = nonWord.ReplaceAllString(result, "")

	// 3. Trim and lowercase
	result = strings.ToLower(strings.TrimSpace(result))

	// 4. Clean up hyphenation
	result = separators.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// isNonASCII reports whether r has no ASCII representation.
func isNonASCII(r rune) bool {
	return r > unicode.MaxASCII
}
