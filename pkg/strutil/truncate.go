// Copyright (c) 2026 The gae-blog Authors. All rights reserved.

// Package strutil holds small string helpers shared by the presentation layer.
package strutil

import "unicode/utf8"

// Ellipsis is appended to text cut by [TruncateChars].
const Ellipsis = "..."

// TruncateChars shortens s to at most limit runes, ellipsis included.
//
// Strings that already fit are returned unchanged. Otherwise the first
// limit-len(Ellipsis) runes are kept and [Ellipsis] is appended, so
// TruncateChars(strings.Repeat("ABC ", 123), 100) ends in "ABC A...".
func TruncateChars(s string, limit int) string {
	if limit <= 0 {
		return ""
	}

	// If the original string fits, return it as-is
	if utf8.RuneCountInString(s) <= limit {
		return s
	}

	keep := limit - utf8.RuneCountInString(Ellipsis)
	if keep <= 0 {
		return Ellipsis[:limit]
	}

	runes := []rune(s)
	return string(runes[:keep]) + Ellipsis
}
