package statemachine

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/width"
)

var foldCaser = cases.Fold()

// foldText lowercases via Unicode case folding and narrows full-width
// forms, so keyword matching ignores how the player's IME shaped the
// input.
func foldText(s string) string {
	return foldCaser.String(width.Narrow.String(s))
}

// containsFolded reports case-insensitive substring containment.
func containsFolded(haystack, needle string) bool {
	return strings.Contains(foldText(haystack), foldText(needle))
}

// equalsFolded reports case-insensitive equality.
func equalsFolded(a, b string) bool {
	return foldText(a) == foldText(b)
}

// containsIgnoringSpaces matches keywords regardless of spacing, so
// "학습 시간표 관리" and "학습시간표 관리" are equivalent.
func containsIgnoringSpaces(haystack, needle string) bool {
	strip := func(s string) string {
		return strings.Join(strings.Fields(foldText(s)), "")
	}
	return strings.Contains(strip(haystack), strip(needle))
}
