// Package subjects holds the elective subject catalog and parses subject
// choices out of free-form player messages.
package subjects

import (
	"strings"

	"golang.org/x/text/width"
)

// Catalog is the list of elective subjects a player may choose from.
var Catalog = []string{
	"사회문화", "정치와법", "경제", "세계지리", "한국지리",
	"생활과윤리", "윤리와사상", "세계사", "동아시아사",
	"물리학1", "화학1", "지구과학1", "생명과학1",
	"물리학2", "화학2", "지구과학2", "생명과학2",
}

// RequiredCount is how many electives a player must pick.
const RequiredCount = 2

// Normalize folds full-width characters to their narrow forms, lowercases,
// and strips all spaces (including the ideographic space U+3000), so that
// catalog names match regardless of how the player typed them.
func Normalize(s string) string {
	s = width.Narrow.String(s)
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), "")
}

// ParseMessage extracts elective subjects mentioned in the player's
// message, in catalog order, up to RequiredCount.
func ParseMessage(message string) []string {
	normalized := Normalize(message)

	var found []string
	for _, subject := range Catalog {
		if strings.Contains(normalized, Normalize(subject)) {
			found = append(found, subject)
			if len(found) >= RequiredCount {
				break
			}
		}
	}
	return found
}

// ValidCount reports whether enough subjects were selected.
func ValidCount(selected []string, required int) bool {
	return len(selected) >= required
}

// ListText returns the catalog as a comma-separated string for prompts.
func ListText() string {
	return strings.Join(Catalog, ", ")
}
