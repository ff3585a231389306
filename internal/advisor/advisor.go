// Package advisor learns category choices per description wording.
package advisor

import "strings"

// CategoryAdvisor maps normalized descriptions to the category last used for
// that exact wording. The table grows for the lifetime of the advisor and is
// overwritten on every learn; there is no fuzzy matching, a different wording
// never benefits from the hint.
type CategoryAdvisor struct {
	hints map[string]string
}

func New() *CategoryAdvisor {
	return &CategoryAdvisor{hints: make(map[string]string)}
}

// Suggest returns the learned category for the description, or fallback when
// the wording has never been seen.
func (a *CategoryAdvisor) Suggest(description, fallback string) string {
	if hint, ok := a.hints[normalize(description)]; ok {
		return hint
	}
	return fallback
}

// Learn records the category as the future default for this exact wording.
func (a *CategoryAdvisor) Learn(description, category string) {
	a.hints[normalize(description)] = category
}

func normalize(description string) string {
	return strings.TrimSpace(strings.ToLower(description))
}
