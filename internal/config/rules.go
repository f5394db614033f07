package config

import "strings"

// Uncategorized is assigned when no merchant rule matches.
const Uncategorized = "uncategorized"

// Categorize resolves a merchant display string to a category label
// using the configured substring rules. Matching is case-insensitive;
// on overlapping rules the longest pattern wins.
func (c Config) Categorize(merchant string) string {
	haystack := strings.ToLower(merchant)

	best := ""
	category := Uncategorized
	for pattern, cat := range c.Categories.Rules {
		if pattern == "" {
			continue
		}
		if strings.Contains(haystack, strings.ToLower(pattern)) && len(pattern) > len(best) {
			best = pattern
			category = cat
		}
	}
	return category
}
