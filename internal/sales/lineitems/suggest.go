package lineitems

import "strings"

// MinSuggestQuery is the shortest query that produces suggestions.
const MinSuggestQuery = 2

// Suggest returns catalog items whose name matches query, case-insensitively. Prefix
// matches come first, then names containing the query elsewhere; both groups keep
// catalog order. A non-positive limit means no limit.
func Suggest(items []SavedLineItem, query string, limit int) []SavedLineItem {
	q := strings.ToLower(strings.TrimSpace(query))
	if len([]rune(q)) < MinSuggestQuery {
		return []SavedLineItem{}
	}
	var prefix, contains []SavedLineItem
	for _, item := range items {
		name := strings.ToLower(item.Name)
		switch {
		case strings.HasPrefix(name, q):
			prefix = append(prefix, item)
		case strings.Contains(name, q):
			contains = append(contains, item)
		}
	}
	out := append(make([]SavedLineItem, 0, len(prefix)+len(contains)), prefix...)
	out = append(out, contains...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
