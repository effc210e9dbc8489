package inventory

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Item is one pantry entry. Name is the document key.
type Item struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
}

// Filter returns the items whose name contains query, ignoring case.
// An empty query matches everything.
func Filter(items []Item, query string) []Item {
	if query == "" {
		return items
	}

	needle := strings.ToLower(query)
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), needle) {
			out = append(out, item)
		}
	}
	return out
}

// DisplayName upper-cases the first letter of name.
func DisplayName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

// Names returns the item names in order.
func Names(items []Item) []string {
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}
	return names
}

func sortByName(items []Item) {
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
}
