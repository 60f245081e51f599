package catalog

import (
	"github.com/sahilm/fuzzy"
)

// Item is the resource-agnostic view the CLI and the console render.
type Item struct {
	Kind   string
	Key    string
	Label  string
	Detail string
	Value  any
}

func (i Item) SearchKey() string   { return i.Kind + ":" + i.Key }
func (i Item) SearchLabel() string { return i.Label }

type itemLabels []Item

func (l itemLabels) String(i int) string { return l[i].Label }
func (l itemLabels) Len() int            { return len(l) }

// Rank orders items by how closely their labels match query. Items that do
// not match keep their relative order after the matches.
func Rank(query string, items []Item) []Item {
	if query == "" || len(items) < 2 {
		return items
	}
	matches := fuzzy.FindFrom(query, itemLabels(items))
	out := make([]Item, 0, len(items))
	seen := make(map[int]bool, len(matches))
	for _, m := range matches {
		out = append(out, items[m.Index])
		seen[m.Index] = true
	}
	for i, item := range items {
		if !seen[i] {
			out = append(out, item)
		}
	}
	return out
}
