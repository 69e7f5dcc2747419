package catalog

import (
	"strings"

	"github.com/pipocahq/pipoca/internal/domain"
	"github.com/sahilm/fuzzy"
)

// FilterResult is a filter hit with match metadata for highlighting.
type FilterResult struct {
	Item           domain.Item
	MatchedIndexes []int // character positions in the title that matched
	Score          int   // higher = better (sahilm/fuzzy convention)
}

// Index holds loaded items with pre-computed lowercase titles, implementing
// fuzzy.Source for allocation-free matching.
type Index struct {
	items       []domain.Item
	lowerTitles []string
}

// NewIndex builds a filter index over the given items.
func NewIndex(items []domain.Item) *Index {
	idx := &Index{
		items:       items,
		lowerTitles: make([]string, len(items)),
	}
	for i, item := range items {
		idx.lowerTitles[i] = strings.ToLower(item.Title)
	}
	return idx
}

// String returns the lowercase title at i (implements fuzzy.Source).
func (idx *Index) String(i int) string { return idx.lowerTitles[i] }

// Len returns the number of indexed items (implements fuzzy.Source).
func (idx *Index) Len() int { return len(idx.items) }

// Filter matches the query against indexed titles, best matches first. An
// empty query returns every item with no highlights.
func (idx *Index) Filter(query string) []FilterResult {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		out := make([]FilterResult, len(idx.items))
		for i, item := range idx.items {
			out[i] = FilterResult{Item: item}
		}
		return out
	}

	matches := fuzzy.FindFrom(query, idx)
	out := make([]FilterResult, len(matches))
	for i, m := range matches {
		out[i] = FilterResult{
			Item:           idx.items[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}
	return out
}
