// Package query implements the read-side query engine: filtering, search,
// sorting and pagination over the immutable snapshot. Every function is a pure
// function of its inputs, never mutates the snapshot's slices and is safe to
// call concurrently.
package query

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/yarchiT/analogue-memory-backend/domain/catalog"
	"github.com/yarchiT/analogue-memory-backend/pkg/common"
)

// Sort field names recognized by SortItems. A leading "-" reverses direction.
const (
	SortByName       = "name"
	SortByPopularity = "popularity"
	SortByYear       = "year"
)

// MinSearchLength is the shortest query SearchItems accepts; shorter queries
// are rejected upstream by the validation stage.
const MinSearchLength = 2

// FilterByCategory keeps items whose category equals the requested id. An
// unknown category yields an empty result, not an error.
func FilterByCategory(items []catalog.MemoryItem, categoryID string) []catalog.MemoryItem {
	filtered := make([]catalog.MemoryItem, 0)
	for _, item := range items {
		if item.Category == categoryID {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// SearchItems keeps items whose name, description or any tag contains the
// query as a case-insensitive substring.
func SearchItems(items []catalog.MemoryItem, q string) []catalog.MemoryItem {
	needle := strings.ToLower(q)
	matched := make([]catalog.MemoryItem, 0)
	for _, item := range items {
		if matchesQuery(item, needle) {
			matched = append(matched, item)
		}
	}
	return matched
}

func matchesQuery(item catalog.MemoryItem, needle string) bool {
	if strings.Contains(strings.ToLower(item.Name), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(item.Description), needle) {
		return true
	}
	for _, tag := range item.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// SortItems returns a stably sorted copy of items. The field may carry a "-"
// prefix to reverse direction; an unrecognized field falls back to name
// ascending. Names compare case-insensitively under English collation;
// popularity and year compare numerically, with a missing year treated as 0.
func SortItems(items []catalog.MemoryItem, field string) []catalog.MemoryItem {
	descending := strings.HasPrefix(field, "-")
	name := strings.TrimPrefix(field, "-")

	if name != SortByName && name != SortByPopularity && name != SortByYear {
		name = SortByName
		descending = false
	}

	// Collators keep internal buffers, so each sort gets its own.
	collator := collate.New(language.English, collate.IgnoreCase)

	sorted := make([]catalog.MemoryItem, len(items))
	copy(sorted, items)

	sort.SliceStable(sorted, func(i, j int) bool {
		var cmp int
		switch name {
		case SortByPopularity:
			cmp = sorted[i].Popularity - sorted[j].Popularity
		case SortByYear:
			cmp = sorted[i].Year - sorted[j].Year
		default:
			cmp = collator.CompareString(sorted[i].Name, sorted[j].Name)
		}
		if descending {
			return cmp > 0
		}
		return cmp < 0
	})

	return sorted
}

// Paginate slices out page `page` of size `limit` and returns it together with
// pagination metadata over the full pre-pagination count. An out-of-range page
// yields an empty slice, never an error.
func Paginate(items []catalog.MemoryItem, page, limit int) ([]catalog.MemoryItem, *common.Pagination) {
	total := len(items)
	meta := common.NewPagination(page, limit, total)

	start := (page - 1) * limit
	if start >= total {
		return []catalog.MemoryItem{}, meta
	}
	end := start + limit
	if end > total {
		end = total
	}
	return items[start:end], meta
}

// Page applies sort then pagination in one call; this is the path every list
// endpoint takes.
func Page(items []catalog.MemoryItem, page, limit int, sortField string) ([]catalog.MemoryItem, *common.Pagination) {
	return Paginate(SortItems(items, sortField), page, limit)
}
