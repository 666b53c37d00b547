package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yarchiT/analogue-memory-backend/domain/catalog"
)

func fixtureItems() []catalog.MemoryItem {
	return []catalog.MemoryItem{
		{ID: "a", Name: "Tamagotchi", Description: "Pocket pet", Category: "toys", Popularity: 82, Year: 1996, Tags: []string{"virtual-pet"}},
		{ID: "b", Name: "Tetris", Description: "Falling blocks", Category: "video-games", Popularity: 93, Year: 1989, Tags: []string{"puzzle", "game-boy"}},
		{ID: "c", Name: "Rubik's Cube", Description: "Twisty puzzle", Category: "toys", Popularity: 89, Year: 1980, Tags: []string{"puzzle"}},
		{ID: "d", Name: "Pac-Man", Description: "Arcade maze chase", Category: "video-games", Popularity: 90, Year: 1980, Tags: []string{"arcade"}},
		{ID: "e", Name: "Hot Wheels", Description: "Die-cast cars", Category: "toys", Popularity: 80, Tags: []string{"cars"}},
	}
}

func TestFilterByCategory(t *testing.T) {
	t.Run("Should keep only items of the requested category", func(t *testing.T) {
		filtered := FilterByCategory(fixtureItems(), "toys")

		require.Len(t, filtered, 3)
		for _, item := range filtered {
			assert.Equal(t, "toys", item.Category)
		}
	})

	t.Run("Should return empty result for unknown category", func(t *testing.T) {
		filtered := FilterByCategory(fixtureItems(), "does-not-exist")

		assert.Empty(t, filtered)
		assert.NotNil(t, filtered)
	})
}

func TestSearchItems(t *testing.T) {
	t.Run("Should match name case-insensitively", func(t *testing.T) {
		matched := SearchItems(fixtureItems(), "TETRIS")

		require.Len(t, matched, 1)
		assert.Equal(t, "b", matched[0].ID)
	})

	t.Run("Should match description substrings", func(t *testing.T) {
		matched := SearchItems(fixtureItems(), "arcade")

		require.Len(t, matched, 1)
		assert.Equal(t, "d", matched[0].ID)
	})

	t.Run("Should match tags", func(t *testing.T) {
		matched := SearchItems(fixtureItems(), "puzzle")

		// Tetris and Rubik's Cube by tag/description.
		require.Len(t, matched, 2)
		assert.Equal(t, "b", matched[0].ID)
		assert.Equal(t, "c", matched[1].ID)
	})

	t.Run("Should return empty result when nothing matches", func(t *testing.T) {
		assert.Empty(t, SearchItems(fixtureItems(), "zzzzz"))
	})
}

func TestSortItems(t *testing.T) {
	t.Run("Should sort by name ascending by default", func(t *testing.T) {
		sorted := SortItems(fixtureItems(), "name")

		names := make([]string, 0, len(sorted))
		for _, item := range sorted {
			names = append(names, item.Name)
		}
		assert.Equal(t, []string{"Hot Wheels", "Pac-Man", "Rubik's Cube", "Tamagotchi", "Tetris"}, names)
	})

	t.Run("Should reverse direction with a leading dash", func(t *testing.T) {
		asc := SortItems(fixtureItems(), "popularity")
		desc := SortItems(fixtureItems(), "-popularity")

		require.Len(t, desc, len(asc))
		for i := range asc {
			assert.Equal(t, asc[i].ID, desc[len(desc)-1-i].ID)
		}
	})

	t.Run("Should treat missing year as zero", func(t *testing.T) {
		sorted := SortItems(fixtureItems(), "year")

		// Item "e" has no year and must sort first ascending.
		assert.Equal(t, "e", sorted[0].ID)
	})

	t.Run("Should be stable for equal keys", func(t *testing.T) {
		sorted := SortItems(fixtureItems(), "year")

		// "c" and "d" share 1980 and must keep input order.
		yearIndex := map[string]int{}
		for i, item := range sorted {
			yearIndex[item.ID] = i
		}
		assert.Less(t, yearIndex["c"], yearIndex["d"])
	})

	t.Run("Should fall back to name ascending for unknown field", func(t *testing.T) {
		assert.Equal(t, SortItems(fixtureItems(), "name"), SortItems(fixtureItems(), "-bogus"))
	})

	t.Run("Should not mutate the input slice", func(t *testing.T) {
		items := fixtureItems()
		original := make([]catalog.MemoryItem, len(items))
		copy(original, items)

		SortItems(items, "-popularity")

		assert.Equal(t, original, items)
	})
}

func TestPaginate(t *testing.T) {
	t.Run("Should return min(limit, remaining) items for every valid page", func(t *testing.T) {
		items := fixtureItems()
		total := len(items)

		for page := 1; page <= 4; page++ {
			for limit := 1; limit <= total+1; limit++ {
				got, _ := Paginate(items, page, limit)

				want := total - (page-1)*limit
				if want < 0 {
					want = 0
				}
				if want > limit {
					want = limit
				}
				assert.Len(t, got, want, "page=%d limit=%d", page, limit)
			}
		}
	})

	t.Run("Should report pagination metadata over the full set", func(t *testing.T) {
		_, meta := Paginate(fixtureItems(), 2, 2)

		assert.Equal(t, 2, meta.Page)
		assert.Equal(t, 2, meta.Limit)
		assert.Equal(t, 5, meta.TotalItems)
		assert.Equal(t, 3, meta.TotalPages)
		assert.True(t, meta.HasNextPage)
		assert.True(t, meta.HasPrevPage)
	})

	t.Run("Should yield empty slice for out-of-range page", func(t *testing.T) {
		got, meta := Paginate(fixtureItems(), 99, 10)

		assert.Empty(t, got)
		assert.Equal(t, 5, meta.TotalItems)
		assert.False(t, meta.HasNextPage)
	})

	t.Run("Should be deterministic for identical inputs", func(t *testing.T) {
		first, firstMeta := Page(fixtureItems(), 1, 3, "-popularity")
		second, secondMeta := Page(fixtureItems(), 1, 3, "-popularity")

		assert.Equal(t, first, second)
		assert.Equal(t, firstMeta, secondMeta)
	})
}
