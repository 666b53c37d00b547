package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	cases := []struct {
		name         string
		total, limit int
		want         int
	}{
		{"exact multiple", 20, 10, 2},
		{"partial last page", 21, 10, 3},
		{"single page", 5, 10, 1},
		{"empty set", 0, 10, 0},
		{"zero limit", 20, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TotalPages(tc.total, tc.limit))
		})
	}
}

func TestNewPagination(t *testing.T) {
	t.Run("Should flag middle pages in both directions", func(t *testing.T) {
		p := NewPagination(2, 10, 25)

		assert.Equal(t, 3, p.TotalPages)
		assert.True(t, p.HasNextPage)
		assert.True(t, p.HasPrevPage)
	})

	t.Run("Should flag the first page forward only", func(t *testing.T) {
		p := NewPagination(1, 10, 25)

		assert.True(t, p.HasNextPage)
		assert.False(t, p.HasPrevPage)
	})

	t.Run("Should flag the last page backward only", func(t *testing.T) {
		p := NewPagination(3, 10, 25)

		assert.False(t, p.HasNextPage)
		assert.True(t, p.HasPrevPage)
	})

	t.Run("Should never report a next page past the end", func(t *testing.T) {
		p := NewPagination(99, 10, 25)

		assert.False(t, p.HasNextPage)
		assert.True(t, p.HasPrevPage)
	})
}
