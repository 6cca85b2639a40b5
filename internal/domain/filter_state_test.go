package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultFilterState(t *testing.T) {
	s := DefaultFilterState()

	assert.Equal(t, TabWiertla, s.ActiveTab)
	assert.Equal(t, CategoryAll, s.SelectedCategory)
	assert.Equal(t, "nowe", s.Filters.Condition)
	assert.Equal(t, 1, s.CurrentPage)
	assert.Equal(t, 100, s.ItemsPerPage)
}

func TestFilterState_WithTabResetsTabScopedChoices(t *testing.T) {
	s := DefaultFilterState().WithCategory("koronkowe").WithPage(4)
	s.Filters.Crown = "ksem"
	s.Filters.Search = "880"

	next := s.WithTab(TabKoronki)

	assert.Equal(t, TabKoronki, next.ActiveTab)
	assert.Equal(t, CategoryAll, next.SelectedCategory)
	assert.Empty(t, next.Filters.Crown)
	assert.Equal(t, "880", next.Filters.Search, "search survives a tab switch")
	assert.Equal(t, 1, next.CurrentPage)

	// the original value is untouched
	assert.Equal(t, "koronkowe", s.SelectedCategory)
	assert.Equal(t, 4, s.CurrentPage)
}

func TestFilterState_Normalize(t *testing.T) {
	s := FilterState{
		ActiveTab:        "unknown",
		SelectedCategory: "  ",
		Filters:          Filters{Search: "  vw  "},
		CurrentPage:      -2,
		ItemsPerPage:     0,
	}.Normalize()

	assert.Equal(t, TabWiertla, s.ActiveTab)
	assert.Equal(t, CategoryAll, s.SelectedCategory)
	assert.Equal(t, "vw", s.Filters.Search)
	assert.Equal(t, 1, s.CurrentPage)
	assert.Equal(t, DefaultItemsPerPage, s.ItemsPerPage)
}

func TestParseTab(t *testing.T) {
	tab, ok := ParseTab(" Plytki ")
	assert.True(t, ok)
	assert.Equal(t, TabPlytki, tab)

	_, ok = ParseTab("frezy")
	assert.False(t, ok)

	assert.True(t, IsAll("Wszystkie"))
	assert.True(t, IsAll(""))
	assert.False(t, IsAll("sandvik"))
}
