package domain

import "strings"

const (
	DefaultItemsPerPage = 100
	DefaultCondition    = "nowe"
)

// Filters holds the dropdown and search values of the catalog controls.
// An empty value or "wszystkie" disables the corresponding filter.
type Filters struct {
	Typ          string `json:"typ"`
	Manufacturer string `json:"manufacturer"`
	Search       string `json:"search"`
	Condition    string `json:"condition"`
	Category     string `json:"category"` // crown-tab secondary category
	Crown        string `json:"crown"`
}

// FilterState is everything the pipeline reads besides the products.
// It is a value: transitions return a new state.
type FilterState struct {
	ActiveTab        Tab     `json:"active_tab"`
	SelectedCategory string  `json:"selected_category"`
	Filters          Filters `json:"filters"`
	CurrentPage      int     `json:"current_page"`
	ItemsPerPage     int     `json:"items_per_page"`
}

func DefaultFilterState() FilterState {
	return FilterState{
		ActiveTab:        TabWiertla,
		SelectedCategory: CategoryAll,
		Filters: Filters{
			Condition: DefaultCondition,
		},
		CurrentPage:  1,
		ItemsPerPage: DefaultItemsPerPage,
	}
}

// WithTab switches tab. Category choices belong to a tab, so they reset.
func (s FilterState) WithTab(tab Tab) FilterState {
	s.ActiveTab = tab
	s.SelectedCategory = CategoryAll
	s.Filters.Category = ""
	s.Filters.Crown = ""
	s.CurrentPage = 1
	return s
}

func (s FilterState) WithCategory(category string) FilterState {
	category = strings.TrimSpace(category)
	if category == "" {
		category = CategoryAll
	}
	s.SelectedCategory = category
	s.CurrentPage = 1
	return s
}

func (s FilterState) WithFilters(filters Filters) FilterState {
	s.Filters = filters
	s.CurrentPage = 1
	return s
}

func (s FilterState) WithPage(page int) FilterState {
	s.CurrentPage = page
	return s
}

func (s FilterState) WithItemsPerPage(size int) FilterState {
	s.ItemsPerPage = size
	s.CurrentPage = 1
	return s
}

// Normalize repairs values a client may have sent out of range.
func (s FilterState) Normalize() FilterState {
	if !s.ActiveTab.Valid() {
		s.ActiveTab = TabWiertla
	}
	if IsAll(s.SelectedCategory) {
		s.SelectedCategory = CategoryAll
	}
	s.Filters.Search = strings.TrimSpace(s.Filters.Search)
	if s.CurrentPage < 1 {
		s.CurrentPage = 1
	}
	if s.ItemsPerPage < 1 {
		s.ItemsPerPage = DefaultItemsPerPage
	}
	return s
}
