package server

import (
	"fmt"
	"net/url"
	"strconv"

	"cnctools/catalog/internal/domain"
)

// filterParams maps query parameters onto the filter field they set.
var filterParams = map[string]func(*domain.Filters, string){
	"typ":             func(f *domain.Filters, v string) { f.Typ = v },
	"manufacturer":    func(f *domain.Filters, v string) { f.Manufacturer = v },
	"search":          func(f *domain.Filters, v string) { f.Search = v },
	"condition":       func(f *domain.Filters, v string) { f.Condition = v },
	"filter_category": func(f *domain.Filters, v string) { f.Category = v },
	"crown":           func(f *domain.Filters, v string) { f.Crown = v },
}

// applyQuery replays the interactions encoded in q on top of st, in the
// order the controls would: tab, category, filters, page size, page.
func applyQuery(st domain.FilterState, q url.Values) (domain.FilterState, error) {
	if q.Has("tab") {
		tab, ok := domain.ParseTab(q.Get("tab"))
		if !ok {
			return st, fmt.Errorf("unknown tab %q", q.Get("tab"))
		}
		if tab != st.ActiveTab {
			st = st.WithTab(tab)
		}
	}

	if q.Has("category") {
		st = st.WithCategory(q.Get("category"))
	}

	filters := st.Filters
	changed := false
	for param, set := range filterParams {
		if q.Has(param) {
			set(&filters, q.Get(param))
			changed = true
		}
	}
	if changed {
		st = st.WithFilters(filters)
	}

	if q.Has("per_page") {
		size, err := strconv.Atoi(q.Get("per_page"))
		if err != nil || size < 1 {
			return st, fmt.Errorf("invalid per_page %q", q.Get("per_page"))
		}
		st = st.WithItemsPerPage(size)
	}

	if q.Has("page") {
		page, err := strconv.Atoi(q.Get("page"))
		if err != nil {
			return st, fmt.Errorf("invalid page %q", q.Get("page"))
		}
		st = st.WithPage(page)
	}

	return st, nil
}
