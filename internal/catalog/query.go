package catalog

import (
	"cnctools/catalog/internal/domain"
	"cnctools/catalog/internal/taxonomy"
)

// Run filters, sorts and paginates products for a state. It returns the
// render contract and the state carrying the clamped page.
func Run(products []domain.Product, tax *taxonomy.Taxonomy, state domain.FilterState) (domain.Page, domain.FilterState) {
	state = state.Normalize()

	filtered := SortByDiameter(FilterProducts(products, tax, state))
	window := Paginate(filtered, state.CurrentPage, state.ItemsPerPage)
	state = state.WithPage(window.Page)

	page := domain.Page{
		Items:      window.Items,
		TotalCount: len(filtered),
		TotalPages: window.TotalPages,
		Page:       window.Page,
	}
	if len(window.Items) > 0 {
		page.StartIndex = (window.Page-1)*state.ItemsPerPage + 1
		page.EndIndex = page.StartIndex + len(window.Items) - 1
	}

	return page, state
}
