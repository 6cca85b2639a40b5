package catalog

import "cnctools/catalog/internal/domain"

// Window is one page of a result.
type Window struct {
	Items      []domain.Product
	TotalPages int // at least 1
	Page       int // clamped; callers persist it back into their state
}

// Paginate slices products into the requested page. A page past the end is
// clamped to the last page; an empty input yields page 1 of 1.
func Paginate(products []domain.Product, page, pageSize int) Window {
	if pageSize < 1 {
		pageSize = domain.DefaultItemsPerPage
	}
	if page < 1 {
		page = 1
	}

	totalPages := (len(products) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, len(products))

	items := make([]domain.Product, end-start)
	copy(items, products[start:end])

	return Window{
		Items:      items,
		TotalPages: totalPages,
		Page:       page,
	}
}
