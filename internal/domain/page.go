package domain

// Page is the render contract handed to the view layer.
type Page struct {
	Items      []Product `json:"items"`       // Products on the current page
	TotalCount int       `json:"total_count"` // Products matching the filters across all pages
	TotalPages int       `json:"total_pages"` // Never below 1
	Page       int       `json:"page"`        // Clamped current page
	StartIndex int       `json:"start_index"` // 1-based, 0 when empty
	EndIndex   int       `json:"end_index"`   // Inclusive, 0 when empty
}

// Empty reports whether no product matched.
func (p Page) Empty() bool {
	return p.TotalCount == 0
}
