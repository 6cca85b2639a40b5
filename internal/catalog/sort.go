package catalog

import (
	"cmp"
	"math"
	"slices"

	"cnctools/catalog/internal/domain"
)

// Diameter returns the product's diameter, +Inf when missing or unparseable.
func Diameter(p domain.Product) float64 {
	raw := domain.Resolve(p, domain.DiameterKeys...)
	d, ok := domain.ParseFloat(raw)
	if !ok {
		return math.Inf(1)
	}
	return d
}

// SortByDiameter returns a copy ordered by ascending diameter. Products
// without a diameter go last; equal diameters keep their input order.
func SortByDiameter(products []domain.Product) []domain.Product {
	type keyed struct {
		diameter float64
		product  domain.Product
	}

	entries := make([]keyed, len(products))
	for i, p := range products {
		entries[i] = keyed{diameter: Diameter(p), product: p}
	}

	slices.SortStableFunc(entries, func(a, b keyed) int {
		return cmp.Compare(a.diameter, b.diameter)
	})

	sorted := make([]domain.Product, len(entries))
	for i, e := range entries {
		sorted[i] = e.product
	}
	return sorted
}
