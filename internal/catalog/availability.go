package catalog

import "cnctools/catalog/internal/domain"

// ToNumber coerces an inventory value: comma as decimal separator, leading
// number only, anything unparseable counts as 0.
func ToNumber(v domain.Field) float64 {
	f, _ := domain.ParseFloat(v.String())
	return f
}

// IsAvailable reports whether the product can be bought: positive stock on
// the product itself or on at least one variant. The feed's "available"
// flag is deliberately ignored.
func IsAvailable(p domain.Product) bool {
	if ToNumber(p.InventoryQuantity) > 0 {
		return true
	}

	for _, v := range p.Variants {
		if ToNumber(v.InventoryQuantity) > 0 {
			return true
		}
	}
	return false
}

// Stock is the quantity shown to customers: the product's own count, or the
// sum of positive variant counts when the product has none.
func Stock(p domain.Product) float64 {
	if qty := ToNumber(p.InventoryQuantity); qty > 0 {
		return qty
	}

	var total float64
	for _, v := range p.Variants {
		if qty := ToNumber(v.InventoryQuantity); qty > 0 {
			total += qty
		}
	}
	return total
}
