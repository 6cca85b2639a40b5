package taxonomy

import (
	"slices"
	"strings"

	"cnctools/catalog/internal/domain"
)

// SKU returns the classification key: sku, then custom_symbol, then
// custom_kod_producenta. The value is not trimmed, so " VW1" has prefix " V".
func SKU(p domain.Product) string {
	return domain.FirstPresent(p, domain.SKUKeys...)
}

// Prefix returns the upper-cased first two characters of the SKU.
func Prefix(p domain.Product) (string, bool) {
	runes := []rune(SKU(p))
	if len(runes) < 2 {
		return "", false
	}
	return domain.Upper(string(runes[:2])), true
}

// ClassifyByTab reports whether the product's SKU prefix belongs to the tab,
// taking prefix categories into account.
func (t *Taxonomy) ClassifyByTab(p domain.Product, tab domain.Tab, category string) bool {
	prefix, ok := Prefix(p)
	if !ok {
		return false
	}
	return slices.Contains(t.Prefixes(tab, category), prefix)
}

// ClassifyByCategory applies the category's text rule. "wszystkie" passes
// everything; prefix categories were already settled by ClassifyByTab.
func (t *Taxonomy) ClassifyByCategory(p domain.Product, tab domain.Tab, category string) bool {
	if domain.IsAll(category) {
		return true
	}

	if c, ok := t.Category(tab, category); ok {
		if c.Prefix != nil {
			return true
		}
		if c.Text != nil {
			return c.Text.Match(p)
		}
	}

	spec, ok := t.tabs[tab]
	if !ok {
		return false
	}

	fallback := SubstringRule{
		Fields:     spec.TextFields,
		Substrings: []string{domain.Lower(strings.TrimSpace(category))},
	}
	return fallback.Match(p)
}

// TabOf returns the tab whose prefix set holds the product's prefix.
func (t *Taxonomy) TabOf(p domain.Product) (domain.Tab, bool) {
	prefix, ok := Prefix(p)
	if !ok {
		return "", false
	}

	for _, tab := range t.order {
		if slices.Contains(t.tabs[tab].Prefixes, prefix) {
			return tab, true
		}
	}
	return "", false
}
