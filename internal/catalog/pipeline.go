package catalog

import (
	"strings"

	"cnctools/catalog/internal/domain"
	"cnctools/catalog/internal/taxonomy"

	log "github.com/sirupsen/logrus"
)

type stage struct {
	name string
	keep func(domain.Product) bool
}

// FilterProducts narrows products to what the state asks for. Stages run in
// a fixed order and each one only removes products:
//
//	availability, tab prefix, search, category, type, crown filters, manufacturer
//
// The input slice is never modified; nil input gives an empty result.
func FilterProducts(products []domain.Product, tax *taxonomy.Taxonomy, state domain.FilterState) []domain.Product {
	result := make([]domain.Product, 0, len(products))
	result = append(result, products...)

	for _, s := range stages(tax, state) {
		before := len(result)
		result = narrow(result, s.keep)
		log.Debugf("filter %s: %d -> %d", s.name, before, len(result))
	}

	return result
}

func stages(tax *taxonomy.Taxonomy, state domain.FilterState) []stage {
	tab := state.ActiveTab
	category := state.SelectedCategory
	filters := state.Filters

	list := []stage{
		{"availability", IsAvailable},
		{"tab", func(p domain.Product) bool {
			return tax.ClassifyByTab(p, tab, category)
		}},
	}

	if term := domain.Lower(strings.TrimSpace(filters.Search)); term != "" {
		list = append(list, stage{"search", func(p domain.Product) bool {
			return strings.Contains(searchText(p), term)
		}})
	}

	if !domain.IsAll(category) {
		list = append(list, stage{"category", func(p domain.Product) bool {
			return tax.ClassifyByCategory(p, tab, category)
		}})
	}

	// A drill category already implies the type; filtering on the free-text
	// type again would drop correctly classified drills with an empty type.
	if !domain.IsAll(filters.Typ) && !tax.TypeFilterRedundant(tab, category) {
		typ := domain.Lower(strings.TrimSpace(filters.Typ))
		list = append(list, stage{"type", func(p domain.Product) bool {
			return strings.Contains(domain.Lower(p.CustomTyp.String()), typ)
		}})
	}

	if tab == domain.TabKoronki {
		if !domain.IsAll(filters.Category) {
			synonyms := tax.Synonyms(tab, filters.Category)
			list = append(list, stage{"crown category", func(p domain.Product) bool {
				return skuOrTitleContains(p, synonyms)
			}})
		}
		if !domain.IsAll(filters.Crown) {
			synonyms := tax.Synonyms(tab, filters.Crown)
			list = append(list, stage{"crown", func(p domain.Product) bool {
				return skuOrTitleContains(p, synonyms)
			}})
		}
	}

	if !domain.IsAll(filters.Manufacturer) {
		manufacturer := domain.Lower(strings.TrimSpace(filters.Manufacturer))
		list = append(list, stage{"manufacturer", func(p domain.Product) bool {
			for _, key := range domain.ManufacturerKeys {
				if strings.Contains(domain.Lower(p.Field(key).String()), manufacturer) {
					return true
				}
			}
			return false
		}})
	}

	return list
}

func narrow(products []domain.Product, keep func(domain.Product) bool) []domain.Product {
	out := products[:0]
	for _, p := range products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func searchText(p domain.Product) string {
	parts := make([]string, 0, len(domain.SearchKeys))
	for _, key := range domain.SearchKeys {
		parts = append(parts, p.Field(key).String())
	}
	return domain.Lower(strings.Join(parts, " "))
}

func skuOrTitleContains(p domain.Product, needles []string) bool {
	haystack := domain.Lower(taxonomy.SKU(p) + " " + p.Title.String())
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
