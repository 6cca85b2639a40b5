package taxonomy

import (
	"testing"

	"cnctools/catalog/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyByTab(t *testing.T) {
	tax := Default()

	tests := []struct {
		name     string
		product  domain.Product
		tab      domain.Tab
		category string
		want     bool
	}{
		{"drill prefix", domain.Product{SKU: "VWM101"}, domain.TabWiertla, domain.CategoryAll, true},
		{"lower-case sku", domain.Product{SKU: "vwm101"}, domain.TabWiertla, domain.CategoryAll, true},
		{"insert in drill tab", domain.Product{SKU: "PWX01"}, domain.TabWiertla, domain.CategoryAll, false},
		{"insert tab", domain.Product{SKU: "PWX01"}, domain.TabPlytki, domain.CategoryAll, true},
		{"symbol fallback", domain.Product{CustomSymbol: "KK-16"}, domain.TabKoronki, "", true},
		{"producer code fallback", domain.Product{CustomKodProducenta: "KA9"}, domain.TabKoronki, "", true},
		{"leading space is part of the prefix", domain.Product{SKU: " VW1"}, domain.TabWiertla, domain.CategoryAll, false},
		{"blank sku still wins over symbol", domain.Product{SKU: "  ", CustomSymbol: "VW1"}, domain.TabWiertla, domain.CategoryAll, false},
		{"empty sku falls back to symbol", domain.Product{CustomSymbol: "VW1"}, domain.TabWiertla, domain.CategoryAll, true},
		{"sku too short", domain.Product{SKU: "V"}, domain.TabWiertla, domain.CategoryAll, false},
		{"no sku", domain.Product{Title: "VW drill"}, domain.TabWiertla, domain.CategoryAll, false},
		{"unknown prefix", domain.Product{SKU: "ZZ100"}, domain.TabWiertla, domain.CategoryAll, false},
		{"prefix category narrows", domain.Product{SKU: "VW100"}, domain.TabWiertla, "koronkowe", false},
		{"prefix category keeps", domain.Product{SKU: "VK100"}, domain.TabWiertla, "koronkowe", true},
		{"multi-prefix category", domain.Product{SKU: "VT100"}, domain.TabWiertla, "modulowe", true},
		{"text category keeps whole tab", domain.Product{SKU: "VH100"}, domain.TabWiertla, "sandvik", true},
		{"unknown tab", domain.Product{SKU: "VW100"}, domain.Tab("frezy"), domain.CategoryAll, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tax.ClassifyByTab(tt.product, tt.tab, tt.category))
		})
	}
}

func TestClassifyByCategory(t *testing.T) {
	tax := Default()

	tests := []struct {
		name     string
		product  domain.Product
		tab      domain.Tab
		category string
		want     bool
	}{
		{"all passes", domain.Product{}, domain.TabPlytki, domain.CategoryAll, true},
		{"empty passes", domain.Product{}, domain.TabPlytki, "", true},
		{"prefix category already settled", domain.Product{SKU: "VK1"}, domain.TabWiertla, "koronkowe", true},
		{"sandvik matches type", domain.Product{CustomTyp: "CoroDrill 880-D2000"}, domain.TabWiertla, "sandvik", true},
		{"sandvik ignores title", domain.Product{Title: "Sandvik 880"}, domain.TabWiertla, "sandvik", false},
		{"allied via vendor", domain.Product{Vendor: "AMEC"}, domain.TabWiertla, "allied", true},
		{"wcmx excluded without synonym", domain.Product{SKU: "PWX01", CustomTyp: "plytkowe"}, domain.TabPlytki, "wcmx", false},
		{"wcmx via type", domain.Product{SKU: "PWX01", CustomTyp: "WCMX 050308"}, domain.TabPlytki, "wcmx", true},
		{"wcmx short synonym via title", domain.Product{SKU: "PWX01", Title: "Płytka WC 06"}, domain.TabPlytki, "wcmx", true},
		{"synonym via sku", domain.Product{SKU: "PSPMG0502"}, domain.TabPlytki, "spmg", true},
		{"crown synonym", domain.Product{SKU: "KK1", Title: "Koronka KS 16"}, domain.TabKoronki, "ksem", true},
		{"unknown category matches own name", domain.Product{CustomTyp: "Iscar SumoCham"}, domain.TabWiertla, "iscar", true},
		{"unknown category misses", domain.Product{CustomTyp: "HSS"}, domain.TabWiertla, "iscar", false},
		{"category name case-insensitive", domain.Product{CustomTyp: "WCMX"}, domain.TabPlytki, "WCMX", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tax.ClassifyByCategory(tt.product, tt.tab, tt.category))
		})
	}
}

func TestTypeFilterRedundant(t *testing.T) {
	tax := Default()

	assert.True(t, tax.TypeFilterRedundant(domain.TabWiertla, "koronkowe"))
	assert.True(t, tax.TypeFilterRedundant(domain.TabWiertla, "sandvik"))
	assert.False(t, tax.TypeFilterRedundant(domain.TabWiertla, domain.CategoryAll))
	assert.False(t, tax.TypeFilterRedundant(domain.TabPlytki, "wcmx"))
}

// Every prefix belongs to exactly one tab, so a classified product shows up
// in one tab only.
func TestDefault_PrefixSetsPartitionTabs(t *testing.T) {
	tax := Default()
	owner := map[string]domain.Tab{}

	for _, spec := range tax.Tabs() {
		for _, prefix := range spec.Prefixes {
			prev, dup := owner[prefix]
			require.False(t, dup, "prefix %s in %s and %s", prefix, prev, spec.Tab)
			owner[prefix] = spec.Tab
		}
		for _, c := range spec.Categories {
			if c.Prefix == nil {
				continue
			}
			for _, prefix := range c.Prefix.Prefixes {
				assert.Equal(t, spec.Tab, owner[prefix], "category %s narrows outside its tab", c.Name)
			}
		}
	}

	for prefix, tab := range owner {
		p := domain.Product{SKU: domain.Field(prefix + "123")}
		for _, other := range domain.Tabs {
			assert.Equal(t, other == tab, tax.ClassifyByTab(p, other, domain.CategoryAll), "%s in %s", prefix, other)
		}

		got, ok := tax.TabOf(p)
		assert.True(t, ok)
		assert.Equal(t, tab, got)
	}
}

func TestNew_DoesNotAliasCallerSlices(t *testing.T) {
	prefixes := []string{"ab"}
	tax := New(TabSpec{Tab: domain.TabWiertla, Prefixes: prefixes})

	assert.Equal(t, []string{"ab"}, prefixes)
	assert.Equal(t, []string{"AB"}, tax.Prefixes(domain.TabWiertla, ""))
}

func TestSynonyms(t *testing.T) {
	tax := Default()

	assert.Equal(t, []string{"ksem", "ks"}, tax.Synonyms(domain.TabKoronki, "KSEM"))
	assert.Equal(t, []string{"16"}, tax.Synonyms(domain.TabKoronki, " 16 "))
}
