package taxonomy

import "cnctools/catalog/internal/domain"

var (
	drillTextFields  = []string{domain.KeyCustomTyp, domain.KeyVendor, domain.KeyTitle}
	insertTextFields = []string{domain.KeyCustomTyp, domain.KeyTitle, domain.KeySKU}
)

// Default is the storefront's taxonomy. SKU prefixes are assigned by the
// warehouse and do not overlap between tabs.
func Default() *Taxonomy {
	return New(
		TabSpec{
			Tab:                domain.TabWiertla,
			Prefixes:           []string{"VW", "VK", "VP", "VH", "VS", "VT"},
			TextFields:         drillTextFields,
			CategoryCoversType: true,
			Categories: []Category{
				{Name: "vhm", Label: "Wiertła VHM", Prefix: &PrefixRule{Prefixes: []string{"VW"}}},
				{Name: "koronkowe", Label: "Wiertła koronkowe", Prefix: &PrefixRule{Prefixes: []string{"VK"}}},
				{Name: "plytkowe", Label: "Wiertła płytkowe", Prefix: &PrefixRule{Prefixes: []string{"VP"}}},
				{Name: "hss", Label: "Wiertła HSS", Prefix: &PrefixRule{Prefixes: []string{"VH"}}},
				{Name: "modulowe", Label: "Wiertła modułowe", Prefix: &PrefixRule{Prefixes: []string{"VS", "VT"}}},
				// Sandvik CoroDrill 880 is only recognisable by its type code.
				{Name: "sandvik", Label: "Sandvik 880", Text: &SubstringRule{
					Fields:     []string{domain.KeyCustomTyp},
					Substrings: []string{"880"},
				}},
				{Name: "ksem", Label: "KSEM", Text: &SubstringRule{
					Fields:     []string{domain.KeyCustomTyp, domain.KeyTitle},
					Substrings: []string{"ksem"},
				}},
				{Name: "allied", Label: "Allied / AMEC", Text: &SubstringRule{
					Fields:     []string{domain.KeyVendor, domain.KeyCustomManufacturer, domain.KeyTitle},
					Substrings: []string{"allied", "amec"},
				}},
			},
		},
		TabSpec{
			Tab:        domain.TabPlytki,
			Prefixes:   []string{"PW", "PS", "PL", "PT", "PX"},
			TextFields: insertTextFields,
			Categories: []Category{
				synonymCategory("wcmx", "WCMX", "wcmx", "wc", "wcm"),
				synonymCategory("spmg", "SPMG", "spmg", "spm"),
				synonymCategory("soex", "SOEX", "soex", "so"),
				synonymCategory("lcmx", "LCMX", "lcmx", "lc"),
				synonymCategory("p284", "P284", "p284", "p28"),
			},
		},
		TabSpec{
			Tab:        domain.TabKoronki,
			Prefixes:   []string{"KK", "KW", "KS", "KA"},
			TextFields: insertTextFields,
			Categories: []Category{
				synonymCategory("ksem", "KSEM", "ksem", "ks"),
				synonymCategory("amec", "AMEC", "amec", "t-a"),
				synonymCategory("hpd", "HPD", "hpd"),
				synonymCategory("sd", "SD", "sd"),
			},
		},
	)
}

func synonymCategory(name, label string, synonyms ...string) Category {
	return Category{
		Name:  name,
		Label: label,
		Text: &SubstringRule{
			Fields:     insertTextFields,
			Substrings: synonyms,
		},
	}
}
