package taxonomy

import (
	"strings"

	"cnctools/catalog/internal/domain"
)

// PrefixRule narrows the tab's SKU prefixes. Prefix categories are
// authoritative: a product either carries one of the prefixes or it doesn't.
type PrefixRule struct {
	Prefixes []string
}

// SubstringRule is a best-effort text heuristic: the product matches when
// any of Fields contains any of Substrings, case-insensitively.
type SubstringRule struct {
	Fields     []string
	Substrings []string
}

func (r SubstringRule) Match(p domain.Product) bool {
	for _, key := range r.Fields {
		value := p.Field(key)
		if value.Blank() {
			continue
		}

		lowered := domain.Lower(value.String())
		for _, s := range r.Substrings {
			if strings.Contains(lowered, s) {
				return true
			}
		}
	}
	return false
}

type Category struct {
	Name   string         `json:"name"`
	Label  string         `json:"label"`
	Prefix *PrefixRule    `json:"-"`
	Text   *SubstringRule `json:"-"`
}

// Kind is "prefix" or "text", for clients building filter controls.
func (c Category) Kind() string {
	if c.Prefix != nil {
		return "prefix"
	}
	return "text"
}

type TabSpec struct {
	Tab      domain.Tab
	Prefixes []string // ordered

	// TextFields are matched when a category has no rule of its own.
	TextFields []string

	// CategoryCoversType marks tabs where an active category already decides
	// the product type, so the type dropdown must not filter again.
	CategoryCoversType bool

	Categories []Category
}

// Taxonomy is the static tab/category configuration.
type Taxonomy struct {
	order []domain.Tab
	tabs  map[domain.Tab]*TabSpec
}

func New(specs ...TabSpec) *Taxonomy {
	t := &Taxonomy{
		order: make([]domain.Tab, 0, len(specs)),
		tabs:  make(map[domain.Tab]*TabSpec, len(specs)),
	}

	for _, spec := range specs {
		spec.Prefixes = upperAll(spec.Prefixes)

		categories := make([]Category, 0, len(spec.Categories))
		for _, c := range spec.Categories {
			c.Name = domain.Lower(strings.TrimSpace(c.Name))
			if c.Prefix != nil {
				c.Prefix = &PrefixRule{Prefixes: upperAll(c.Prefix.Prefixes)}
			}
			if c.Text != nil {
				c.Text = &SubstringRule{Fields: c.Text.Fields, Substrings: lowerAll(c.Text.Substrings)}
			}
			categories = append(categories, c)
		}
		spec.Categories = categories

		t.order = append(t.order, spec.Tab)
		t.tabs[spec.Tab] = &spec
	}

	return t
}

func upperAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = domain.Upper(strings.TrimSpace(v))
	}
	return out
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = domain.Lower(strings.TrimSpace(v))
	}
	return out
}

// Tabs returns the tab specs in display order.
func (t *Taxonomy) Tabs() []TabSpec {
	out := make([]TabSpec, 0, len(t.order))
	for _, tab := range t.order {
		out = append(out, *t.tabs[tab])
	}
	return out
}

// Category looks a category up by name within a tab.
func (t *Taxonomy) Category(tab domain.Tab, name string) (Category, bool) {
	spec, ok := t.tabs[tab]
	if !ok {
		return Category{}, false
	}

	name = domain.Lower(strings.TrimSpace(name))
	for _, c := range spec.Categories {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// Prefixes returns the valid SKU prefixes for a tab, narrowed by the
// category when it is a prefix category.
func (t *Taxonomy) Prefixes(tab domain.Tab, category string) []string {
	spec, ok := t.tabs[tab]
	if !ok {
		return nil
	}

	if !domain.IsAll(category) {
		if c, ok := t.Category(tab, category); ok && c.Prefix != nil {
			return c.Prefix.Prefixes
		}
	}
	return spec.Prefixes
}

// Synonyms returns the substrings a category value stands for. Unknown
// values stand for themselves.
func (t *Taxonomy) Synonyms(tab domain.Tab, value string) []string {
	if c, ok := t.Category(tab, value); ok && c.Text != nil {
		return c.Text.Substrings
	}
	return []string{domain.Lower(strings.TrimSpace(value))}
}

// TypeFilterRedundant reports whether the active category already settles
// the product type for this tab.
func (t *Taxonomy) TypeFilterRedundant(tab domain.Tab, category string) bool {
	spec, ok := t.tabs[tab]
	return ok && spec.CategoryCoversType && !domain.IsAll(category)
}
