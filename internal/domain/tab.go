package domain

import "strings"

type Tab string

func (t Tab) String() string {
	return string(t)
}

const (
	TabWiertla Tab = "wiertla" // Drills
	TabPlytki  Tab = "plytki"  // Inserts
	TabKoronki Tab = "koronki" // Crowns
)

var Tabs = []Tab{
	TabWiertla,
	TabPlytki,
	TabKoronki,
}

// CategoryAll is the sub-category value that disables category filtering.
const CategoryAll = "wszystkie"

func (t Tab) GetTabName() string {
	switch t {
	case TabWiertla:
		return "Wiertła"
	case TabPlytki:
		return "Płytki"
	case TabKoronki:
		return "Koronki"
	default:
		return "Unknown"
	}
}

func (t Tab) Valid() bool {
	for _, tab := range Tabs {
		if tab == t {
			return true
		}
	}
	return false
}

// ParseTab accepts tab names case-insensitively.
func ParseTab(s string) (Tab, bool) {
	tab := Tab(strings.ToLower(strings.TrimSpace(s)))
	if !tab.Valid() {
		return "", false
	}
	return tab, true
}

// IsAll reports whether a category or filter value means "no filter".
func IsAll(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, CategoryAll)
}
