package view

import (
	"fmt"
	"math"
	"strconv"

	"cnctools/catalog/internal/catalog"
	"cnctools/catalog/internal/domain"
)

const missing = "-"

// Row is one rendered table line.
type Row struct {
	ID           string `json:"id"`
	SKU          string `json:"sku"`
	Title        string `json:"title"`
	Manufacturer string `json:"manufacturer"`
	Type         string `json:"type"`
	Diameter     string `json:"diameter"`
	Stock        string `json:"stock"`
	Price        string `json:"price"`
}

// Controls is the control state every view shows for one result.
type Controls struct {
	ActiveTab        domain.Tab     `json:"active_tab"`
	TabName          string         `json:"tab_name"`
	SelectedCategory string         `json:"selected_category"`
	Filters          domain.Filters `json:"filters"`
	Page             int            `json:"page"`
	TotalPages       int            `json:"total_pages"`
	TotalCount       int            `json:"total_count"`
	PrevDisabled     bool           `json:"prev_disabled"`
	NextDisabled     bool           `json:"next_disabled"`
	CountLabel       string         `json:"count_label"`
	Empty            bool           `json:"empty"`
}

type ViewModel struct {
	ID         string   `json:"id"`
	Fullscreen bool     `json:"fullscreen"`
	Rows       []Row    `json:"rows"`
	Controls   Controls `json:"controls"`
}

// Views holds the primary table and its fullscreen copy.
type Views struct {
	Primary    ViewModel `json:"primary"`
	Fullscreen ViewModel `json:"fullscreen"`
}

// Sync builds both views from one page so they can never disagree.
func Sync(page domain.Page, st domain.FilterState) Views {
	rows := make([]Row, 0, len(page.Items))
	for _, p := range page.Items {
		rows = append(rows, NewRow(p))
	}

	controls := Controls{
		ActiveTab:        st.ActiveTab,
		TabName:          st.ActiveTab.GetTabName(),
		SelectedCategory: st.SelectedCategory,
		Filters:          st.Filters,
		Page:             page.Page,
		TotalPages:       page.TotalPages,
		TotalCount:       page.TotalCount,
		PrevDisabled:     page.Page <= 1,
		NextDisabled:     page.Page >= page.TotalPages,
		CountLabel:       fmt.Sprintf("%d-%d of %d", page.StartIndex, page.EndIndex, page.TotalCount),
		Empty:            page.Empty(),
	}

	return Views{
		Primary:    ViewModel{ID: "catalog-table", Rows: rows, Controls: controls},
		Fullscreen: ViewModel{ID: "catalog-table-fullscreen", Fullscreen: true, Rows: rows, Controls: controls},
	}
}

func NewRow(p domain.Product) Row {
	row := Row{
		ID:           p.ID.String(),
		SKU:          domain.Resolve(p, domain.SKUKeys...),
		Title:        domain.Resolve(p, domain.KeyTitle),
		Manufacturer: domain.ResolveOr(p, missing, domain.ManufacturerKeys...),
		Type:         domain.ResolveOr(p, missing, domain.KeyCustomTyp),
		Diameter:     missing,
		Stock:        strconv.FormatFloat(catalog.Stock(p), 'f', -1, 64),
		Price:        missing,
	}

	if d := catalog.Diameter(p); !math.IsInf(d, 1) {
		row.Diameter = strconv.FormatFloat(d, 'f', -1, 64)
	}
	if price, ok := p.PriceDecimal(); ok {
		row.Price = price.StringFixed(2)
	}

	return row
}
