package export

import (
	"fmt"
	"io"

	"cnctools/catalog/internal/view"

	"github.com/xuri/excelize/v2"
)

const SheetName = "Katalog"

var Headers = []string{"SKU", "Nazwa", "Producent", "Typ", "Średnica", "Stan", "Cena"}

// WriteXLSX writes rows as a single-sheet workbook.
func WriteXLSX(w io.Writer, rows []view.Row) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", SheetName)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, header := range Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(SheetName, cell, header)
		f.SetCellStyle(SheetName, cell, cell, headerStyle)

		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(SheetName, colName, colName, 20)
	}
	f.SetColWidth(SheetName, "B", "B", 50)

	for r, row := range rows {
		values := []string{row.SKU, row.Title, row.Manufacturer, row.Type, row.Diameter, row.Stock, row.Price}
		for c, value := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(SheetName, cell, value); err != nil {
				return fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
