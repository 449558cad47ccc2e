package tasks

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"menuapi/domain/entities"
)

// writeWorkbook lays the hierarchy out as a staircase: each menu row is
// followed by its submenus one column to the right, each submenu by its
// dishes one column further, and the next sibling resumes one row below the
// last descendant row. Index numbering restarts at 1 per parent. The layout
// matches the files produced by earlier versions of this exporter, so
// existing consumers keep working.
func writeWorkbook(menus []entities.MenuNode) (*excelize.File, error) {
	book := excelize.NewFile()
	sheet := book.GetSheetName(0)

	menuRow, menuCol := 1, 1
	for menuIdx, menu := range menus {
		if err := setRow(book, sheet, menuRow, menuCol,
			menuIdx+1, menu.Title, menu.Description); err != nil {
			return nil, err
		}

		submenuRow, submenuCol := menuRow+1, menuCol+1
		for submenuIdx, submenu := range menu.Submenus {
			if err := setRow(book, sheet, submenuRow, submenuCol,
				submenuIdx+1, submenu.Title, submenu.Description); err != nil {
				return nil, err
			}

			dishRow, dishCol := submenuRow+1, submenuCol+1
			for dishIdx, dish := range submenu.Dishes {
				if err := setRow(book, sheet, dishRow, dishCol,
					dishIdx+1, dish.Title, dish.Description, dish.Price.StringFixed(2)); err != nil {
					return nil, err
				}
				dishRow++
			}
			submenuRow = dishRow
		}
		menuRow = submenuRow
	}

	return book, nil
}

// setRow writes values into consecutive cells starting at (row, col).
func setRow(book *excelize.File, sheet string, row, col int, values ...any) error {
	for i, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+i, row)
		if err != nil {
			return fmt.Errorf("resolve cell (%d,%d): %w", col+i, row, err)
		}
		if err := book.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("write cell %s: %w", cell, err)
		}
	}
	return nil
}
