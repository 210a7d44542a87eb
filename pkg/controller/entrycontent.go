package controller

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/ChumaSuey/TaxReminder/pkg/db"
	"github.com/ChumaSuey/TaxReminder/pkg/display"
)

const descColumnRatio = 2

// entryContent implements tview.TableContent, which tview.Table uses to
// update data, over the sorted list of all deadlines.
type entryContent struct {
	tview.TableContentReadOnly
	entries []db.Entry
}

// GetCell returns the cell at the given position or nil if no cell.
func (e *entryContent) GetCell(row, col int) *tview.TableCell {
	if row == 0 {
		switch col {
		case 0:
			return tview.NewTableCell("fecha").SetExpansion(1).
				SetTextColor(tcell.ColorYellow).SetSelectable(false)
		case 1:
			return tview.NewTableCell("categoría").SetExpansion(1).
				SetTextColor(tcell.ColorYellow).SetSelectable(false)
		case 2:
			return tview.NewTableCell("descripción").SetExpansion(descColumnRatio).
				SetTextColor(tcell.ColorYellow).SetSelectable(false)
		}
	}

	if row-1 < 0 || row-1 >= len(e.entries) {
		return nil
	}

	entry := e.entries[row-1]

	switch col {
	case 0:
		date := fmt.Sprintf("%02d de %s", entry.Day, display.MonthName(entry.Month))

		return tview.NewTableCell(date).SetExpansion(1).SetReference(&entry)
	case 1:
		label := display.CategoryLabel(entry.Category, entry.CategoryDescription)

		return tview.NewTableCell(label).SetExpansion(1).SetTextColor(tcell.ColorGreen)
	case 2:
		return tview.NewTableCell(entry.Description).SetExpansion(descColumnRatio)
	}

	return nil
}

// GetRowCount returns the number of rows in the table.
func (e *entryContent) GetRowCount() int {
	return len(e.entries) + 1
}

// GetColumnCount returns the number of columns in the table.
func (e *entryContent) GetColumnCount() int {
	return 3
}
