package controller

import (
	"fmt"
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"

	"github.com/ChumaSuey/TaxReminder/pkg/display"
	"github.com/ChumaSuey/TaxReminder/pkg/reminder"
)

func (c *Controller) getDashboardGrid() *tview.Grid {
	c.dashboard = tview.NewTextView().SetDynamicColors(true)
	c.dashboard.SetScrollable(true)

	grid := tview.NewGrid().SetBorders(true)
	grid.AddItem(c.getHeader("Inicio", c.events), 0, 0, 1, 1, 0, 0, false)
	grid.AddItem(c.dashboard, 1, 0, 1, 1, 0, 0, true)

	return grid
}

func (c *Controller) getManageGrid() *tview.Grid {
	c.manageTable = tview.NewTable().SetBorders(false)
	c.manageTable.SetContent(c.content)
	c.manageTable.SetSelectable(true, false)
	c.manageTable.SetSelectionChangedFunc(c.setCurrentRow)

	if len(c.content.entries) > 0 {
		c.manageTable.Select(1, 0).SetFixed(1, 0)
	}

	grid := tview.NewGrid().SetBorders(true)
	grid.AddItem(c.getHeader("Gestionar Fechas", c.manageEvents), 0, 0, 1, 1, 0, 0, false)
	grid.AddItem(c.manageTable, 1, 0, 1, 1, 0, 0, true)

	return grid
}

func (c *Controller) getToolsGrid() *tview.Grid {
	text := tview.NewTextView().SetDynamicColors(true)
	text.SetText("[red]Zona de peligro\n\n" +
		"[white]Restablecer la base de datos elimina TODAS las fechas y categorías\n" +
		"y vuelve a crear las categorías predeterminadas.")

	grid := tview.NewGrid().SetBorders(true)
	grid.AddItem(c.getHeader("Herramientas", c.toolsEvents), 0, 0, 1, 1, 0, 0, false)
	grid.AddItem(text, 1, 0, 1, 1, 0, 0, true)

	return grid
}

// getHeader returns the header used by each page: the page title followed by
// its keyboard shortcuts, sorted alphabetically.
func (c *Controller) getHeader(title string, events map[tcell.Key]KeyEvent) *tview.Table {
	table := tview.NewTable().SetBorders(false).SetSelectable(false, false)

	row := 0
	table.SetCell(row, 0, tview.NewTableCell(fmt.Sprintf("[yellow]%s", title)))
	row++

	shortcuts := []string{}

	for key, event := range events {
		shortcuts = append(shortcuts, fmt.Sprintf("[orange]<%s>[white] %s", KeyName(key), event.Description))
	}

	sort.Strings(shortcuts)

	for _, text := range shortcuts {
		table.SetCell(row, 0, tview.NewTableCell(text).SetExpansion(1))
		row++
	}

	return table
}

// refreshDashboard rebuilds the today/upcoming cards from the store.
func (c *Controller) refreshDashboard() {
	entries, err := c.db.AllDeadlines(c.ctx)
	if err != nil {
		log.Err(err).Msg("error loading deadlines for the dashboard")
		c.dashboard.SetText(fmt.Sprintf("[red]❌ Error al acceder a la base de datos: %s", err))

		return
	}

	report, err := reminder.BuildReport(c.now(), c.horizon, entries)
	if err != nil {
		log.Err(err).Msg("error building the deadline report")
		c.dashboard.SetText(fmt.Sprintf("[red]❌ Error en los datos almacenados: %s", err))

		return
	}

	if report.Empty() {
		c.dashboard.SetText(fmt.Sprintf(
			"[green]✅ No hay vencimientos para hoy ni para los próximos %d días.", c.horizon))

		return
	}

	text := ""

	if len(report.Today) > 0 {
		text += "[yellow]🔔 ¡VENCIMIENTOS PARA HOY!\n"

		for _, item := range report.Today {
			text += dashboardCard(item, "")
		}
	}

	if len(report.Upcoming) > 0 {
		text += "\n[blue]🔔 PRÓXIMOS VENCIMIENTOS\n"

		for _, item := range report.Upcoming {
			text += dashboardCard(item, fmt.Sprintf(" (%s)", display.DaysText(item.DaysUntil)))
		}
	}

	c.dashboard.SetText(text)
}

func dashboardCard(item reminder.Item, suffix string) string {
	entry := item.Entry

	card := fmt.Sprintf("\n[white]• %s\n", entry.CategoryDescription)
	card += fmt.Sprintf("  📅 %d de %s%s\n", entry.Day, display.MonthName(entry.Month), suffix)

	if entry.Description != "" {
		card += fmt.Sprintf("  📝 %s\n", entry.Description)
	}

	return card
}

// confirmModal shows a yes/no modal and runs onConfirm when the user accepts.
func (c *Controller) confirmModal(message, page string, onConfirm func()) {
	modal := tview.NewModal().
		SetText(message).
		AddButtons([]string{"Sí", "No"}).
		SetDoneFunc(func(index int, label string) {
			c.pages.RemovePage(pageName(pageConfirm))

			if label == "Sí" {
				onConfirm()
			}

			c.showPage(page)
		})

	c.app.SetInputCapture(nil)
	c.pages.AddPage(pageName(pageConfirm), modal, true, true)
}
