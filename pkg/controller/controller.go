// Package controller runs the terminal GUI: a dashboard of today's and
// upcoming deadlines, a management table with add/edit/delete forms, and a
// tools page carrying the store reset. It mediates between the store, the
// reminder package and the tview widget tree.
package controller

import (
	"context"
	"sort"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"

	"github.com/ChumaSuey/TaxReminder/pkg/db"
)

const (
	pageDashboard    = "dashboard"
	pageManage       = "manage"
	pageTools        = "tools"
	pageForm         = "form"
	pageCategoryForm = "categoryForm"
	pageConfirm      = "confirm"
)

// Controller mediates between the store and the view.
type Controller struct {
	ctx     context.Context
	db      *db.Database
	horizon int

	app   *tview.Application
	pages *tview.Pages

	dashboard   *tview.TextView
	manageTable *tview.Table
	content     *entryContent

	form          *tview.Form
	formStatus    *tview.TextView
	categoryField *tview.DropDown
	monthField    *tview.InputField
	dayField      *tview.InputField
	descField     *tview.InputField

	categoryForm       *tview.Form
	categoryFormStatus *tview.TextView
	categoryNameField  *tview.DropDown
	categoryDescField  *tview.InputField

	categories []*db.Category
	selected   *db.Entry
	// editing is the entry behind the open form; nil means the form adds.
	editing *db.Entry

	events       map[tcell.Key]KeyEvent
	manageEvents map[tcell.Key]KeyEvent
	toolsEvents  map[tcell.Key]KeyEvent

	// now is the reference date for the dashboard; tests pin it.
	now func() time.Time
}

// KeyEvent defines an event associated with a keypress.
type KeyEvent struct {
	Description string
	Action      func(*tcell.EventKey) *tcell.EventKey
}

// NewController creates a new Controller to run the app.
func NewController(ctx context.Context, database *db.Database, horizon int) (*Controller, error) {
	c := Controller{
		ctx:     ctx,
		db:      database,
		horizon: horizon,
		app:     tview.NewApplication(),
		now:     time.Now,
	}

	c.initEvents()

	return &c, nil
}

// Go builds the widget tree and runs the app until the user exits.
func (c *Controller) Go() error {
	c.pages = tview.NewPages()

	if err := c.reload(); err != nil {
		return err
	}

	c.pages.AddPage(pageName(pageDashboard), c.getDashboardGrid(), true, true)
	c.pages.AddPage(pageName(pageManage), c.getManageGrid(), true, false)
	c.pages.AddPage(pageName(pageTools), c.getToolsGrid(), true, false)
	c.pages.AddPage(pageName(pageForm), c.getFormGrid(), true, false)
	c.pages.AddPage(pageName(pageCategoryForm), c.getCategoryFormGrid(), true, false)

	c.refreshDashboard()

	c.app.SetInputCapture(c.handleKeys(c.events))

	return c.app.SetRoot(c.pages, true).SetFocus(c.pages).Run()
}

func pageName(name string) string {
	return name + "-page"
}

// reload pulls categories and deadlines out of the store and re-sorts the
// manage table rows by category, then month, then day.
func (c *Controller) reload() error {
	categories, err := c.db.Categories(c.ctx)
	if err != nil {
		return err
	}

	entries, err := c.db.AllDeadlines(c.ctx)
	if err != nil {
		return err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Category != entries[j].Category {
			return entries[i].Category < entries[j].Category
		}

		if entries[i].Month != entries[j].Month {
			return entries[i].Month < entries[j].Month
		}

		return entries[i].Day < entries[j].Day
	})

	c.categories = categories

	if c.content == nil {
		c.content = &entryContent{}
	}

	c.content.entries = entries
	c.selected = nil

	if c.manageTable != nil && len(entries) > 0 {
		c.manageTable.Select(1, 0)
		c.setCurrentRow(1, 0)
	}

	return nil
}

func (c *Controller) getEntryForRow(row int) *db.Entry {
	// adjust for the header row
	if idx := row - 1; idx >= 0 && idx < len(c.content.entries) {
		return &c.content.entries[idx]
	}

	return nil
}

// when the row selection changes, update the selected entry.
func (c *Controller) setCurrentRow(row, col int) {
	c.selected = c.getEntryForRow(row)

	if c.selected != nil {
		log.Debug().Int("row", row).Int("id", c.selected.ID).Msg("selection changed")
	}
}

func (c *Controller) handleKeys(events map[tcell.Key]KeyEvent) func(evt *tcell.EventKey) *tcell.EventKey {
	return func(evt *tcell.EventKey) *tcell.EventKey {
		if k, ok := events[AsKey(evt)]; ok {
			return k.Action(evt)
		}

		return evt
	}
}

func (c *Controller) showPage(name string) {
	switch name {
	case pageDashboard:
		c.refreshDashboard()
		c.app.SetInputCapture(c.handleKeys(c.events))
	case pageManage:
		if err := c.reload(); err != nil {
			log.Err(err).Msg("error reloading deadlines")
		}

		c.app.SetInputCapture(c.handleKeys(c.manageEvents))
	case pageTools:
		c.app.SetInputCapture(c.handleKeys(c.toolsEvents))
	}

	c.pages.SwitchToPage(pageName(name))
}
