package controller

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/rivo/tview"
	"github.com/stretchr/testify/assert"

	"github.com/ChumaSuey/TaxReminder/pkg/db"
	"github.com/ChumaSuey/TaxReminder/pkg/display"
)

// getController builds a controller over a fresh temp database with the
// widget tree assembled the way Go does it, minus running the app.
func getController(t *testing.T, assert *assert.Assertions) (*Controller, *db.Database) {
	t.Helper()

	tempFile, err := os.CreateTemp(t.TempDir(), "test_controller*.sqlite")
	assert.Nil(err)

	database, err := db.NewDatabase(context.Background(), tempFile.Name())
	assert.NotNil(database)
	assert.Nil(err)

	for _, category := range display.DefaultCategories {
		added, err := database.AddCategory(context.Background(), category.Name, category.Description)
		assert.Nil(err)
		assert.True(added)
	}

	c, err := NewController(context.Background(), database, 2)
	assert.Nil(err)

	c.pages = tview.NewPages()
	assert.Nil(c.reload())

	c.pages.AddPage(pageName(pageDashboard), c.getDashboardGrid(), true, true)
	c.pages.AddPage(pageName(pageManage), c.getManageGrid(), true, false)
	c.pages.AddPage(pageName(pageTools), c.getToolsGrid(), true, false)
	c.pages.AddPage(pageName(pageForm), c.getFormGrid(), true, false)
	c.pages.AddPage(pageName(pageCategoryForm), c.getCategoryFormGrid(), true, false)

	return c, database
}

func pinned(year, month, day int) func() time.Time {
	return func() time.Time {
		return time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.Local)
	}
}

func TestRefreshDashboardDueToday(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	c, database := getController(t, assert)

	added, err := database.AddDeadline(context.Background(), "first_fortnight", 9, 26, "IVA")
	assert.Nil(err)
	assert.True(added)

	c.now = pinned(2024, 9, 26)
	c.refreshDashboard()

	text := c.dashboard.GetText(true)
	assert.Contains(text, "¡VENCIMIENTOS PARA HOY!")
	assert.Contains(text, "Impuestos del 1-15 del mes")
	assert.Contains(text, "IVA")
}

func TestRefreshDashboardUpcoming(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	c, database := getController(t, assert)

	added, err := database.AddDeadline(context.Background(), "first_fortnight", 9, 26, "IVA")
	assert.Nil(err)
	assert.True(added)

	c.now = pinned(2024, 9, 24)
	c.refreshDashboard()

	text := c.dashboard.GetText(true)
	assert.Contains(text, "PRÓXIMOS VENCIMIENTOS")
	assert.Contains(text, "en 2 días")
	assert.NotContains(text, "¡VENCIMIENTOS PARA HOY!")
}

func TestRefreshDashboardEmpty(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	c, _ := getController(t, assert)

	c.now = pinned(2024, 9, 26)
	c.refreshDashboard()

	assert.Contains(c.dashboard.GetText(true), "No hay vencimientos")
}

func TestCategoryFormUpdatesDescription(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	c, database := getController(t, assert)

	c.switchToCategoryForm()

	// the form preselects the first category and shows its description
	index, _ := c.categoryNameField.GetCurrentOption()
	assert.Equal(0, index)
	assert.Equal("Impuestos del 1-15 del mes", c.categoryDescField.GetText())

	c.categoryDescField.SetText("Impuestos de la primera quincena")
	c.saveCategoryForm()

	categories, err := database.Categories(context.Background())
	assert.Nil(err)
	assert.Equal("Impuestos de la primera quincena", categories[0].Description)

	// the other category keeps its description
	assert.Equal("Impuestos del 16 a fin de mes", categories[1].Description)
}

func TestCategoryFormNoSelection(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	c, database := getController(t, assert)

	c.switchToCategoryForm()
	c.categoryNameField.SetCurrentOption(-1)
	c.categoryDescField.SetText("da igual")
	c.saveCategoryForm()

	assert.Contains(c.categoryFormStatus.GetText(true), "Selecciona una categoría")

	categories, err := database.Categories(context.Background())
	assert.Nil(err)
	assert.Equal("Impuestos del 1-15 del mes", categories[0].Description)
}
