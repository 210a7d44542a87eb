package controller

import (
	"fmt"
	"strconv"

	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"

	"github.com/ChumaSuey/TaxReminder/pkg/db"
	"github.com/ChumaSuey/TaxReminder/pkg/display"
	"github.com/ChumaSuey/TaxReminder/pkg/reminder"
)

func (c *Controller) getFormGrid() *tview.Grid {
	c.initForm()

	c.formStatus = tview.NewTextView().SetDynamicColors(true)

	grid := tview.NewGrid().SetBorders(true)
	grid.AddItem(c.form, 0, 0, 1, 1, 0, 0, true)
	grid.AddItem(c.formStatus, 1, 0, 1, 1, 0, 0, false)

	return grid
}

func (c *Controller) initForm() {
	monthMax := 2
	dayMax := 2
	descriptionMax := 200

	c.form = tview.NewForm().
		AddDropDown("Categoría", []string{}, -1, nil).
		AddInputField("Mes (1-12)", "", monthMax, tview.InputFieldInteger, nil).
		AddInputField("Día (1-31)", "", dayMax, tview.InputFieldInteger, nil).
		AddInputField("Descripción", "", descriptionMax, nil, nil)

	c.categoryField, _ = c.form.GetFormItemByLabel("Categoría").(*tview.DropDown)
	c.monthField, _ = c.form.GetFormItemByLabel("Mes (1-12)").(*tview.InputField)
	c.dayField, _ = c.form.GetFormItemByLabel("Día (1-31)").(*tview.InputField)
	c.descField, _ = c.form.GetFormItemByLabel("Descripción").(*tview.InputField)

	c.form.AddButton("Guardar", c.saveForm)
	c.form.AddButton("Cancelar", func() {
		c.showPage(pageManage)
	})

	c.form.SetCancelFunc(func() {
		c.showPage(pageManage)
	})
}

// switchToForm opens the add/edit form; a nil entry means a new deadline.
func (c *Controller) switchToForm(entry *db.Entry) {
	c.editing = entry

	title := "Nueva Fecha"
	if entry != nil {
		title = "Editar Fecha"
	}

	c.form.SetTitle(title).SetBorder(true)
	c.formStatus.SetText("")

	c.updateCategoryOptions()

	if entry != nil {
		c.selectCategoryOption(entry.Category)
		c.monthField.SetText(strconv.Itoa(entry.Month))
		c.dayField.SetText(strconv.Itoa(entry.Day))
		c.descField.SetText(entry.Description)
	} else {
		c.monthField.SetText("")
		c.dayField.SetText("")
		c.descField.SetText("")
	}

	c.form.SetFocus(0)

	c.app.SetInputCapture(nil)
	c.pages.SwitchToPage(pageName(pageForm))
}

func (c *Controller) updateCategoryOptions() {
	options := []string{}

	for _, category := range c.categories {
		options = append(options, display.CategoryLabel(category.Name, category.Description))
	}

	c.categoryField.SetOptions(options, nil)
	c.categoryField.SetCurrentOption(-1)
}

func (c *Controller) selectCategoryOption(name string) {
	for i, category := range c.categories {
		if category.Name == name {
			c.categoryField.SetCurrentOption(i)

			return
		}
	}
}

func (c *Controller) selectedCategory() *db.Category {
	index, _ := c.categoryField.GetCurrentOption()
	if index < 0 || index >= len(c.categories) {
		return nil
	}

	return c.categories[index]
}

func (c *Controller) saveForm() {
	category := c.selectedCategory()
	if category == nil {
		c.formStatus.SetText("[red]❌ Selecciona una categoría.")

		return
	}

	month, err := strconv.Atoi(c.monthField.GetText())
	if err != nil {
		c.formStatus.SetText("[red]❌ El mes debe ser un número entre 1 y 12.")

		return
	}

	day, err := strconv.Atoi(c.dayField.GetText())
	if err != nil {
		c.formStatus.SetText("[red]❌ El día debe ser un número entre 1 y 31.")

		return
	}

	if err := reminder.ValidateMonthDay(month, day); err != nil {
		c.formStatus.SetText(fmt.Sprintf(
			"[red]❌ Fecha inválida: no existe el %d de %s.", day, display.MonthName(month)))

		return
	}

	description := c.descField.GetText()

	var (
		saved    bool
		storeErr error
	)

	if c.editing == nil {
		saved, storeErr = c.db.AddDeadline(c.ctx, category.Name, month, day, description)
	} else {
		// the form shows the stored description, so a cleared field really
		// means clear it
		saved, storeErr = c.db.EditDeadline(c.ctx, c.editing.ID, month, day, &description)
	}

	if storeErr != nil {
		log.Err(storeErr).Msg("error saving the deadline")
		c.formStatus.SetText(fmt.Sprintf("[red]❌ Error al guardar: %s", storeErr))

		return
	}

	if !saved {
		c.formStatus.SetText("[red]❌ Ya existe una fecha con ese día y mes en esta categoría.")

		return
	}

	c.showPage(pageManage)
}

func (c *Controller) getCategoryFormGrid() *tview.Grid {
	c.initCategoryForm()

	c.categoryFormStatus = tview.NewTextView().SetDynamicColors(true)

	grid := tview.NewGrid().SetBorders(true)
	grid.AddItem(c.categoryForm, 0, 0, 1, 1, 0, 0, true)
	grid.AddItem(c.categoryFormStatus, 1, 0, 1, 1, 0, 0, false)

	return grid
}

func (c *Controller) initCategoryForm() {
	descriptionMax := 200

	c.categoryForm = tview.NewForm().
		AddDropDown("Categoría", []string{}, -1, nil).
		AddInputField("Descripción", "", descriptionMax, nil, nil)

	c.categoryNameField, _ = c.categoryForm.GetFormItemByLabel("Categoría").(*tview.DropDown)
	c.categoryDescField, _ = c.categoryForm.GetFormItemByLabel("Descripción").(*tview.InputField)

	c.categoryForm.SetTitle("Editar Descripción de Categoría").SetBorder(true)

	c.categoryForm.AddButton("Guardar", c.saveCategoryForm)
	c.categoryForm.AddButton("Cancelar", func() {
		c.showPage(pageTools)
	})

	c.categoryForm.SetCancelFunc(func() {
		c.showPage(pageTools)
	})
}

// switchToCategoryForm opens the tools-page form that maintains category
// display descriptions. The description field follows the dropdown selection.
func (c *Controller) switchToCategoryForm() {
	categories, err := c.db.Categories(c.ctx)
	if err != nil {
		log.Err(err).Msg("error loading categories")

		return
	}

	c.categories = categories
	c.categoryFormStatus.SetText("")

	options := []string{}

	for _, category := range categories {
		options = append(options, category.Name)
	}

	c.categoryNameField.SetOptions(options, func(text string, index int) {
		if index >= 0 && index < len(c.categories) {
			c.categoryDescField.SetText(c.categories[index].Description)
		}
	})

	if len(categories) > 0 {
		c.categoryNameField.SetCurrentOption(0)
		c.categoryDescField.SetText(categories[0].Description)
	} else {
		c.categoryNameField.SetCurrentOption(-1)
		c.categoryDescField.SetText("")
	}

	c.categoryForm.SetFocus(0)

	c.app.SetInputCapture(nil)
	c.pages.SwitchToPage(pageName(pageCategoryForm))
}

func (c *Controller) saveCategoryForm() {
	index, _ := c.categoryNameField.GetCurrentOption()
	if index < 0 || index >= len(c.categories) {
		c.categoryFormStatus.SetText("[red]❌ Selecciona una categoría.")

		return
	}

	category := c.categories[index]

	updated, err := c.db.SetCategoryDescription(c.ctx, category.Name, c.categoryDescField.GetText())
	if err != nil {
		log.Err(err).Str("category", category.Name).Msg("error updating the category description")
		c.categoryFormStatus.SetText(fmt.Sprintf("[red]❌ Error al guardar: %s", err))

		return
	}

	if !updated {
		c.categoryFormStatus.SetText("[red]❌ La categoría ya no existe.")

		return
	}

	c.showPage(pageTools)
}
