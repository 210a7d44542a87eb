package controller

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/ChumaSuey/TaxReminder/pkg/display"
)

func (c *Controller) initEvents() {
	c.events = map[tcell.Key]KeyEvent{}
	c.manageEvents = map[tcell.Key]KeyEvent{}
	c.toolsEvents = map[tcell.Key]KeyEvent{}

	for _, events := range []map[tcell.Key]KeyEvent{c.events, c.manageEvents, c.toolsEvents} {
		c.initShowEvents(events)
		c.initExitEvent(events)
	}

	c.manageEvents[KeyA] = KeyEvent{
		Description: "Agregar fecha",
		Action:      c.getAddAction(),
	}

	c.manageEvents[KeyE] = KeyEvent{
		Description: "Editar fecha",
		Action:      c.getEditAction(),
	}

	c.manageEvents[KeyD] = KeyEvent{
		Description: "Eliminar fecha",
		Action:      c.getDeleteAction(),
	}

	c.toolsEvents[KeyE] = KeyEvent{
		Description: "Editar descripción de categoría",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.switchToCategoryForm()

			return key
		},
	}

	c.toolsEvents[KeyR] = KeyEvent{
		Description: "Restablecer base de datos",
		Action:      c.getResetAction(),
	}
}

func (c *Controller) initExitEvent(events map[tcell.Key]KeyEvent) {
	events[KeyQ] = KeyEvent{
		Description: "Salir",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			log.Info().Msg("terminating application")

			c.app.Stop()

			return key
		},
	}
}

func (c *Controller) getShowAction(page string) func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		c.showPage(page)

		return key
	}
}

func (c *Controller) initShowEvents(events map[tcell.Key]KeyEvent) {
	events[KeyI] = KeyEvent{
		Description: "Ver Inicio",
		Action:      c.getShowAction(pageDashboard),
	}

	events[KeyG] = KeyEvent{
		Description: "Ver Gestionar Fechas",
		Action:      c.getShowAction(pageManage),
	}

	events[KeyT] = KeyEvent{
		Description: "Ver Herramientas",
		Action:      c.getShowAction(pageTools),
	}
}

func (c *Controller) getAddAction() func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		c.switchToForm(nil)

		return key
	}
}

func (c *Controller) getEditAction() func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		if c.selected == nil {
			return key
		}

		c.switchToForm(c.selected)

		return key
	}
}

func (c *Controller) getDeleteAction() func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		if c.selected == nil {
			return key
		}

		selected := *c.selected

		c.confirmModal("¿Estás seguro de que deseas eliminar esta fecha?", pageManage, func() {
			deleted, err := c.db.DeleteDeadline(c.ctx, selected.ID)
			if err != nil {
				log.Err(err).Int("id", selected.ID).Msg("error deleting deadline")

				return
			}

			if !deleted {
				log.Warn().Int("id", selected.ID).Msg("deadline was already gone")
			}
		})

		return key
	}
}

func (c *Controller) getResetAction() func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		message := "ADVERTENCIA: Esto eliminará TODAS las fechas y categorías. ¿Continuar?"

		c.confirmModal(message, pageDashboard, func() {
			if err := c.db.Reset(c.ctx); err != nil {
				log.Err(err).Msg("error resetting the database")

				return
			}

			c.seedDefaults()
		})

		return key
	}
}

// seedDefaults puts the default categories back after a reset so the add
// form still has something to offer.
func (c *Controller) seedDefaults() {
	for _, category := range display.DefaultCategories {
		if _, err := c.db.AddCategory(c.ctx, category.Name, category.Description); err != nil {
			log.Err(err).Str("category", category.Name).Msg("error re-seeding category")
		}
	}
}
