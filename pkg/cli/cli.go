// Package cli implements the interactive menu and the report rendering used
// by both command-line front-ends. It talks to the store and the reminder
// package only; no calendar arithmetic happens here.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ChumaSuey/TaxReminder/pkg/db"
	"github.com/ChumaSuey/TaxReminder/pkg/display"
	"github.com/ChumaSuey/TaxReminder/pkg/reminder"
)

// CLI runs the interactive numbered menu over a store. Input is read line by
// line; typing "q" at any prompt cancels the current action.
type CLI struct {
	db      *db.Database
	horizon int
	in      *bufio.Scanner
	out     io.Writer

	// Now is the reference date for reports; tests pin it.
	Now func() time.Time
}

// New builds a CLI reading from in and writing to out, reporting deadlines
// within the given horizon in days.
func New(database *db.Database, horizon int, in io.Reader, out io.Writer) *CLI {
	return &CLI{
		db:      database,
		horizon: horizon,
		in:      bufio.NewScanner(in),
		out:     out,
		Now:     time.Now,
	}
}

// Run shows the menu until the user exits or input ends.
func (c *CLI) Run(ctx context.Context) {
	for {
		fmt.Fprintf(c.out, "\n📅 Recordatorio de Impuestos\n")
		fmt.Fprintln(c.out, "1. Ver vencimientos de hoy")
		fmt.Fprintln(c.out, "2. Agregar nueva fecha de vencimiento")
		fmt.Fprintln(c.out, "3. Listar todas las fechas de vencimiento")
		fmt.Fprintln(c.out, "4. Editar o eliminar fechas")
		fmt.Fprintln(c.out, "5. Confirmar pago del impuesto")
		fmt.Fprintln(c.out, "6. Limpiar base de datos")
		fmt.Fprintln(c.out, "7. Salir")

		choice, ok := c.readLine("\nSeleccione una opción: ")
		if !ok {
			return
		}

		var err error

		switch choice {
		case "1":
			err = c.CheckToday(ctx)
		case "2":
			err = c.addDeadline(ctx)
		case "3":
			err = c.viewDeadlines(ctx)
		case "4":
			err = c.editOrDelete(ctx)
		case "5":
			err = c.confirmPayment(ctx)
		case "6":
			err = c.resetStore(ctx)
		case "7":
			fmt.Fprintln(c.out, "\n¡Hasta luego! 👋")

			return
		default:
			fmt.Fprintln(c.out, "\n❌ Opción no válida. Por favor, intente de nuevo.")
		}

		if err != nil {
			log.Err(err).Msg("operation failed")
			fmt.Fprintf(c.out, "\n❌ Ocurrió un error: %s\n", err)
		}
	}
}

// CheckToday prints the deadlines due today or within the horizon.
func (c *CLI) CheckToday(ctx context.Context) error {
	entries, err := c.db.AllDeadlines(ctx)
	if err != nil {
		return err
	}

	report, err := reminder.BuildReport(c.Now(), c.horizon, entries)
	if err != nil {
		return err
	}

	if report.Empty() {
		fmt.Fprintf(c.out, "\n✅ No hay vencimientos para hoy ni para los próximos %d días.\n", c.horizon)

		return nil
	}

	RenderReport(c.out, report)

	return nil
}

func (c *CLI) addDeadline(ctx context.Context) error {
	fmt.Fprintf(c.out, "\n📅 Agregar Nueva Fecha de Vencimiento\n")
	fmt.Fprintln(c.out, "  (presiona 'q' en cualquier momento para cancelar)")

	category, err := c.pickCategory(ctx)
	if err != nil || category == nil {
		return err
	}

	month, ok := c.readIntInRange("\nIngresa el mes (1-12): ", 1, 12)
	if !ok {
		c.cancelled()

		return nil
	}

	day, ok := c.readIntInRange("Ingresa el día (1-31): ", 1, 31)
	if !ok {
		c.cancelled()

		return nil
	}

	if err := reminder.ValidateMonthDay(month, day); err != nil {
		fmt.Fprintf(c.out, "\n❌ Fecha inválida: no existe el %d de %s.\n", day, display.MonthName(month))

		return nil
	}

	description, ok := c.readLine("\nIngresa una descripción (opcional, presiona Enter para omitir): ")
	if !ok {
		c.cancelled()

		return nil
	}

	added, err := c.db.AddDeadline(ctx, category.Name, month, day, description)
	if err != nil {
		return err
	}

	if !added {
		fmt.Fprintln(c.out, "\n❌ Ya existe una fecha con ese día y mes en esta categoría.")

		return nil
	}

	fmt.Fprintln(c.out, "\n✅ ¡Fecha agregada correctamente!")

	return nil
}

func (c *CLI) viewDeadlines(ctx context.Context) error {
	category, err := c.pickCategory(ctx)
	if err != nil || category == nil {
		return err
	}

	deadlines, err := c.db.DeadlinesFor(ctx, category.Name)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "\n📅 %s\n", category.Description)
	fmt.Fprintln(c.out, strings.Repeat("-", 50))

	if len(deadlines) == 0 {
		fmt.Fprintln(c.out, "No se encontraron fechas en esta categoría.")

		return nil
	}

	// deadlines arrive ordered by (month, day); print a header per month
	currentMonth := 0

	for _, deadline := range deadlines {
		if deadline.Month != currentMonth {
			currentMonth = deadline.Month

			fmt.Fprintf(c.out, "\n%s:\n", display.MonthName(currentMonth))
			fmt.Fprintln(c.out, strings.Repeat("-", 20))
		}

		if deadline.Description != "" {
			fmt.Fprintf(c.out, "  %2d - %s\n", deadline.Day, deadline.Description)
		} else {
			fmt.Fprintf(c.out, "  %2d\n", deadline.Day)
		}
	}

	return nil
}

func (c *CLI) editOrDelete(ctx context.Context) error {
	fmt.Fprintf(c.out, "\n📝 Editar o Eliminar Fecha de Vencimiento\n")
	fmt.Fprintln(c.out, "  (presiona 'q' en cualquier momento para cancelar)")

	category, err := c.pickCategory(ctx)
	if err != nil || category == nil {
		return err
	}

	deadlines, err := c.db.DeadlinesFor(ctx, category.Name)
	if err != nil {
		return err
	}

	if len(deadlines) == 0 {
		fmt.Fprintf(c.out, "\n❌ No hay fechas en la categoría %s.\n", category.Description)

		return nil
	}

	fmt.Fprintf(c.out, "\n📅 Fechas en %s:\n", category.Description)

	for i, deadline := range deadlines {
		desc := ""
		if deadline.Description != "" {
			desc = " - " + deadline.Description
		}

		fmt.Fprintf(c.out, "%d. %02d de %s%s\n", i+1, deadline.Day, display.MonthName(deadline.Month), desc)
	}

	choice, ok := c.readIntInRange("\nSelecciona el número de la fecha a editar/eliminar: ", 1, len(deadlines))
	if !ok {
		c.cancelled()

		return nil
	}

	selected := deadlines[choice-1]

	fmt.Fprintln(c.out, "\n¿Qué acción deseas realizar?")
	fmt.Fprintln(c.out, "1. Editar fecha")
	fmt.Fprintln(c.out, "2. Eliminar fecha")
	fmt.Fprintln(c.out, "3. Cancelar")

	action, ok := c.readIntInRange("\nSelecciona una opción (1-3): ", 1, 3)
	if !ok || action == 3 {
		c.cancelled()

		return nil
	}

	if action == 1 {
		return c.editDeadline(ctx, selected)
	}

	return c.deleteDeadline(ctx, selected)
}

func (c *CLI) editDeadline(ctx context.Context, selected *db.Deadline) error {
	fmt.Fprintf(c.out, "\nEditando fecha: %02d/%02d\n", selected.Day, selected.Month)

	day, ok := c.readIntInRange(fmt.Sprintf("Nuevo día (actual: %d): ", selected.Day), 1, 31)
	if !ok {
		c.cancelled()

		return nil
	}

	month, ok := c.readIntInRange(fmt.Sprintf("Nuevo mes (1-12) (actual: %d): ", selected.Month), 1, 12)
	if !ok {
		c.cancelled()

		return nil
	}

	if err := reminder.ValidateMonthDay(month, day); err != nil {
		fmt.Fprintf(c.out, "\n❌ Fecha inválida: no existe el %d de %s.\n", day, display.MonthName(month))

		return nil
	}

	current := "ninguna"
	if selected.Description != "" {
		current = selected.Description
	}

	input, ok := c.readLine(
		fmt.Sprintf("Nueva descripción (actual: %s, presiona Enter para mantener): ", current),
	)
	if !ok {
		c.cancelled()

		return nil
	}

	// empty input keeps the stored description
	var description *string
	if input != "" {
		description = &input
	}

	edited, err := c.db.EditDeadline(ctx, selected.ID, month, day, description)
	if err != nil {
		return err
	}

	if !edited {
		fmt.Fprintln(c.out, "\n❌ Ya existe una fecha con ese día y mes en esta categoría.")

		return nil
	}

	fmt.Fprintln(c.out, "\n✅ Fecha actualizada correctamente.")

	return nil
}

func (c *CLI) deleteDeadline(ctx context.Context, selected *db.Deadline) error {
	if !c.confirm("\n⚠️  ¿Estás seguro de que deseas eliminar esta fecha? (s/N): ") {
		c.cancelled()

		return nil
	}

	deleted, err := c.db.DeleteDeadline(ctx, selected.ID)
	if err != nil {
		return err
	}

	if !deleted {
		fmt.Fprintln(c.out, "\n❌ La fecha ya no existe.")

		return nil
	}

	fmt.Fprintln(c.out, "\n✅ Fecha eliminada correctamente.")

	return nil
}

func (c *CLI) confirmPayment(ctx context.Context) error {
	entries, err := c.db.AllDeadlines(ctx)
	if err != nil {
		return err
	}

	nearest, err := reminder.Nearest(c.Now(), entries)
	if err != nil {
		return err
	}

	if nearest == nil {
		fmt.Fprintln(c.out, "\nℹ️ No hay impuestos registrados.")

		return nil
	}

	entry := nearest.Entry

	fmt.Fprintf(c.out, "\n📅 PRÓXIMO VENCIMIENTO\n")
	fmt.Fprintf(c.out, "\n• %s\n", entry.CategoryDescription)
	fmt.Fprintf(c.out, "  📅 %02d de %s\n", entry.Day, display.MonthName(entry.Month))

	if entry.Description != "" {
		fmt.Fprintf(c.out, "  📝 %s\n", entry.Description)
	}

	if nearest.DaysUntil == 0 {
		fmt.Fprintln(c.out, "\nℹ️ Este vencimiento es hoy.")
	} else {
		fmt.Fprintf(c.out, "\nℹ️ Este vencimiento es en %d días.\n", nearest.DaysUntil)
	}

	if !c.confirm("\n¿Confirmar pago de este impuesto? (s/N): ") {
		c.cancelled()

		return nil
	}

	deleted, err := c.db.DeleteDeadline(ctx, entry.ID)
	if err != nil {
		return err
	}

	if !deleted {
		fmt.Fprintln(c.out, "\n❌ La fecha ya no existe.")

		return nil
	}

	fmt.Fprintln(c.out, "\n✅ ¡Pago confirmado! El impuesto ha sido registrado como pagado.")

	return nil
}

func (c *CLI) resetStore(ctx context.Context) error {
	if !c.confirm("\n⚠️  ADVERTENCIA: Esto eliminará TODAS las fechas y categorías. ¿Continuar? (s/N): ") {
		c.cancelled()

		return nil
	}

	if err := c.db.Reset(ctx); err != nil {
		return err
	}

	// put the default categories back so the menu stays usable
	for _, category := range display.DefaultCategories {
		if _, err := c.db.AddCategory(ctx, category.Name, category.Description); err != nil {
			return err
		}
	}

	fmt.Fprintln(c.out, "\n✅ La base de datos ha sido restablecida al estado predeterminado.")

	return nil
}

// pickCategory shows the numbered category list and returns the selection, or
// nil when there are no categories or the user cancelled.
func (c *CLI) pickCategory(ctx context.Context) (*db.Category, error) {
	categories, err := c.db.Categories(ctx)
	if err != nil {
		return nil, err
	}

	if len(categories) == 0 {
		fmt.Fprintln(c.out, "\n❌ No hay categorías disponibles.")

		return nil, nil
	}

	fmt.Fprintln(c.out, "\nCategorías disponibles:")

	for i, category := range categories {
		fmt.Fprintf(c.out, "  %d. %s\n", i+1, category.Description)
	}

	choice, ok := c.readIntInRange("\nSelecciona una categoría (número): ", 1, len(categories))
	if !ok {
		c.cancelled()

		return nil, nil
	}

	return categories[choice-1], nil
}

// readLine reads one trimmed line; it reports false on "q" or end of input.
func (c *CLI) readLine(prompt string) (string, bool) {
	fmt.Fprint(c.out, prompt)

	if !c.in.Scan() {
		return "", false
	}

	line := strings.TrimSpace(c.in.Text())
	if strings.EqualFold(line, "q") {
		return "", false
	}

	return line, true
}

// readIntInRange prompts until it gets an integer within [min, max]; it
// reports false on cancellation.
func (c *CLI) readIntInRange(prompt string, min, max int) (int, bool) {
	for {
		line, ok := c.readLine(prompt)
		if !ok {
			return 0, false
		}

		value, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(c.out, "❌ Error: Por favor ingresa un número entero válido")

			continue
		}

		if value < min || value > max {
			fmt.Fprintf(c.out, "❌ Error: El valor debe estar entre %d y %d\n", min, max)

			continue
		}

		return value, true
	}
}

func (c *CLI) confirm(prompt string) bool {
	line, ok := c.readLine(prompt)

	return ok && strings.EqualFold(line, "s")
}

func (c *CLI) cancelled() {
	fmt.Fprintln(c.out, "\nOperación cancelada.")
}
