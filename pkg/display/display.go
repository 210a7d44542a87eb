// Package display holds the presentation vocabulary shared by the CLI and the
// GUI: Spanish month names, category display labels and the default seed
// categories. The core packages work on opaque category names and integer
// months; everything user-facing lives here.
package display

import "fmt"

// DefaultCategories are seeded by every front-end on startup. AddCategory is
// a no-op for names that already exist, so seeding is safe to repeat.
var DefaultCategories = []struct {
	Name        string
	Description string
}{
	{"first_fortnight", "Impuestos del 1-15 del mes"},
	{"second_fortnight", "Impuestos del 16 a fin de mes"},
}

var monthNames = []string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// categoryLabels maps category names to the labels shown to users. Unknown
// categories fall back to their stored description.
var categoryLabels = map[string]string{
	"first_fortnight":  "Primera Quincena",
	"second_fortnight": "Segunda Quincena",
}

// MonthName returns the Spanish name of a month, or "" when out of range.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}

	return monthNames[month-1]
}

// CategoryLabel returns the display label for a category name, falling back
// to the given description when the name has no mapped label.
func CategoryLabel(name, description string) string {
	if label, ok := categoryLabels[name]; ok {
		return label
	}

	return description
}

// DaysText phrases a day count the way the reports do: "hoy", "mañana" or
// "en N días".
func DaysText(days int) string {
	switch days {
	case 0:
		return "hoy"
	case 1:
		return "mañana"
	default:
		return fmt.Sprintf("en %d días", days)
	}
}
