package display_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ChumaSuey/TaxReminder/pkg/display"
)

func TestMonthName(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	assert.Equal("Enero", display.MonthName(1))
	assert.Equal("Septiembre", display.MonthName(9))
	assert.Equal("Diciembre", display.MonthName(12))
	assert.Equal("", display.MonthName(0))
	assert.Equal("", display.MonthName(13))
}

func TestCategoryLabel(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	assert.Equal("Primera Quincena", display.CategoryLabel("first_fortnight", "Impuestos del 1-15 del mes"))
	assert.Equal("Segunda Quincena", display.CategoryLabel("second_fortnight", ""))

	// unmapped categories fall back to their stored description
	assert.Equal("Trimestrales", display.CategoryLabel("quarterly", "Trimestrales"))
}

func TestDaysText(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	assert.Equal("hoy", display.DaysText(0))
	assert.Equal("mañana", display.DaysText(1))
	assert.Equal("en 2 días", display.DaysText(2))
	assert.Equal("en 10 días", display.DaysText(10))
}
