package db_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ChumaSuey/TaxReminder/pkg/db"
)

func getDB(t *testing.T, assert *assert.Assertions) *db.Database {
	t.Helper()

	tempFile, err := os.CreateTemp(t.TempDir(), "test_database*.sqlite")
	assert.Nil(err)

	database, err := db.NewDatabase(context.Background(), tempFile.Name())
	assert.NotNil(database)
	assert.Nil(err)

	return database
}

func seed(assert *assert.Assertions, database *db.Database) {
	added, err := database.AddCategory(context.Background(), "first_fortnight", "Impuestos del 1-15 del mes")
	assert.Nil(err)
	assert.True(added)

	added, err = database.AddCategory(context.Background(), "second_fortnight", "Impuestos del 16 a fin de mes")
	assert.Nil(err)
	assert.True(added)
}

func TestNewDatabaseBadFile(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	database, err := db.NewDatabase(context.Background(), "/alwfkjasfd/asdflkjdsal.sqlite")
	assert.Nil(database)
	assert.NotNil(err)
	assert.Contains(err.Error(), "error running base sql")
}

func TestNewDatabaseIdempotent(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	tempFile, err := os.CreateTemp(t.TempDir(), "test_database*.sqlite")
	assert.Nil(err)

	database, err := db.NewDatabase(context.Background(), tempFile.Name())
	assert.NotNil(database)
	assert.Nil(err)

	seed(assert, database)
	assert.Nil(database.Close())

	database2, err := db.NewDatabase(context.Background(), tempFile.Name())
	assert.NotNil(database2)
	assert.Nil(err)

	categories, err := database2.Categories(context.Background())
	assert.Nil(err)
	assert.Len(categories, 2)
}

func TestAddCategoryTwice(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	database := getDB(t, assert)

	added, err := database.AddCategory(context.Background(), "quarterly", "Impuestos trimestrales")
	assert.Nil(err)
	assert.True(added)

	// the second add is a no-op failure, not an error
	added, err = database.AddCategory(context.Background(), "quarterly", "otra descripción")
	assert.Nil(err)
	assert.False(added)

	categories, err := database.Categories(context.Background())
	assert.Nil(err)
	assert.Len(categories, 1)
	assert.Equal("Impuestos trimestrales", categories[0].Description)
}

func TestCategoriesOrderedByName(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	database := getDB(t, assert)
	seed(assert, database)

	categories, err := database.Categories(context.Background())
	assert.Nil(err)
	assert.Len(categories, 2)
	assert.Equal("first_fortnight", categories[0].Name)
	assert.Equal("second_fortnight", categories[1].Name)
}

func TestSetCategoryDescription(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	database := getDB(t, assert)
	seed(assert, database)

	updated, err := database.SetCategoryDescription(context.Background(), "first_fortnight", "Nueva descripción")
	assert.Nil(err)
	assert.True(updated)

	updated, err = database.SetCategoryDescription(context.Background(), "missing", "da igual")
	assert.Nil(err)
	assert.False(updated)

	categories, err := database.Categories(context.Background())
	assert.Nil(err)
	assert.Equal("Nueva descripción", categories[0].Description)
}

func TestAddDeadline(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	database := getDB(t, assert)
	seed(assert, database)

	added, err := database.AddDeadline(context.Background(), "first_fortnight", 9, 26, "IVA")
	assert.Nil(err)
	assert.True(added)

	deadlines, err := database.DeadlinesFor(context.Background(), "first_fortnight")
	assert.Nil(err)
	assert.Len(deadlines, 1)
	assert.Equal(9, deadlines[0].Month)
	assert.Equal(26, deadlines[0].Day)
	assert.Equal("IVA", deadlines[0].Description)
}

func TestAddDeadlineDuplicate(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	database := getDB(t, assert)
	seed(assert, database)

	added, err := database.AddDeadline(context.Background(), "first_fortnight", 9, 26, "IVA")
	assert.Nil(err)
	assert.True(added)

	added, err = database.AddDeadline(context.Background(), "first_fortnight", 9, 26, "otra vez")
	assert.Nil(err)
	assert.False(added)

	// the same day in a different category is fine
	added, err = database.AddDeadline(context.Background(), "second_fortnight", 9, 26, "")
	assert.Nil(err)
	assert.True(added)
}

func TestAddDeadlineMissingCategory(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	database := getDB(t, assert)

	added, err := database.AddDeadline(context.Background(), "missing", 9, 26, "IVA")
	assert.Nil(err)
	assert.False(added)
}

func TestDeadlinesForOrdered(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	database := getDB(t, assert)
	seed(assert, database)

	for _, pair := range [][2]int{{12, 1}, {3, 15}, {3, 2}, {1, 31}} {
		added, err := database.AddDeadline(context.Background(), "first_fortnight", pair[0], pair[1], "")
		assert.Nil(err)
		assert.True(added)
	}

	deadlines, err := database.DeadlinesFor(context.Background(), "first_fortnight")
	assert.Nil(err)
	assert.Len(deadlines, 4)

	got := [][2]int{}
	for _, deadline := range deadlines {
		got = append(got, [2]int{deadline.Month, deadline.Day})
	}

	assert.Equal([][2]int{{1, 31}, {3, 2}, {3, 15}, {12, 1}}, got)
}

func TestAllDeadlinesJoinsCategoryDescription(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	database := getDB(t, assert)
	seed(assert, database)

	added, err := database.AddDeadline(context.Background(), "first_fortnight", 9, 26, "IVA")
	assert.Nil(err)
	assert.True(added)

	entries, err := database.AllDeadlines(context.Background())
	assert.Nil(err)
	assert.Len(entries, 1)
	assert.Equal("first_fortnight", entries[0].Category)
	assert.Equal("Impuestos del 1-15 del mes", entries[0].CategoryDescription)
	assert.Equal("IVA", entries[0].Description)
}

func TestEditDeadline(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	database := getDB(t, assert)
	seed(assert, database)

	added, err := database.AddDeadline(context.Background(), "first_fortnight", 9, 26, "IVA")
	assert.Nil(err)
	assert.True(added)

	deadlines, err := database.DeadlinesFor(context.Background(), "first_fortnight")
	assert.Nil(err)

	id := deadlines[0].ID

	// nil description keeps the stored value
	edited, err := database.EditDeadline(context.Background(), id, 10, 5, nil)
	assert.Nil(err)
	assert.True(edited)

	deadlines, err = database.DeadlinesFor(context.Background(), "first_fortnight")
	assert.Nil(err)
	assert.Equal(10, deadlines[0].Month)
	assert.Equal(5, deadlines[0].Day)
	assert.Equal("IVA", deadlines[0].Description)

	// non-nil description replaces it
	replacement := "IVA mensual"
	edited, err = database.EditDeadline(context.Background(), id, 10, 5, &replacement)
	assert.Nil(err)
	assert.True(edited)

	deadlines, err = database.DeadlinesFor(context.Background(), "first_fortnight")
	assert.Nil(err)
	assert.Equal("IVA mensual", deadlines[0].Description)
}

func TestEditDeadlineCollision(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	database := getDB(t, assert)
	seed(assert, database)

	added, err := database.AddDeadline(context.Background(), "first_fortnight", 9, 26, "IVA")
	assert.Nil(err)
	assert.True(added)

	added, err = database.AddDeadline(context.Background(), "first_fortnight", 10, 5, "Ganancias")
	assert.Nil(err)
	assert.True(added)

	deadlines, err := database.DeadlinesFor(context.Background(), "first_fortnight")
	assert.Nil(err)
	assert.Len(deadlines, 2)

	// moving the second onto the first must fail and change nothing
	edited, err := database.EditDeadline(context.Background(), deadlines[1].ID, 9, 26, nil)
	assert.Nil(err)
	assert.False(edited)

	after, err := database.DeadlinesFor(context.Background(), "first_fortnight")
	assert.Nil(err)
	assert.Equal(deadlines[0].Day, after[0].Day)
	assert.Equal(deadlines[1].Day, after[1].Day)

	// editing a deadline onto its own day is not a collision
	edited, err = database.EditDeadline(context.Background(), deadlines[1].ID, 10, 5, nil)
	assert.Nil(err)
	assert.True(edited)
}

func TestEditDeadlineUnknownID(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	database := getDB(t, assert)

	edited, err := database.EditDeadline(context.Background(), 12345, 1, 1, nil)
	assert.Nil(err)
	assert.False(edited)
}

func TestDeleteDeadline(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	database := getDB(t, assert)
	seed(assert, database)

	added, err := database.AddDeadline(context.Background(), "first_fortnight", 9, 26, "IVA")
	assert.Nil(err)
	assert.True(added)

	deadlines, err := database.DeadlinesFor(context.Background(), "first_fortnight")
	assert.Nil(err)

	deleted, err := database.DeleteDeadline(context.Background(), deadlines[0].ID)
	assert.Nil(err)
	assert.True(deleted)

	deleted, err = database.DeleteDeadline(context.Background(), deadlines[0].ID)
	assert.Nil(err)
	assert.False(deleted)
}

func TestCategoryDeleteCascades(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	tempFile, err := os.CreateTemp(t.TempDir(), "test_database*.sqlite")
	assert.Nil(err)

	database, err := db.NewDatabase(context.Background(), tempFile.Name())
	assert.NotNil(database)
	assert.Nil(err)

	seed(assert, database)

	added, err := database.AddDeadline(context.Background(), "first_fortnight", 9, 26, "IVA")
	assert.Nil(err)
	assert.True(added)

	added, err = database.AddDeadline(context.Background(), "second_fortnight", 12, 1, "Ganancias")
	assert.Nil(err)
	assert.True(added)

	// drop a single category row through the engine; the schema's cascade
	// must take its deadlines with it
	conn, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_foreign_keys=on", tempFile.Name()))
	assert.Nil(err)

	defer conn.Close()

	_, err = conn.ExecContext(context.Background(), `DELETE FROM category WHERE name = 'first_fortnight'`)
	assert.Nil(err)

	deadlines, err := database.DeadlinesFor(context.Background(), "first_fortnight")
	assert.Nil(err)
	assert.Len(deadlines, 0)

	entries, err := database.AllDeadlines(context.Background())
	assert.Nil(err)
	assert.Len(entries, 1)
	assert.Equal("second_fortnight", entries[0].Category)
}

func TestResetIdempotent(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	database := getDB(t, assert)
	seed(assert, database)

	added, err := database.AddDeadline(context.Background(), "first_fortnight", 9, 26, "IVA")
	assert.Nil(err)
	assert.True(added)

	assert.Nil(database.Reset(context.Background()))

	categories, err := database.Categories(context.Background())
	assert.Nil(err)
	assert.Len(categories, 0)

	// no orphaned deadlines survive the categories
	entries, err := database.AllDeadlines(context.Background())
	assert.Nil(err)
	assert.Len(entries, 0)

	deadlines, err := database.DeadlinesFor(context.Background(), "first_fortnight")
	assert.Nil(err)
	assert.Len(deadlines, 0)

	// a second reset of the empty store is a no-op success
	assert.Nil(database.Reset(context.Background()))

	categories, err = database.Categories(context.Background())
	assert.Nil(err)
	assert.Len(categories, 0)
}
