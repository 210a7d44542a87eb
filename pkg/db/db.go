package db

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	// use the sqlite db driver.
	_ "github.com/mattn/go-sqlite3"
)

//go:embed base.sql
var baseSQL string

// Database manages the sqlite connection holding categories and deadlines.
//
// Operations that can fail because of a uniqueness or existence rule return a
// boolean success flag instead of an error; errors are reserved for the
// storage engine itself. Every read-then-write operation runs inside a single
// transaction so a failure never leaves a half-applied change behind.
type Database struct {
	conn *sql.DB
}

// NewDatabase connects to the sqlite database at the given filename and
// initializes the structure if not present.
func NewDatabase(ctx context.Context, filename string) (*Database, error) {
	conn, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_foreign_keys=on", filename))
	if err != nil {
		return nil, fmt.Errorf("error connecting to sqlite db at %s: %w", filename, err)
	}

	database := Database{conn: conn}

	if err := database.initialize(ctx); err != nil {
		return nil, err
	}

	return &database, nil
}

func (d *Database) initialize(ctx context.Context) error {
	// run idempotent setup sql to create empty tables if they don't exist
	if _, err := d.conn.ExecContext(ctx, baseSQL); err != nil {
		return fmt.Errorf("error running base sql: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (d *Database) Close() error {
	return d.conn.Close()
}

// inTx runs fn inside a transaction, rolling back on every non-nil return.
func (d *Database) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := d.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}

	defer tx.Rollback() //nolint:errcheck // no-op after a successful commit

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}

	return nil
}

// AddCategory creates a category with the given name. Adding a name that
// already exists is a no-op that reports false, so callers can re-seed their
// defaults on every start without special-casing.
func (d *Database) AddCategory(ctx context.Context, name, description string) (bool, error) {
	added := false

	err := d.inTx(ctx, func(tx *sql.Tx) error {
		var existing string

		err := tx.QueryRowContext(ctx, `SELECT name FROM category WHERE name = $1`, name).Scan(&existing)
		if err == nil {
			return nil
		}

		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("error checking for category %s: %w", name, err)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO category (name, description) VALUES ($1, $2)`,
			name, description,
		); err != nil {
			return fmt.Errorf("error adding category %s: %w", name, err)
		}

		added = true

		return nil
	})

	return added, err
}

// SetCategoryDescription replaces the display description of an existing
// category; it reports false when no category with the name exists.
func (d *Database) SetCategoryDescription(ctx context.Context, name, description string) (bool, error) {
	result, err := d.conn.ExecContext(ctx,
		`UPDATE category SET description = $1 WHERE name = $2`,
		description, name,
	)
	if err != nil {
		return false, fmt.Errorf("error updating category %s: %w", name, err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error updating category %s: %w", name, err)
	}

	return count > 0, nil
}

// Categories returns all categories ordered by name.
func (d *Database) Categories(ctx context.Context) ([]*Category, error) {
	rows, err := d.conn.QueryContext(ctx, `SELECT name, description FROM category ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("error loading categories: %w", err)
	}
	defer rows.Close()

	categories := []*Category{}

	for rows.Next() {
		var category Category

		if err := rows.Scan(&category.Name, &category.Description); err != nil {
			return nil, fmt.Errorf("error scanning categories: %w", err)
		}

		categories = append(categories, &category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error scanning categories: %w", err)
	}

	return categories, nil
}

// AddDeadline creates a deadline on the given month and day within a
// category. It reports false when the category does not exist or when the
// category already has a deadline on that day. Calendar validity of the
// (month, day) pair is the caller's concern; see reminder.ValidateMonthDay.
func (d *Database) AddDeadline(ctx context.Context, category string, month, day int, description string) (bool, error) {
	added := false

	err := d.inTx(ctx, func(tx *sql.Tx) error {
		var name string

		err := tx.QueryRowContext(ctx, `SELECT name FROM category WHERE name = $1`, category).Scan(&name)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}

		if err != nil {
			return fmt.Errorf("error checking for category %s: %w", category, err)
		}

		var id int

		err = tx.QueryRowContext(ctx,
			`SELECT id FROM deadline WHERE category = $1 AND month = $2 AND day = $3`,
			category, month, day,
		).Scan(&id)
		if err == nil {
			return nil
		}

		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("error checking for existing deadline: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO deadline (category, month, day, description) VALUES ($1, $2, $3, $4)`,
			category, month, day, description,
		); err != nil {
			return fmt.Errorf("error adding deadline: %w", err)
		}

		added = true

		return nil
	})

	return added, err
}

// EditDeadline moves the deadline with the given id to a new month and day.
// A nil description keeps the stored description; a non-nil one replaces it.
// It reports false when the id is unknown or when another deadline in the
// same category already sits on the new day, leaving both rows untouched.
func (d *Database) EditDeadline(ctx context.Context, id, month, day int, description *string) (bool, error) {
	edited := false

	err := d.inTx(ctx, func(tx *sql.Tx) error {
		var category string

		err := tx.QueryRowContext(ctx, `SELECT category FROM deadline WHERE id = $1`, id).Scan(&category)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}

		if err != nil {
			return fmt.Errorf("error loading deadline %d: %w", id, err)
		}

		var other int

		err = tx.QueryRowContext(ctx,
			`SELECT id FROM deadline WHERE category = $1 AND month = $2 AND day = $3 AND id != $4`,
			category, month, day, id,
		).Scan(&other)
		if err == nil {
			return nil
		}

		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("error checking for colliding deadline: %w", err)
		}

		if description != nil {
			_, err = tx.ExecContext(ctx,
				`UPDATE deadline SET month = $1, day = $2, description = $3 WHERE id = $4`,
				month, day, *description, id,
			)
		} else {
			_, err = tx.ExecContext(ctx,
				`UPDATE deadline SET month = $1, day = $2 WHERE id = $3`,
				month, day, id,
			)
		}

		if err != nil {
			return fmt.Errorf("error updating deadline %d: %w", id, err)
		}

		edited = true

		return nil
	})

	return edited, err
}

// DeleteDeadline removes the deadline with the given id, reporting false when
// the id is unknown.
func (d *Database) DeleteDeadline(ctx context.Context, id int) (bool, error) {
	result, err := d.conn.ExecContext(ctx, `DELETE FROM deadline WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("error deleting deadline %d: %w", id, err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error deleting deadline %d: %w", id, err)
	}

	return count > 0, nil
}

// DeadlinesFor returns the deadlines of one category ordered by month, then day.
func (d *Database) DeadlinesFor(ctx context.Context, category string) ([]*Deadline, error) {
	rows, err := d.conn.QueryContext(ctx,
		`SELECT id, category, month, day, description FROM deadline WHERE category = $1 ORDER BY month, day`,
		category,
	)
	if err != nil {
		return nil, fmt.Errorf("error loading deadlines for %s: %w", category, err)
	}
	defer rows.Close()

	return scanDeadlines(rows)
}

func scanDeadlines(rows *sql.Rows) ([]*Deadline, error) {
	deadlines := []*Deadline{}

	for rows.Next() {
		var deadline Deadline

		err := rows.Scan(&deadline.ID, &deadline.Category, &deadline.Month, &deadline.Day, &deadline.Description)
		if err != nil {
			return nil, fmt.Errorf("error scanning deadlines: %w", err)
		}

		deadlines = append(deadlines, &deadline)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error scanning deadlines: %w", err)
	}

	return deadlines, nil
}

// AllDeadlines returns every deadline joined with its category's description.
// No ordering is promised; report builders sort as they see fit.
func (d *Database) AllDeadlines(ctx context.Context) ([]Entry, error) {
	rows, err := d.conn.QueryContext(ctx,
		`SELECT d.id, d.category, d.month, d.day, d.description, c.description
		 FROM deadline d JOIN category c ON d.category = c.name`,
	)
	if err != nil {
		return nil, fmt.Errorf("error loading deadlines: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}

	for rows.Next() {
		var entry Entry

		err := rows.Scan(
			&entry.ID, &entry.Category, &entry.Month, &entry.Day,
			&entry.Description, &entry.CategoryDescription,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning deadlines: %w", err)
		}

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error scanning deadlines: %w", err)
	}

	return entries, nil
}

// Reset removes all deadlines and then all categories in one transaction,
// leaving an empty store. Re-seeding default categories afterward is the
// caller's job. Resetting an already empty store succeeds.
func (d *Database) Reset(ctx context.Context) error {
	return d.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM deadline`); err != nil {
			return fmt.Errorf("error clearing deadlines: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM category`); err != nil {
			return fmt.Errorf("error clearing categories: %w", err)
		}

		return nil
	})
}
