package db

// Category is a named group of recurring deadlines, e.g. the taxes due in the
// first half of each month. The name is the identity and never changes once
// created; the description is the label shown to users.
type Category struct {
	Name        string
	Description string
}

// Deadline is a recurring calendar point within a category: the same month
// and day every year. No two deadlines in a category share a (month, day).
type Deadline struct {
	ID          int
	Category    string
	Month       int
	Day         int
	Description string
}

// Entry is a deadline joined with its category's description, as consumed by
// the report builders.
type Entry struct {
	Deadline
	CategoryDescription string
}
