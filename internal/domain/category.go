package domain

import "time"

// Category names are not unique; tasks reference them by copied name
// only, so deleting a category leaves referencing tasks untouched.
type Category struct {
	ID           int64     `db:"id"`
	CategoryName string    `db:"category_name"`
	CreatedAt    time.Time `db:"created_at"`
}
