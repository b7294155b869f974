package domain

import "time"

// Urgency tokens. Existing data stores urgency as one of these two
// literal strings, not as a boolean.
const (
	UrgentOn  = "on"
	UrgentOff = "off"
)

type Task struct {
	ID              int64     `db:"id"`
	CategoryName    string    `db:"category_name"` // copied from a category, not a foreign key
	TaskName        string    `db:"task_name"`
	TaskDescription string    `db:"task_description"`
	IsUrgent        string    `db:"is_urgent"` // "on" or "off"
	DueDate         string    `db:"due_date"`  // free text, not validated
	CreatedBy       string    `db:"created_by"`
	CreatedAt       time.Time `db:"created_at"`
}

// Urgent exposes the two-token flag as a boolean.
func (t *Task) Urgent() bool {
	return t.IsUrgent == UrgentOn
}

// UrgencyFromForm maps a submitted checkbox value to the stored token:
// any non-empty value means "on", absence means "off".
func UrgencyFromForm(value string) string {
	if value != "" {
		return UrgentOn
	}
	return UrgentOff
}
