// internal/models/todo.go
package models

import "time"

// TitleMaxLen mirrors the varchar(250) title column.
const TitleMaxLen = 250

// ReminderLeadWindow is how long before reminder_at a todo becomes
// eligible for a reminder email.
const ReminderLeadWindow = 15 * time.Minute

// Todo represents a single to-do item owned by one user.
type Todo struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"user_id"`
	Title      string     `json:"title"`
	Completed  bool       `json:"completed"`
	ReminderAt *time.Time `json:"reminder_at,omitempty"`
	RemindedAt *time.Time `json:"reminded_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ReminderEligible reports whether a reminder should be dispatched at now.
// A todo qualifies only while reminder_at lies inside [now, now+lead window];
// a reminder whose time already passed is skipped for good rather than sent late.
func (t *Todo) ReminderEligible(now time.Time) bool {
	if t.ReminderAt == nil || t.RemindedAt != nil || t.Completed {
		return false
	}
	if t.ReminderAt.Before(now) {
		return false
	}
	return !t.ReminderAt.After(now.Add(ReminderLeadWindow))
}
