package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ptrTime(t time.Time) *time.Time { return &t }

func TestReminderEligible(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		todo Todo
		want bool
	}{
		{
			name: "ten minutes out is inside the window",
			todo: Todo{ReminderAt: ptrTime(now.Add(10 * time.Minute))},
			want: true,
		},
		{
			name: "twenty minutes out is beyond the window",
			todo: Todo{ReminderAt: ptrTime(now.Add(20 * time.Minute))},
			want: false,
		},
		{
			name: "exactly at the window edge",
			todo: Todo{ReminderAt: ptrTime(now.Add(ReminderLeadWindow))},
			want: true,
		},
		{
			name: "due right now",
			todo: Todo{ReminderAt: ptrTime(now)},
			want: true,
		},
		{
			name: "five minutes past due is skipped",
			todo: Todo{ReminderAt: ptrTime(now.Add(-5 * time.Minute))},
			want: false,
		},
		{
			name: "completed todos never remind",
			todo: Todo{ReminderAt: ptrTime(now.Add(10 * time.Minute)), Completed: true},
			want: false,
		},
		{
			name: "already reminded todos never remind again",
			todo: Todo{
				ReminderAt: ptrTime(now.Add(10 * time.Minute)),
				RemindedAt: ptrTime(now.Add(-time.Minute)),
			},
			want: false,
		},
		{
			name: "no reminder set",
			todo: Todo{},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.todo.ReminderEligible(now))
		})
	}
}
