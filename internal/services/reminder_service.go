package services

import (
	"context"
	"log"
	"time"

	"todoapp/internal/models"
	"todoapp/internal/repositories"
)

// ReminderService runs one reminder sweep: find todos whose reminder_at is
// due within the lead window, email each owner, and mark the todo reminded.
// A failed delivery is logged and left pending; the next sweep picks it up
// again. There is no backoff or attempt cap, so a persistently failing
// recipient is retried every sweep.
type ReminderService interface {
	SweepOnce(ctx context.Context) (sent, matched int, err error)
}

type reminderService struct {
	todos    repositories.TodoRepository
	users    repositories.UserRepository
	notifier Notifier

	now func() time.Time
}

func NewReminderService(todos repositories.TodoRepository, users repositories.UserRepository, notifier Notifier) ReminderService {
	return &reminderService{
		todos:    todos,
		users:    users,
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *reminderService) SweepOnce(ctx context.Context) (int, int, error) {
	now := s.now()
	log.Printf("[remind][sweep] start at %s", now.Format(time.RFC3339))

	due, err := s.todos.ListPendingReminders(ctx, now, now.Add(models.ReminderLeadWindow))
	if err != nil {
		log.Printf("[remind][sweep][err] list pending: %v", err)
		return 0, 0, err
	}

	sent := 0
	for i := range due {
		todo := &due[i]
		if !todo.ReminderEligible(now) {
			log.Printf("[remind][sweep][skip] todo=%d no longer eligible", todo.ID)
			continue
		}

		user, err := s.users.GetByID(ctx, todo.UserID)
		if err != nil || user == nil {
			log.Printf("[remind][sweep][err] todo=%d load owner=%d: %v", todo.ID, todo.UserID, err)
			continue
		}

		if err := s.notifier.SendReminder(user, todo); err != nil {
			// left pending; retried on the next sweep
			log.Printf("[remind][sweep][err] todo=%d send to %s: %v", todo.ID, user.Email, err)
			continue
		}

		if err := s.todos.MarkReminded(ctx, todo.ID, now); err != nil {
			log.Printf("[remind][sweep][err] todo=%d mark reminded: %v", todo.ID, err)
			continue
		}
		sent++
	}

	log.Printf("[remind][sweep][ok] sent=%d of matched=%d", sent, len(due))
	return sent, len(due), nil
}
