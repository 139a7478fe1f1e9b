package services

import (
	"fmt"
	"html"

	"gopkg.in/gomail.v2"

	"todoapp/internal/models"
)

// Notifier delivers a single reminder for one todo to its owner. The
// reminder sweep depends on this interface so tests can substitute a
// recording fake for the SMTP transport.
type Notifier interface {
	SendReminder(user *models.User, todo *models.Todo) error
}

type EmailService interface {
	Notifier
	SendWelcomeEmail(email, name string) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) SendReminder(user *models.User, todo *models.Todo) error {
	if todo.ReminderAt == nil {
		return fmt.Errorf("todo %d has no reminder time", todo.ID)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", user.Email)
	m.SetHeader("Subject", fmt.Sprintf("Reminder: %s", todo.Title))

	due := todo.ReminderAt.Format("Monday, January 2, 2006 at 3:04 PM")
	body := fmt.Sprintf(`
		<h2>Hello %s!</h2>
		<p>This is a reminder for your upcoming task:</p>
		<p><strong>Task:</strong> %s</p>
		<p><strong>Due:</strong> %s</p>
	`, html.EscapeString(user.Name), html.EscapeString(todo.Title), due)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send reminder email: %w", err)
	}

	return nil
}

func (s *emailService) SendWelcomeEmail(email, name string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Welcome!")

	body := fmt.Sprintf(`
		<h2>Welcome, %s!</h2>
		<p>Thank you for registering. Your account has been successfully created.</p>
		<p>You can now start adding tasks and reminders.</p>
	`, name)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}

	return nil
}
