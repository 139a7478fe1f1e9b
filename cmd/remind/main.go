package main

import (
	"context"
	"log"

	"todoapp/internal/app"
)

// Invoked once per minute by cron. Exit status reflects whether the sweep
// ran, not whether every reminder was delivered.
func main() {
	if err := app.RunReminderSweep(context.Background()); err != nil {
		log.Fatal("reminder sweep failed: ", err)
	}
}
