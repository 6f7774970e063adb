// File: services/tasks/reminder.go
package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"portfolio/models"
)

const TypeSendReminder = "reminder:send"

// NewReminderTask builds a delayed reminder delivery for the given meeting.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}
