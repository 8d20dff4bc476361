package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"medicore/config"
	"medicore/models"
)

const TypeSendReminder = "reminder:send"

// reminderLead is how long before the slot start the reminder fires.
const reminderLead = time.Hour

// NewReminderTask builds the asynq task for an appointment reminder,
// scheduled to fire at the given time.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// AsynqReminderScheduler enqueues reminder tasks onto the Redis-backed queue.
type AsynqReminderScheduler struct {
	client *asynq.Client
}

// NewAsynqReminderScheduler constructs a scheduler from the app config.
func NewAsynqReminderScheduler() *AsynqReminderScheduler {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	return &AsynqReminderScheduler{client: client}
}

// ScheduleReminder enqueues a reminder to fire one hour before the slot
// starts. Appointments confirmed inside the lead window fire immediately.
func (s *AsynqReminderScheduler) ScheduleReminder(ctx context.Context, payload models.ReminderPayload) error {
	startAt, err := time.ParseInLocation("2006-01-02 15:04", payload.Date+" "+payload.Start, time.Local)
	if err != nil {
		return fmt.Errorf("invalid reminder schedule time: %w", err)
	}

	fireAt := startAt.Add(-reminderLead)
	if fireAt.Before(time.Now()) {
		fireAt = time.Now()
	}

	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return err
	}
	if _, err := s.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	return nil
}

// Close releases the underlying asynq client.
func (s *AsynqReminderScheduler) Close() error {
	return s.client.Close()
}
