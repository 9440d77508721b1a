// Package reminder sweeps the task store on a fixed interval and pushes
// due reminders through the configured transports.
package reminder

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"todoapp/internal/core/domain"
	"todoapp/internal/core/ports"
)

const (
	DefaultInterval = time.Minute
	DefaultWindow   = time.Minute
)

type Scheduler struct {
	tasks  ports.TaskRepository
	mailer ports.Mailer
	pusher ports.Pusher
	logger *zap.Logger

	interval time.Duration
	window   time.Duration
	now      func() time.Time
}

func NewScheduler(tasks ports.TaskRepository, mailer ports.Mailer, pusher ports.Pusher, logger *zap.Logger, interval, window time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Scheduler{
		tasks:    tasks,
		mailer:   mailer,
		pusher:   pusher,
		logger:   logger,
		interval: interval,
		window:   window,
		now:      time.Now,
	}
}

// Run executes sweeps until ctx is cancelled. Ticks are sequential: a slow
// sweep delays the next one rather than overlapping it.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("reminder scheduler started",
		zap.Duration("interval", s.interval),
		zap.Duration("window", s.window),
	)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("reminder scheduler stopped")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep matches armed reminders against the current window and dispatches
// them. Per-task failures are logged and never abort the rest of the sweep.
func (s *Scheduler) Sweep(ctx context.Context) {
	candidates, err := s.tasks.FindReminderCandidates(ctx)
	if err != nil {
		s.logger.Error("reminder sweep failed to load candidates", zap.Error(err))
		return
	}

	now := s.now()
	for _, task := range candidates {
		if err := s.dispatch(ctx, task, now); err != nil {
			s.logger.Warn("reminder dispatch failed",
				zap.String("task_id", task.ID),
				zap.Error(err),
			)
		}
	}
}

func (s *Scheduler) dispatch(ctx context.Context, task domain.Task, now time.Time) error {
	reminderAt, ok := task.ReminderAt()
	if !ok {
		return nil
	}

	// Outside the symmetric window around now: not due yet, or missed.
	diff := now.Sub(reminderAt)
	if diff < -s.window || diff > s.window {
		return nil
	}

	// Re-fire guard: already notified for this occurrence.
	if task.Reminder.LastNotifiedAt != nil && !task.Reminder.LastNotifiedAt.Before(reminderAt) {
		return nil
	}

	delivered := false
	for _, channel := range task.Reminder.Channels {
		switch channel {
		case domain.ReminderChannelEmail:
			if task.Reminder.Email == "" {
				continue
			}
			subject := fmt.Sprintf("Reminder: %s", task.Title)
			text := fmt.Sprintf("Your task %q is due at %s.", task.Title, task.Deadline.Format(time.RFC1123))
			html := fmt.Sprintf("<p>Your task <strong>%s</strong> is due at %s.</p>", task.Title, task.Deadline.Format(time.RFC1123))
			if s.mailer.SendEmail(ctx, task.Reminder.Email, subject, text, html) {
				delivered = true
			}
		case domain.ReminderChannelPush:
			payload := ports.PushPayload{
				Title:  "Task due soon",
				Body:   task.Title,
				TaskID: task.ID,
			}
			if s.pusher.SendPush(ctx, task.OwnerID, payload) {
				delivered = true
			}
		}
	}

	// Only a delivered reminder is stamped; a total failure leaves the
	// guard open for the next sweep while the window still matches.
	if !delivered {
		return nil
	}
	return s.tasks.StampReminder(ctx, task.ID, now)
}
