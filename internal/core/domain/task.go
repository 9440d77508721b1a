package domain

import "time"

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

type RecurrenceUnit string

const (
	RecurrenceUnitDay   RecurrenceUnit = "day"
	RecurrenceUnitWeek  RecurrenceUnit = "week"
	RecurrenceUnitMonth RecurrenceUnit = "month"
)

func (u RecurrenceUnit) Valid() bool {
	switch u {
	case RecurrenceUnitDay, RecurrenceUnitWeek, RecurrenceUnitMonth:
		return true
	}
	return false
}

type ReminderChannel string

const (
	ReminderChannelEmail ReminderChannel = "email"
	ReminderChannelPush  ReminderChannel = "push"
)

func (c ReminderChannel) Valid() bool {
	return c == ReminderChannelEmail || c == ReminderChannelPush
}

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 1000
	MaxTagLength         = 50
)

type Subtask struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

type Recurrence struct {
	Enabled  bool           `json:"enabled"`
	Interval int            `json:"interval"`
	Unit     RecurrenceUnit `json:"unit"`
	Until    *time.Time     `json:"until,omitempty"`
}

type Reminder struct {
	Enabled        bool              `json:"enabled"`
	MinutesBefore  int               `json:"minutesBefore"`
	Channels       []ReminderChannel `json:"channels"`
	Email          string            `json:"email,omitempty"`
	LastNotifiedAt *time.Time        `json:"lastNotifiedAt,omitempty"`
}

type Task struct {
	ID           string
	Title        string
	Description  string
	Status       TaskStatus
	Completed    bool
	CompletedAt  *time.Time
	Deadline     *time.Time
	Important    bool
	Tags         []string
	Order        float64
	Subtasks     []Subtask
	Dependencies []string
	Recurrence   *Recurrence
	Reminder     *Reminder
	ProjectID    *string
	OwnerID      string
	SharedWith   []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ReminderAt is the instant the reminder should fire. The second return is
// false when the task carries no armed reminder, no deadline, or is already
// completed.
func (t Task) ReminderAt() (time.Time, bool) {
	if t.Reminder == nil || !t.Reminder.Enabled || t.Deadline == nil || t.Completed {
		return time.Time{}, false
	}
	return t.Deadline.Add(-time.Duration(t.Reminder.MinutesBefore) * time.Minute), true
}

type TaskStats struct {
	Total               int
	Completed           int
	Active              int
	Important           int
	WithDeadline        int
	Todo                int
	InProgress          int
	Done                int
	CompletedPercentage int
}

// TaskFilters narrows list queries. Zero values / nil pointers mean the
// filter is not applied.
type TaskFilters struct {
	Status    *TaskStatus
	Completed *bool
	Important *bool
	ProjectID *string
	Tag       string
	Search    string
}
