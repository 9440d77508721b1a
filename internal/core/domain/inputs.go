package domain

import "time"

type CreateTaskInput struct {
	Title        string
	Description  string
	Status       *TaskStatus
	Completed    *bool
	Deadline     *time.Time
	Important    bool
	Tags         []string
	Order        *float64
	Subtasks     []Subtask
	Dependencies []string
	Recurrence   *Recurrence
	Reminder     *Reminder
	ProjectID    *string
	SharedWith   []string
}

// UpdateTaskInput carries a field-level patch. A nil pointer with its Set
// flag false means "leave unchanged"; Set true with a nil pointer means
// "clear". Fields without a Set flag cannot be cleared, only replaced.
type UpdateTaskInput struct {
	Title           *string
	Description     *string
	DescriptionSet  bool
	Status          *TaskStatus
	Completed       *bool
	Deadline        *time.Time
	DeadlineSet     bool
	Important       *bool
	Tags            []string
	TagsSet         bool
	Order           *float64
	Subtasks        []Subtask
	SubtasksSet     bool
	Dependencies    []string
	DependenciesSet bool
	Recurrence      *Recurrence
	RecurrenceSet   bool
	Reminder        *Reminder
	ReminderSet     bool
	ProjectID       *string
	ProjectIDSet    bool
	SharedWith      []string
	SharedWithSet   bool
}

// ReorderItem addresses one task in a bulk reorder. Order and Status are
// each optional; nil leaves the field untouched.
type ReorderItem struct {
	ID     string
	Order  *float64
	Status *TaskStatus
}

type CreateProjectInput struct {
	Name        string
	Description string
	Color       string
	SharedWith  []string
}

type UpdateProjectInput struct {
	Name           *string
	Description    *string
	DescriptionSet bool
	Color          *string
	ColorSet       bool
	SharedWith     []string
	SharedWithSet  bool
}
