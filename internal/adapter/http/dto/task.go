package dto

type SubtaskPayload struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

type RecurrencePayload struct {
	Enabled  bool    `json:"enabled"`
	Interval int     `json:"interval"`
	Unit     string  `json:"unit"`
	Until    *string `json:"until,omitempty"`
}

type ReminderPayload struct {
	Enabled        bool     `json:"enabled"`
	MinutesBefore  int      `json:"minutesBefore"`
	Channels       []string `json:"channels"`
	Email          string   `json:"email,omitempty"`
	LastNotifiedAt *string  `json:"lastNotifiedAt,omitempty"`
}

type TaskItem struct {
	ID           string             `json:"id"`
	Title        string             `json:"title"`
	Description  string             `json:"description,omitempty"`
	Status       string             `json:"status"`
	Completed    bool               `json:"completed"`
	CompletedAt  *string            `json:"completed_at,omitempty"`
	Deadline     *string            `json:"deadline,omitempty"`
	Important    bool               `json:"important"`
	Tags         []string           `json:"tags"`
	Order        float64            `json:"order"`
	Subtasks     []SubtaskPayload   `json:"subtasks"`
	Dependencies []string           `json:"dependencies"`
	Recurrence   *RecurrencePayload `json:"recurrence,omitempty"`
	Reminder     *ReminderPayload   `json:"reminder,omitempty"`
	ProjectID    *string            `json:"project_id,omitempty"`
	OwnerID      string             `json:"owner_id"`
	SharedWith   []string           `json:"shared_with"`
	CreatedAt    string             `json:"created_at"`
	UpdatedAt    string             `json:"updated_at"`
}

type CreateTaskRequest struct {
	Title        string             `json:"title"`
	Description  *string            `json:"description"`
	Status       *string            `json:"status"`
	Completed    *bool              `json:"completed"`
	Deadline     *string            `json:"deadline"`
	Important    *bool              `json:"important"`
	Tags         []string           `json:"tags"`
	Order        *float64           `json:"order"`
	Subtasks     []SubtaskPayload   `json:"subtasks"`
	Dependencies []string           `json:"dependencies"`
	Recurrence   *RecurrencePayload `json:"recurrence"`
	Reminder     *ReminderPayload   `json:"reminder"`
	ProjectID    *string            `json:"project_id"`
	SharedWith   []string           `json:"shared_with"`
}

type UpdateTaskRequest struct {
	Title        *string            `json:"title"`
	Description  *string            `json:"description"`
	Status       *string            `json:"status"`
	Completed    *bool              `json:"completed"`
	Deadline     *string            `json:"deadline"`
	Important    *bool              `json:"important"`
	Tags         []string           `json:"tags"`
	Order        *float64           `json:"order"`
	Subtasks     []SubtaskPayload   `json:"subtasks"`
	Dependencies []string           `json:"dependencies"`
	Recurrence   *RecurrencePayload `json:"recurrence"`
	Reminder     *ReminderPayload   `json:"reminder"`
	ProjectID    *string            `json:"project_id"`
	SharedWith   []string           `json:"shared_with"`
}

type ReorderItemPayload struct {
	ID     string   `json:"id"`
	Order  *float64 `json:"order"`
	Status *string  `json:"status"`
}

type ReorderTasksRequest struct {
	Items []ReorderItemPayload `json:"items"`
}

type TaskStatsItem struct {
	Total               int `json:"total"`
	Completed           int `json:"completed"`
	Active              int `json:"active"`
	Important           int `json:"important"`
	WithDeadline        int `json:"with_deadline"`
	Todo                int `json:"todo"`
	InProgress          int `json:"in_progress"`
	Done                int `json:"done"`
	CompletedPercentage int `json:"completed_percentage"`
}

type ClearCompletedResponse struct {
	Deleted int64 `json:"deleted"`
}
