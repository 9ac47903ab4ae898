package model

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	// TaskPending is the store-assigned default on creation.
	TaskPending TaskStatus = "pending"
	// TaskInProgress marks a task the assignee has started.
	TaskInProgress TaskStatus = "in_progress"
	// TaskCompleted marks a finished task; completed_at is set on this transition.
	TaskCompleted TaskStatus = "completed"
)

// SettableStatus reports whether s is a status the assignee may set.
// Tasks never move back to pending.
func SettableStatus(s TaskStatus) bool {
	return s == TaskInProgress || s == TaskCompleted
}

// Task is a unit of work assigned by a superuser to a user.
type Task struct {
	ID               string     `json:"id"`
	AssignedBy       string     `json:"assigned_by"`
	AssignedTo       string     `json:"assigned_to"`
	Title            string     `json:"title"`
	Description      string     `json:"description,omitempty"`
	EstimatedMinutes int        `json:"estimated_minutes"`
	Status           TaskStatus `json:"status"`
	CreatedAt        string     `json:"created_at,omitempty"`
	CompletedAt      string     `json:"completed_at,omitempty"`
}
