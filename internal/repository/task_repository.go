package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"gotrack/internal/errors"
	"gotrack/internal/model"
	"gotrack/internal/platform/supabase"
)

const tasksTable = "tasks"

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) (*model.Task, error)
	Find(ctx context.Context, taskID string) (*model.Task, error)
	ListByAssignee(ctx context.Context, userID string) ([]model.Task, error)
	UpdateStatus(ctx context.Context, taskID string, status model.TaskStatus, completedAt string) (*model.Task, error)
}

type taskRepository struct {
	client *supabase.Client
}

// NewTaskRepository builds a repository backed by the platform table store.
func NewTaskRepository(client *supabase.Client) TaskRepository {
	return &taskRepository{client: client}
}

// taskInsert is the insert payload; id, status, and created_at are
// filled in by the store's defaults.
type taskInsert struct {
	AssignedBy       string `json:"assigned_by"`
	AssignedTo       string `json:"assigned_to"`
	Title            string `json:"title"`
	Description      string `json:"description,omitempty"`
	EstimatedMinutes int    `json:"estimated_minutes"`
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) (*model.Task, error) {
	data, err := r.client.Insert(ctx, tasksTable, taskInsert{
		AssignedBy:       task.AssignedBy,
		AssignedTo:       task.AssignedTo,
		Title:            task.Title,
		Description:      task.Description,
		EstimatedMinutes: task.EstimatedMinutes,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: insert task: %v", errors.ErrDatabase, err)
	}

	rows, err := decodeTasks(data)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: task creation returned no row", errors.ErrDatabase)
	}
	return &rows[0], nil
}

func (r *taskRepository) Find(ctx context.Context, taskID string) (*model.Task, error) {
	data, err := r.client.Select(ctx, tasksTable, "*", map[string]string{
		"id": supabase.Eq(taskID),
	}, 1)
	if err != nil {
		return nil, fmt.Errorf("%w: query task: %v", errors.ErrDatabase, err)
	}

	rows, err := decodeTasks(data)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.ErrTaskNotFound
	}
	return &rows[0], nil
}

func (r *taskRepository) ListByAssignee(ctx context.Context, userID string) ([]model.Task, error) {
	data, err := r.client.Select(ctx, tasksTable, "*", map[string]string{
		"assigned_to": supabase.Eq(userID),
	}, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: list tasks: %v", errors.ErrDatabase, err)
	}
	return decodeTasks(data)
}

func (r *taskRepository) UpdateStatus(ctx context.Context, taskID string, status model.TaskStatus, completedAt string) (*model.Task, error) {
	values := map[string]any{"status": status}
	if completedAt != "" {
		values["completed_at"] = completedAt
	}

	data, err := r.client.Update(ctx, tasksTable, values, map[string]string{
		"id": supabase.Eq(taskID),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: update task: %v", errors.ErrDatabase, err)
	}

	rows, err := decodeTasks(data)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: task update returned no row", errors.ErrDatabase)
	}
	return &rows[0], nil
}

func decodeTasks(data []byte) ([]model.Task, error) {
	var rows []model.Task
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("%w: decode task rows: %v", errors.ErrDatabase, err)
	}
	return rows, nil
}
