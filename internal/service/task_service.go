package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gotrack/internal/errors"
	"gotrack/internal/model"
	"gotrack/internal/repository"
)

// AssignInput carries a task assignment request.
type AssignInput struct {
	Title            string
	Description      string
	EstimatedMinutes int
	AssignedTo       string
}

// TaskService handles task assignment and status transitions.
type TaskService interface {
	Assign(ctx context.Context, callerID string, in AssignInput) (*model.Task, error)
	ListMine(ctx context.Context, callerID string) ([]model.Task, error)
	UpdateStatus(ctx context.Context, callerID, taskID string, newStatus model.TaskStatus) (*model.Task, error)
}

type taskService struct {
	tasks    repository.TaskRepository
	profiles repository.ProfileRepository
}

// NewTaskService creates a new task service.
func NewTaskService(tasks repository.TaskRepository, profiles repository.ProfileRepository) TaskService {
	return &taskService{
		tasks:    tasks,
		profiles: profiles,
	}
}

// Assign creates a task for another user. Only superusers may assign.
func (s *taskService) Assign(ctx context.Context, callerID string, in AssignInput) (*model.Task, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title must not be empty", errors.ErrBadRequest)
	}
	if in.EstimatedMinutes < 1 {
		return nil, fmt.Errorf("%w: estimated_minutes must be at least 1", errors.ErrBadRequest)
	}

	role, err := s.profiles.GetRole(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if role != model.RoleSuperuser {
		return nil, errors.ErrNotSuperuser
	}

	return s.tasks.Create(ctx, &model.Task{
		AssignedBy:       callerID,
		AssignedTo:       in.AssignedTo,
		Title:            in.Title,
		Description:      in.Description,
		EstimatedMinutes: in.EstimatedMinutes,
	})
}

// ListMine returns every task assigned to the caller, in store order.
func (s *taskService) ListMine(ctx context.Context, callerID string) ([]model.Task, error) {
	return s.tasks.ListByAssignee(ctx, callerID)
}

// UpdateStatus moves a task to in_progress or completed. The caller must
// be the assignee; completed tasks never move back to in_progress; the
// completion timestamp is set only on the transition to completed.
func (s *taskService) UpdateStatus(ctx context.Context, callerID, taskID string, newStatus model.TaskStatus) (*model.Task, error) {
	if !model.SettableStatus(newStatus) {
		return nil, fmt.Errorf("%w: %q", errors.ErrInvalidStatus, newStatus)
	}

	task, err := s.tasks.Find(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.AssignedTo != callerID {
		return nil, errors.ErrNotTaskOwner
	}
	if task.Status == model.TaskCompleted && newStatus == model.TaskInProgress {
		return nil, fmt.Errorf("%w: task already completed", errors.ErrInvalidStatus)
	}

	completedAt := ""
	if newStatus == model.TaskCompleted {
		completedAt = time.Now().UTC().Format(time.RFC3339)
	}

	return s.tasks.UpdateStatus(ctx, taskID, newStatus, completedAt)
}
