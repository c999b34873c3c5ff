package driven

import (
	"context"

	"github.com/custodia-labs/foodtrend/internal/core/domain"
)

// SchedulerStore persists daemon task state so interval bookkeeping
// survives restarts, plus a bounded execution history.
type SchedulerStore interface {
	// GetTask retrieves a task by ID.
	// Returns nil and no error if the task does not exist.
	GetTask(ctx context.Context, taskID string) (*domain.ScheduledTask, error)

	// ListTasks returns all tasks ordered by ID.
	ListTasks(ctx context.Context) ([]domain.ScheduledTask, error)

	// SaveTask creates or updates a task keyed by ID.
	SaveTask(ctx context.Context, task *domain.ScheduledTask) error

	// DeleteTask removes a task and its history.
	DeleteTask(ctx context.Context, taskID string) error

	// RecordResult appends one execution result.
	RecordResult(ctx context.Context, result *domain.TaskResult) error

	// GetTaskHistory returns recent results for a task, newest first.
	GetTaskHistory(ctx context.Context, taskID string, limit int) ([]domain.TaskResult, error)

	// PruneHistory keeps only the newest keep results per task.
	PruneHistory(ctx context.Context, keep int) error
}
