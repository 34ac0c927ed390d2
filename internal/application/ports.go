package application

import (
	"context"

	"projects-service/internal/domain"

	"github.com/google/uuid"
)

// ProjectRepo reads from v_active_projects and writes through stored procedures.
// It runs inside the transaction of the unit of work that owns it.
type ProjectRepo interface {
	GetAllActiveProjects(ctx context.Context) ([]domain.ProjectView, error)
	// GetActiveProjectByID reports found=false with a nil error when no active row matches.
	GetActiveProjectByID(ctx context.Context, id uuid.UUID) (domain.ProjectView, bool, error)
	CreateProject(ctx context.Context, p domain.Project, creatorUserID uuid.UUID) (uuid.UUID, error)
	SoftDeleteProject(ctx context.Context, projectID, currentUserID uuid.UUID) error
}

type TaskRepo interface {
	GetTasksForProject(ctx context.Context, projectID uuid.UUID) ([]domain.TaskDetail, error)
	UpdateTaskStatus(ctx context.Context, taskID uuid.UUID, newStatus domain.TaskStatusID, currentUserID uuid.UUID) error
}
