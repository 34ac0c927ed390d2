package domain

import (
	"time"

	"github.com/google/uuid"
)

// TaskDetail is a row of v_project_task_details.
type TaskDetail struct {
	TaskID       uuid.UUID
	TaskName     string
	ProjectID    uuid.UUID
	ProjectName  string
	TaskStatus   string
	TaskPriority string
	DueDate      *time.Time
}
