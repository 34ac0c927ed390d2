package httpserver

import (
	"time"

	"projects-service/internal/domain"

	"github.com/google/uuid"
)

type createProjectRequest struct {
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	ClientID         *int32     `json:"client_id,omitempty"`
	ProjectManagerID *uuid.UUID `json:"project_manager_id,omitempty"`
	StartDate        *time.Time `json:"start_date,omitempty"`
	EndDate          *time.Time `json:"end_date,omitempty"`
}

func (r createProjectRequest) toDomain() domain.Project {
	return domain.Project{
		Name:             r.Name,
		Description:      r.Description,
		ClientID:         r.ClientID,
		ProjectManagerID: r.ProjectManagerID,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
	}
}

type createProjectResponse struct {
	ProjectID uuid.UUID `json:"project_id"`
}

type managerResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
}

type clientResponse struct {
	ID   int32  `json:"id"`
	Name string `json:"name,omitempty"`
}

type projectResponse struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Status      string           `json:"status"`
	Client      *clientResponse  `json:"client,omitempty"`
	Manager     *managerResponse `json:"manager,omitempty"`
	StartDate   *time.Time       `json:"start_date,omitempty"`
	EndDate     *time.Time       `json:"end_date,omitempty"`
}

func toProjectResponse(v domain.ProjectView) projectResponse {
	out := projectResponse{
		ID:          v.ID,
		Name:        v.Name,
		Description: v.Description,
		Status:      v.Status,
		StartDate:   v.StartDate,
		EndDate:     v.EndDate,
	}
	if v.ClientID != nil {
		out.Client = &clientResponse{ID: *v.ClientID, Name: deref(v.ClientName)}
	}
	if v.ProjectManagerID != nil {
		out.Manager = &managerResponse{ID: *v.ProjectManagerID, FirstName: deref(v.ManagerFirstName), LastName: deref(v.ManagerLastName)}
	}
	return out
}

type taskResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	ProjectID   uuid.UUID  `json:"project_id"`
	ProjectName string     `json:"project_name"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

func toTaskResponse(t domain.TaskDetail) taskResponse {
	return taskResponse{
		ID:          t.TaskID,
		Name:        t.TaskName,
		ProjectID:   t.ProjectID,
		ProjectName: t.ProjectName,
		Status:      t.TaskStatus,
		Priority:    t.TaskPriority,
		DueDate:     t.DueDate,
	}
}

type updateTaskStatusRequest struct {
	StatusID int `json:"status_id"`
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
