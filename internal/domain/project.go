package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Project is the write model passed to sp_create_project.
type Project struct {
	ID               uuid.UUID
	Name             string
	Description      string
	ClientID         *int32
	ProjectManagerID *uuid.UUID
	StartDate        *time.Time
	EndDate          *time.Time
}

// ProjectView is a row of v_active_projects.
type ProjectView struct {
	ID               uuid.UUID
	Name             string
	Description      string
	ClientID         *int32
	ClientName       *string
	ProjectManagerID *uuid.UUID
	ManagerFirstName *string
	ManagerLastName  *string
	StartDate        *time.Time
	EndDate          *time.Time
	Status           string
}

const maxProjectNameLen = 200

func ValidateProject(p Project) error {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProject)
	}
	if len(name) > maxProjectNameLen {
		return fmt.Errorf("%w: name longer than %d", ErrInvalidProject, maxProjectNameLen)
	}
	if p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(*p.StartDate) {
		return fmt.Errorf("%w: end date before start date", ErrInvalidProject)
	}
	return nil
}
