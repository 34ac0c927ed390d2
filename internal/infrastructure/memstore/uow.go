package memstore

import (
	"context"
	"fmt"
	"sort"

	"projects-service/internal/application"
	"projects-service/internal/domain"

	"github.com/google/uuid"
)

// UnitOfWork reads committed state overlaid with its own staged writes.
// Complete publishes the staged writes atomically; Close drops them.
type UnitOfWork struct {
	s       *Store
	pending pending
	closed  bool
}

type pending struct {
	projects map[uuid.UUID]projectRow
	tasks    map[uuid.UUID]taskRow
	audit    []AuditEntry
}

func newPending() pending {
	return pending{projects: map[uuid.UUID]projectRow{}, tasks: map[uuid.UUID]taskRow{}}
}

var (
	_ application.UnitOfWork        = (*UnitOfWork)(nil)
	_ application.UnitOfWorkFactory = (*Store)(nil)
)

func (s *Store) Begin(context.Context) (application.UnitOfWork, error) {
	return &UnitOfWork{s: s, pending: newPending()}, nil
}

func (u *UnitOfWork) Projects() application.ProjectRepo { return projectRepo{u} }
func (u *UnitOfWork) Tasks() application.TaskRepo       { return taskRepo{u} }

func (u *UnitOfWork) Complete(context.Context) error {
	if u.closed {
		return application.ErrUnitOfWorkClosed
	}
	s := u.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range u.pending.projects {
		if p.ClientID != nil {
			if _, ok := s.clients[*p.ClientID]; !ok {
				u.closed = true
				return fmt.Errorf("%w: commit: %w: client %d", application.ErrTransaction, ErrForeignKey, *p.ClientID)
			}
		}
		if p.ProjectManagerID != nil {
			if _, ok := s.users[*p.ProjectManagerID]; !ok {
				u.closed = true
				return fmt.Errorf("%w: commit: %w: manager %s", application.ErrTransaction, ErrForeignKey, p.ProjectManagerID)
			}
		}
	}
	for id, p := range u.pending.projects {
		s.projects[id] = p
	}
	for id, t := range u.pending.tasks {
		s.tasks[id] = t
	}
	s.audit = append(s.audit, u.pending.audit...)
	u.pending = newPending()
	return nil
}

func (u *UnitOfWork) Close(context.Context) error {
	u.closed = true
	u.pending = newPending()
	return nil
}

func (u *UnitOfWork) project(id uuid.UUID) (projectRow, bool) {
	if p, ok := u.pending.projects[id]; ok {
		return p, true
	}
	p, ok := u.s.projects[id]
	return p, ok
}

func (u *UnitOfWork) task(id uuid.UUID) (taskRow, bool) {
	if t, ok := u.pending.tasks[id]; ok {
		return t, true
	}
	t, ok := u.s.tasks[id]
	return t, ok
}

func (u *UnitOfWork) record(actor uuid.UUID, action, entity, id string) {
	u.pending.audit = append(u.pending.audit, AuditEntry{Actor: actor, Action: action, Entity: entity, EntityID: id, At: u.s.now()})
}

type projectRepo struct{ u *UnitOfWork }

func (r projectRepo) GetAllActiveProjects(context.Context) ([]domain.ProjectView, error) {
	if r.u.closed {
		return nil, application.ErrUnitOfWorkClosed
	}
	s := r.u.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := map[uuid.UUID]struct{}{}
	for id := range s.projects {
		ids[id] = struct{}{}
	}
	for id := range r.u.pending.projects {
		ids[id] = struct{}{}
	}
	out := make([]domain.ProjectView, 0, len(ids))
	for id := range ids {
		if p, _ := r.u.project(id); !p.Deleted {
			out = append(out, s.view(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r projectRepo) GetActiveProjectByID(_ context.Context, id uuid.UUID) (domain.ProjectView, bool, error) {
	if r.u.closed {
		return domain.ProjectView{}, false, application.ErrUnitOfWorkClosed
	}
	s := r.u.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := r.u.project(id)
	if !ok || p.Deleted {
		return domain.ProjectView{}, false, nil
	}
	return s.view(p), true, nil
}

func (r projectRepo) CreateProject(_ context.Context, p domain.Project, creatorUserID uuid.UUID) (uuid.UUID, error) {
	if r.u.closed {
		return uuid.Nil, application.ErrUnitOfWorkClosed
	}
	p.ID = uuid.New()
	r.u.pending.projects[p.ID] = projectRow{Project: p, Status: "active", CreatedBy: creatorUserID, UpdatedBy: creatorUserID}
	r.u.record(creatorUserID, "create", "project", p.ID.String())
	return p.ID, nil
}

func (r projectRepo) SoftDeleteProject(_ context.Context, projectID, currentUserID uuid.UUID) error {
	if r.u.closed {
		return application.ErrUnitOfWorkClosed
	}
	r.u.s.mu.RLock()
	p, ok := r.u.project(projectID)
	r.u.s.mu.RUnlock()
	if !ok || p.Deleted {
		return fmt.Errorf("%w: active project %s", ErrNoData, projectID)
	}
	p.Deleted, p.Status, p.UpdatedBy = true, "archived", currentUserID
	r.u.pending.projects[projectID] = p
	r.u.record(currentUserID, "soft_delete", "project", projectID.String())
	return nil
}

type taskRepo struct{ u *UnitOfWork }

func (r taskRepo) GetTasksForProject(_ context.Context, projectID uuid.UUID) ([]domain.TaskDetail, error) {
	if r.u.closed {
		return nil, application.ErrUnitOfWorkClosed
	}
	s := r.u.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := r.u.project(projectID)
	if !ok {
		return []domain.TaskDetail{}, nil
	}
	ids := map[uuid.UUID]struct{}{}
	for id, t := range s.tasks {
		if t.ProjectID == projectID {
			ids[id] = struct{}{}
		}
	}
	for id, t := range r.u.pending.tasks {
		if t.ProjectID == projectID {
			ids[id] = struct{}{}
		}
	}
	out := make([]domain.TaskDetail, 0, len(ids))
	for id := range ids {
		t, _ := r.u.task(id)
		out = append(out, domain.TaskDetail{
			TaskID:       t.ID,
			TaskName:     t.Name,
			ProjectID:    p.ID,
			ProjectName:  p.Name,
			TaskStatus:   t.StatusID.String(),
			TaskPriority: t.Priority,
			DueDate:      t.DueDate,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TaskName < out[j].TaskName })
	return out, nil
}

func (r taskRepo) UpdateTaskStatus(_ context.Context, taskID uuid.UUID, newStatus domain.TaskStatusID, currentUserID uuid.UUID) error {
	if r.u.closed {
		return application.ErrUnitOfWorkClosed
	}
	if !newStatus.Valid() {
		return fmt.Errorf("%w: status %d", ErrForeignKey, newStatus)
	}
	r.u.s.mu.RLock()
	t, ok := r.u.task(taskID)
	r.u.s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: task %s", ErrNoData, taskID)
	}
	t.StatusID = newStatus
	r.u.pending.tasks[taskID] = t
	r.u.record(currentUserID, "update_status", "task", taskID.String())
	return nil
}
