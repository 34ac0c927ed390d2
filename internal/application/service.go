package application

import (
	"context"
	"errors"
	"fmt"

	"projects-service/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const idemKeyPrefix = "idem:project:create:"

type ProjectService struct {
	uow  UnitOfWorkFactory
	idem IdempotencyStore
	log  *zap.Logger
}

type Option func(*ProjectService)

func WithIdempotency(s IdempotencyStore) Option { return func(p *ProjectService) { p.idem = s } }
func WithLogger(l *zap.Logger) Option           { return func(p *ProjectService) { p.log = l } }

func NewProjectService(uow UnitOfWorkFactory, opts ...Option) *ProjectService {
	s := &ProjectService{uow: uow}
	for _, opt := range opts {
		opt(s)
	}
	if s.idem == nil {
		s.idem = NoopIdempotency{}
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	return s
}

// CreateProject validates p and creates it through sp_create_project. A repeated
// idempotency key is rejected with ErrConflict.
func (s *ProjectService) CreateProject(ctx context.Context, p domain.Project, creator uuid.UUID, idem *string) (uuid.UUID, error) {
	if err := domain.ValidateProject(p); err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	var reserved string
	if idem != nil && *idem != "" {
		reserved = idemKeyPrefix + *idem
		ok, err := s.idem.TryReserve(ctx, reserved)
		if err != nil {
			return uuid.Nil, err
		}
		if !ok {
			return uuid.Nil, ErrConflict
		}
	}
	var id uuid.UUID
	err := WithUnitOfWork(ctx, s.uow, func(ctx context.Context, uow UnitOfWork) error {
		var err error
		id, err = uow.Projects().CreateProject(ctx, p, creator)
		return err
	})
	if err != nil {
		s.log.Warn("project.create_failed", zap.String("name", p.Name), zap.Error(err))
		if reserved != "" {
			if rerr := s.idem.Release(ctx, reserved); rerr != nil {
				s.log.Warn("idempotency.release_failed", zap.String("key", reserved), zap.Error(rerr))
			}
		}
		return uuid.Nil, err
	}
	s.log.Info("project.created", zap.String("project_id", id.String()), zap.String("creator", creator.String()))
	return id, nil
}

func (s *ProjectService) GetProject(ctx context.Context, id uuid.UUID) (domain.ProjectView, error) {
	var out domain.ProjectView
	err := WithUnitOfWork(ctx, s.uow, func(ctx context.Context, uow UnitOfWork) error {
		v, found, err := uow.Projects().GetActiveProjectByID(ctx, id)
		if err != nil {
			return err
		}
		if !found {
			return ErrNotFound
		}
		out = v
		return nil
	})
	return out, err
}

func (s *ProjectService) ListProjects(ctx context.Context) ([]domain.ProjectView, error) {
	var out []domain.ProjectView
	err := WithUnitOfWork(ctx, s.uow, func(ctx context.Context, uow UnitOfWork) error {
		var err error
		out, err = uow.Projects().GetAllActiveProjects(ctx)
		return err
	})
	return out, err
}

func (s *ProjectService) ListTasks(ctx context.Context, projectID uuid.UUID) ([]domain.TaskDetail, error) {
	var out []domain.TaskDetail
	err := WithUnitOfWork(ctx, s.uow, func(ctx context.Context, uow UnitOfWork) error {
		var err error
		out, err = uow.Tasks().GetTasksForProject(ctx, projectID)
		return err
	})
	return out, err
}

func (s *ProjectService) UpdateTaskStatus(ctx context.Context, taskID uuid.UUID, status domain.TaskStatusID, user uuid.UUID) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %w: %d", ErrBadRequest, domain.ErrInvalidStatus, status)
	}
	return WithUnitOfWork(ctx, s.uow, func(ctx context.Context, uow UnitOfWork) error {
		return uow.Tasks().UpdateTaskStatus(ctx, taskID, status, user)
	})
}

// ArchiveProject soft-deletes an active project in a single transaction.
func (s *ProjectService) ArchiveProject(ctx context.Context, projectID, adminUserID uuid.UUID) error {
	err := WithUnitOfWork(ctx, s.uow, func(ctx context.Context, uow UnitOfWork) error {
		if err := requireActive(ctx, uow, projectID); err != nil {
			return err
		}
		return uow.Projects().SoftDeleteProject(ctx, projectID, adminUserID)
	})
	s.logArchive(projectID, false, err)
	return err
}

// ArchiveProjectWithTasks moves every task of the project to the archived status
// and then soft-deletes the project. Either all of it commits or none of it does.
func (s *ProjectService) ArchiveProjectWithTasks(ctx context.Context, projectID, adminUserID uuid.UUID) error {
	err := WithUnitOfWork(ctx, s.uow, func(ctx context.Context, uow UnitOfWork) error {
		if err := requireActive(ctx, uow, projectID); err != nil {
			return err
		}
		tasks, err := uow.Tasks().GetTasksForProject(ctx, projectID)
		if err != nil {
			return err
		}
		for _, t := range tasks {
			if err := uow.Tasks().UpdateTaskStatus(ctx, t.TaskID, domain.TaskStatusArchived, adminUserID); err != nil {
				return err
			}
		}
		return uow.Projects().SoftDeleteProject(ctx, projectID, adminUserID)
	})
	s.logArchive(projectID, true, err)
	return err
}

func (s *ProjectService) logArchive(projectID uuid.UUID, withTasks bool, err error) {
	log := s.log.With(zap.String("project_id", projectID.String()), zap.Bool("with_tasks", withTasks))
	switch {
	case err == nil:
		log.Info("project.archived")
	case errors.Is(err, ErrNotFound):
		log.Info("project.archive_not_found")
	default:
		log.Error("project.archive_failed", zap.Error(err))
	}
}

func requireActive(ctx context.Context, uow UnitOfWork, projectID uuid.UUID) error {
	_, found, err := uow.Projects().GetActiveProjectByID(ctx, projectID)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return nil
}
