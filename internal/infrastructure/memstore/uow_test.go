package memstore_test

import (
	"context"
	"testing"

	"projects-service/internal/application"
	"projects-service/internal/domain"
	"projects-service/internal/infrastructure/memstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var admin = uuid.MustParse("00000000-0000-0000-0000-0000000000aa")

func lookup(t *testing.T, s *memstore.Store, id uuid.UUID) bool {
	t.Helper()
	u, err := s.Begin(context.Background())
	require.NoError(t, err)
	defer u.Close(context.Background())
	_, found, err := u.Projects().GetActiveProjectByID(context.Background(), id)
	require.NoError(t, err)
	return found
}

func TestUnitOfWork_CompletePublishesAndStaysUsable(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	manager := uuid.New()
	s.AddUser(manager, "Grace", "Hopper")
	s.AddClient(7, "Acme")
	client := int32(7)

	u, err := s.Begin(ctx)
	require.NoError(t, err)
	defer u.Close(ctx)

	id, err := u.Projects().CreateProject(ctx, domain.Project{Name: "Alpha", ClientID: &client, ProjectManagerID: &manager}, admin)
	require.NoError(t, err)
	require.False(t, lookup(t, s, id))
	require.NoError(t, u.Complete(ctx))
	require.True(t, lookup(t, s, id))

	id2, err := u.Projects().CreateProject(ctx, domain.Project{Name: "Beta"}, admin)
	require.NoError(t, err)
	require.NoError(t, u.Complete(ctx))

	all, err := u.Projects().GetAllActiveProjects(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "Alpha", all[0].Name)
	require.Equal(t, "Acme", *all[0].ClientName)
	require.Equal(t, "Hopper", *all[0].ManagerLastName)
	require.Equal(t, id2, all[1].ID)
	require.Len(t, s.Audit(), 2)
}

func TestUnitOfWork_CloseDiscardsStagedWrites(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	u, err := s.Begin(ctx)
	require.NoError(t, err)
	id, err := u.Projects().CreateProject(ctx, domain.Project{Name: "Gamma"}, admin)
	require.NoError(t, err)
	_, found, err := u.Projects().GetActiveProjectByID(ctx, id)
	require.NoError(t, err)
	require.True(t, found)

	require.NoError(t, u.Close(ctx))
	require.False(t, lookup(t, s, id))
	require.Empty(t, s.Audit())

	_, err = u.Projects().GetAllActiveProjects(ctx)
	require.ErrorIs(t, err, application.ErrUnitOfWorkClosed)
	require.ErrorIs(t, u.Complete(ctx), application.ErrUnitOfWorkClosed)
}

func TestUnitOfWork_CommitFailureCloses(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	u, err := s.Begin(ctx)
	require.NoError(t, err)
	missing := int32(99)
	id, err := u.Projects().CreateProject(ctx, domain.Project{Name: "Delta", ClientID: &missing}, admin)
	require.NoError(t, err)

	err = u.Complete(ctx)
	require.ErrorIs(t, err, application.ErrTransaction)
	require.ErrorIs(t, err, memstore.ErrForeignKey)
	require.False(t, lookup(t, s, id))
	_, _, err = u.Projects().GetActiveProjectByID(ctx, id)
	require.ErrorIs(t, err, application.ErrUnitOfWorkClosed)
}

func TestUnitOfWork_SoftDeleteAndTasks(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	u, err := s.Begin(ctx)
	require.NoError(t, err)
	defer u.Close(ctx)
	pid, err := u.Projects().CreateProject(ctx, domain.Project{Name: "Eta"}, admin)
	require.NoError(t, err)
	require.NoError(t, u.Complete(ctx))

	taskID, err := s.AddTask(pid, "review PR", nil)
	require.NoError(t, err)
	require.NoError(t, u.Tasks().UpdateTaskStatus(ctx, taskID, domain.TaskStatusDone, admin))
	require.ErrorIs(t, u.Tasks().UpdateTaskStatus(ctx, uuid.New(), domain.TaskStatusDone, admin), memstore.ErrNoData)
	require.ErrorIs(t, u.Tasks().UpdateTaskStatus(ctx, taskID, domain.TaskStatusID(42), admin), memstore.ErrForeignKey)

	tasks, err := u.Tasks().GetTasksForProject(ctx, pid)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Equal(t, "done", tasks[0].TaskStatus)
	require.Equal(t, "Eta", tasks[0].ProjectName)

	require.NoError(t, u.Projects().SoftDeleteProject(ctx, pid, admin))
	require.ErrorIs(t, u.Projects().SoftDeleteProject(ctx, pid, admin), memstore.ErrNoData)
	require.NoError(t, u.Complete(ctx))
	require.False(t, lookup(t, s, pid))

	_, err = s.AddTask(uuid.New(), "orphan", nil)
	require.ErrorIs(t, err, memstore.ErrForeignKey)
}

func TestStore_WithService(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	svc := application.NewProjectService(s)

	pid, err := svc.CreateProject(ctx, domain.Project{Name: "Theta"}, admin, nil)
	require.NoError(t, err)
	_, err = s.AddTask(pid, "a", nil)
	require.NoError(t, err)

	require.NoError(t, svc.ArchiveProjectWithTasks(ctx, pid, admin))
	_, err = svc.GetProject(ctx, pid)
	require.ErrorIs(t, err, application.ErrNotFound)
	tasks, err := svc.ListTasks(ctx, pid)
	require.NoError(t, err)
	require.Equal(t, "archived", tasks[0].TaskStatus)
}
