package application

import (
	"context"
	"errors"

	"projects-service/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrRepo = errors.New("repo error")
)

// fakeStore is the committed state shared by every fakeUoW of one fakeFactory.
type fakeStore struct {
	projects map[uuid.UUID]domain.ProjectView
	tasks    map[uuid.UUID]domain.TaskDetail
}

func (s fakeStore) clone() fakeStore {
	out := fakeStore{
		projects: make(map[uuid.UUID]domain.ProjectView, len(s.projects)),
		tasks:    make(map[uuid.UUID]domain.TaskDetail, len(s.tasks)),
	}
	for k, v := range s.projects {
		out.projects[k] = v
	}
	for k, v := range s.tasks {
		out.tasks[k] = v
	}
	return out
}

type fakeFactory struct {
	store     fakeStore
	beginErr  error
	commitErr error
	repoErr   error
	failTask  uuid.UUID

	begins, completes, closes int
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{store: fakeStore{
		projects: map[uuid.UUID]domain.ProjectView{},
		tasks:    map[uuid.UUID]domain.TaskDetail{},
	}}
}

func (f *fakeFactory) Begin(context.Context) (UnitOfWork, error) {
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	f.begins++
	return &fakeUoW{f: f, staged: f.store.clone()}, nil
}

type fakeUoW struct {
	f      *fakeFactory
	staged fakeStore
	closed bool
}

func (u *fakeUoW) Projects() ProjectRepo { return fakeProjects{u} }
func (u *fakeUoW) Tasks() TaskRepo       { return fakeTasks{u} }

func (u *fakeUoW) Complete(context.Context) error {
	if u.closed {
		return ErrUnitOfWorkClosed
	}
	u.f.completes++
	if u.f.commitErr != nil {
		u.closed = true
		return errors.Join(ErrTransaction, u.f.commitErr)
	}
	u.f.store = u.staged.clone()
	return nil
}

func (u *fakeUoW) Close(context.Context) error {
	if !u.closed {
		u.f.closes++
	}
	u.closed = true
	return nil
}

type fakeProjects struct{ u *fakeUoW }

func (r fakeProjects) GetAllActiveProjects(context.Context) ([]domain.ProjectView, error) {
	if r.u.f.repoErr != nil {
		return nil, r.u.f.repoErr
	}
	out := make([]domain.ProjectView, 0, len(r.u.staged.projects))
	for _, p := range r.u.staged.projects {
		out = append(out, p)
	}
	return out, nil
}

func (r fakeProjects) GetActiveProjectByID(_ context.Context, id uuid.UUID) (domain.ProjectView, bool, error) {
	if r.u.f.repoErr != nil {
		return domain.ProjectView{}, false, r.u.f.repoErr
	}
	p, ok := r.u.staged.projects[id]
	return p, ok, nil
}

func (r fakeProjects) CreateProject(_ context.Context, p domain.Project, _ uuid.UUID) (uuid.UUID, error) {
	if r.u.f.repoErr != nil {
		return uuid.Nil, r.u.f.repoErr
	}
	id := uuid.New()
	r.u.staged.projects[id] = domain.ProjectView{ID: id, Name: p.Name, Description: p.Description, Status: "active"}
	return id, nil
}

func (r fakeProjects) SoftDeleteProject(_ context.Context, id, _ uuid.UUID) error {
	if r.u.f.repoErr != nil {
		return r.u.f.repoErr
	}
	delete(r.u.staged.projects, id)
	return nil
}

type fakeTasks struct{ u *fakeUoW }

func (r fakeTasks) GetTasksForProject(_ context.Context, projectID uuid.UUID) ([]domain.TaskDetail, error) {
	var out []domain.TaskDetail
	for _, t := range r.u.staged.tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r fakeTasks) UpdateTaskStatus(_ context.Context, taskID uuid.UUID, st domain.TaskStatusID, _ uuid.UUID) error {
	t, ok := r.u.staged.tasks[taskID]
	if !ok || taskID == r.u.f.failTask {
		return ErrRepo
	}
	t.TaskStatus = st.String()
	r.u.staged.tasks[taskID] = t
	return nil
}

type fakeIdem struct{ seen map[string]bool }

func (f *fakeIdem) TryReserve(_ context.Context, k string) (bool, error) {
	if f.seen == nil {
		f.seen = map[string]bool{}
	}
	if f.seen[k] {
		return false, nil
	}
	f.seen[k] = true
	return true, nil
}

func (f *fakeIdem) Release(_ context.Context, k string) error {
	delete(f.seen, k)
	return nil
}
