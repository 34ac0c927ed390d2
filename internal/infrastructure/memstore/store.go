package memstore

import (
	"errors"
	"sync"
	"time"

	"projects-service/internal/domain"

	"github.com/google/uuid"
)

var (
	// ErrNoData mirrors the no_data_found error raised by the write procedures.
	ErrNoData = errors.New("memstore: no data found")
	// ErrForeignKey is returned at commit time when a project references an unknown client or manager.
	ErrForeignKey = errors.New("memstore: foreign key violation")
)

type projectRow struct {
	domain.Project
	Status    string
	Deleted   bool
	CreatedBy uuid.UUID
	UpdatedBy uuid.UUID
}

type taskRow struct {
	ID        uuid.UUID
	ProjectID uuid.UUID
	Name      string
	StatusID  domain.TaskStatusID
	Priority  string
	DueDate   *time.Time
}

type user struct{ First, Last string }

// AuditEntry is what the write procedures record for every change.
type AuditEntry struct {
	Actor    uuid.UUID
	Action   string
	Entity   string
	EntityID string
	At       time.Time
}

// Store keeps committed state in process memory. Units of work stage their
// changes and publish them under the store lock on Complete.
type Store struct {
	mu       sync.RWMutex
	projects map[uuid.UUID]projectRow
	tasks    map[uuid.UUID]taskRow
	clients  map[int32]string
	users    map[uuid.UUID]user
	audit    []AuditEntry
	now      func() time.Time
}

func New() *Store {
	return &Store{
		projects: map[uuid.UUID]projectRow{},
		tasks:    map[uuid.UUID]taskRow{},
		clients:  map[int32]string{},
		users:    map[uuid.UUID]user{},
		now:      time.Now,
	}
}

func (s *Store) AddClient(id int32, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[id] = name
}

func (s *Store) AddUser(id uuid.UUID, first, last string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[id] = user{First: first, Last: last}
}

// AddTask inserts a todo task with medium priority into a committed project.
func (s *Store) AddTask(projectID uuid.UUID, name string, due *time.Time) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[projectID]; !ok {
		return uuid.Nil, ErrForeignKey
	}
	id := uuid.New()
	s.tasks[id] = taskRow{ID: id, ProjectID: projectID, Name: name, StatusID: domain.TaskStatusTodo, Priority: "medium", DueDate: due}
	return id, nil
}

// Audit returns a copy of the committed audit trail.
func (s *Store) Audit() []AuditEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]AuditEntry(nil), s.audit...)
}

func (s *Store) view(r projectRow) domain.ProjectView {
	v := domain.ProjectView{
		ID:               r.ID,
		Name:             r.Name,
		Description:      r.Description,
		ClientID:         r.ClientID,
		ProjectManagerID: r.ProjectManagerID,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		Status:           r.Status,
	}
	if r.ClientID != nil {
		if name, ok := s.clients[*r.ClientID]; ok {
			v.ClientName = &name
		}
	}
	if r.ProjectManagerID != nil {
		if u, ok := s.users[*r.ProjectManagerID]; ok {
			first, last := u.First, u.Last
			v.ManagerFirstName, v.ManagerLastName = &first, &last
		}
	}
	return v
}
