package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"projects-service/internal/application"
	"projects-service/internal/domain"
	"projects-service/internal/infrastructure/memstore"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oapi-codegen/runtime"
)

// pgNoDataFound is the SQLSTATE raised by the write procedures for unknown rows.
const pgNoDataFound = "P0002"

type Server struct {
	svc  *application.ProjectService
	ping func(ctx context.Context) error
}

func NewServer(svc *application.ProjectService) *Server { return &Server{svc: svc} }

// SetReadyCheck installs the probe behind /readyz.
func (s *Server) SetReadyCheck(f func(ctx context.Context) error) { s.ping = f }

func (s *Server) ListProjects(w http.ResponseWriter, r *http.Request) {
	views, err := s.svc.ListProjects(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	out := make([]projectResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toProjectResponse(v))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) CreateProject(w http.ResponseWriter, r *http.Request) {
	user, ok := bindUser(w, r)
	if !ok {
		return
	}
	var body createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	var idem *string
	if k := r.Header.Get("X-Idempotency-Key"); k != "" {
		idem = &k
	}
	id, err := s.svc.CreateProject(r.Context(), body.toDomain(), user, idem)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, createProjectResponse{ProjectID: id})
}

func (s *Server) GetProject(w http.ResponseWriter, r *http.Request) {
	id, ok := bindPathUUID(w, r, "id")
	if !ok {
		return
	}
	v, err := s.svc.GetProject(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProjectResponse(v))
}

func (s *Server) DeleteProject(w http.ResponseWriter, r *http.Request) {
	s.archive(w, r, false)
}

func (s *Server) ArchiveProject(w http.ResponseWriter, r *http.Request) {
	var withTasks *bool
	if err := runtime.BindQueryParameter("form", true, false, "with_tasks", r.URL.Query(), &withTasks); err != nil {
		writeError(w, http.StatusBadRequest, "invalid with_tasks")
		return
	}
	s.archive(w, r, withTasks != nil && *withTasks)
}

func (s *Server) archive(w http.ResponseWriter, r *http.Request, withTasks bool) {
	id, ok := bindPathUUID(w, r, "id")
	if !ok {
		return
	}
	user, ok := bindUser(w, r)
	if !ok {
		return
	}
	var err error
	if withTasks {
		err = s.svc.ArchiveProjectWithTasks(r.Context(), id, user)
	} else {
		err = s.svc.ArchiveProject(r.Context(), id, user)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) ListTasks(w http.ResponseWriter, r *http.Request) {
	id, ok := bindPathUUID(w, r, "id")
	if !ok {
		return
	}
	tasks, err := s.svc.ListTasks(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	out := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskResponse(t))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := bindPathUUID(w, r, "id")
	if !ok {
		return
	}
	user, ok := bindUser(w, r)
	if !ok {
		return
	}
	var body updateTaskStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.svc.UpdateTaskStatus(r.Context(), id, domain.TaskStatusID(body.StatusID), user); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func bindPathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func bindUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	var user uuid.UUID
	v := r.Header.Get("X-User-ID")
	if v == "" {
		writeError(w, http.StatusBadRequest, "X-User-ID header is required")
		return uuid.Nil, false
	}
	err := runtime.BindStyledParameterWithOptions("simple", "X-User-ID", v, &user,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Explode: false, Required: true})
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid X-User-ID")
		return uuid.Nil, false
	}
	return user, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Code: status, Message: msg})
}

func writeServiceError(w http.ResponseWriter, err error) {
	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, application.ErrNotFound),
		errors.Is(err, memstore.ErrNoData),
		errors.As(err, &pgErr) && pgErr.Code == pgNoDataFound:
		writeError(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
	case errors.Is(err, application.ErrBadRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, application.ErrConflict):
		writeError(w, http.StatusConflict, "duplicate request")
	default:
		writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}
