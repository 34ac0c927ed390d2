package pg

import (
	"context"
	"errors"

	"projects-service/internal/application"
	"projects-service/internal/domain"
	"projects-service/internal/infrastructure/logx"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const activeProjectColumns = `
        project_id, name, description, client_id, client_name, project_manager_id,
        manager_first_name, manager_last_name, start_date, end_date, status`

// ProjectRepo reads v_active_projects and writes through the project procedures.
// It runs in whatever transaction its unit of work currently holds.
type ProjectRepo struct{ cell *txCell }

var _ application.ProjectRepo = (*ProjectRepo)(nil)

func (r *ProjectRepo) GetAllActiveProjects(ctx context.Context) ([]domain.ProjectView, error) {
	const q = `SELECT` + activeProjectColumns + `
        FROM v_active_projects
        ORDER BY name`
	log := logx.L().With(
		zap.String("repo", "project"),
		zap.String("operation", "GetAllActiveProjects"),
		zap.String("sql", q),
	)
	tx, err := r.cell.current()
	if err != nil {
		return nil, err
	}
	log.Debug("sql.query_start")
	rows, err := tx.Query(ctx, q)
	if err != nil {
		log.Error("sql.query_failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	out := make([]domain.ProjectView, 0)
	for rows.Next() {
		v, err := scanProjectView(rows)
		if err != nil {
			log.Error("sql.scan_failed", zap.Error(err))
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		log.Error("sql.rows_failed", zap.Error(err))
		return nil, err
	}
	log.Debug("sql.query_success", zap.Int("rows", len(out)))
	return out, nil
}

func (r *ProjectRepo) GetActiveProjectByID(ctx context.Context, id uuid.UUID) (domain.ProjectView, bool, error) {
	const q = `SELECT` + activeProjectColumns + `
        FROM v_active_projects
        WHERE project_id = $1`
	log := logx.L().With(
		zap.String("repo", "project"),
		zap.String("operation", "GetActiveProjectByID"),
		zap.String("sql", q),
		zap.String("id", id.String()),
	)
	tx, err := r.cell.current()
	if err != nil {
		return domain.ProjectView{}, false, err
	}
	log.Debug("sql.query_start")
	v, err := scanProjectView(tx.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		log.Debug("sql.query_no_rows")
		return domain.ProjectView{}, false, nil
	}
	if err != nil {
		log.Error("sql.query_failed", zap.Error(err))
		return domain.ProjectView{}, false, err
	}
	log.Debug("sql.query_success", zap.String("status", v.Status))
	return v, true, nil
}

func (r *ProjectRepo) CreateProject(ctx context.Context, p domain.Project, creatorUserID uuid.UUID) (uuid.UUID, error) {
	const call = `
        CALL sp_create_project($1::text, $2::text, $3::int, $4::uuid,
                               $5::timestamptz, $6::timestamptz, $7::uuid, NULL::uuid)`
	log := logx.L().With(
		zap.String("repo", "project"),
		zap.String("operation", "CreateProject"),
		zap.String("sql", call),
		zap.String("name", p.Name),
		zap.String("creator", creatorUserID.String()),
	)
	tx, err := r.cell.current()
	if err != nil {
		return uuid.Nil, err
	}
	log.Info("sql.exec_start")
	var id uuid.UUID
	err = tx.QueryRow(ctx, call,
		p.Name, p.Description, p.ClientID, p.ProjectManagerID,
		p.StartDate, p.EndDate, creatorUserID,
	).Scan(&id)
	if err != nil {
		log.Error("sql.exec_failed", zap.Error(err))
		return uuid.Nil, err
	}
	log.Info("sql.exec_success", zap.String("id", id.String()))
	return id, nil
}

func (r *ProjectRepo) SoftDeleteProject(ctx context.Context, projectID, currentUserID uuid.UUID) error {
	const call = `CALL sp_soft_delete_project($1::uuid, $2::uuid)`
	log := logx.L().With(
		zap.String("repo", "project"),
		zap.String("operation", "SoftDeleteProject"),
		zap.String("sql", call),
		zap.String("id", projectID.String()),
		zap.String("user", currentUserID.String()),
	)
	tx, err := r.cell.current()
	if err != nil {
		return err
	}
	log.Info("sql.exec_start")
	if _, err := tx.Exec(ctx, call, projectID, currentUserID); err != nil {
		log.Error("sql.exec_failed", zap.Error(err))
		return err
	}
	log.Info("sql.exec_success")
	return nil
}

func scanProjectView(row pgx.Row) (domain.ProjectView, error) {
	var v domain.ProjectView
	err := row.Scan(
		&v.ID, &v.Name, &v.Description, &v.ClientID, &v.ClientName, &v.ProjectManagerID,
		&v.ManagerFirstName, &v.ManagerLastName, &v.StartDate, &v.EndDate, &v.Status,
	)
	return v, err
}
