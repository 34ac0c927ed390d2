package pg

import (
	"context"

	"projects-service/internal/application"
	"projects-service/internal/domain"
	"projects-service/internal/infrastructure/logx"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TaskRepo struct{ cell *txCell }

var _ application.TaskRepo = (*TaskRepo)(nil)

func (r *TaskRepo) GetTasksForProject(ctx context.Context, projectID uuid.UUID) ([]domain.TaskDetail, error) {
	const q = `
        SELECT task_id, task_name, project_id, project_name, task_status, task_priority, due_date
        FROM v_project_task_details
        WHERE project_id = $1
        ORDER BY task_name`
	log := logx.L().With(
		zap.String("repo", "task"),
		zap.String("operation", "GetTasksForProject"),
		zap.String("sql", q),
		zap.String("project_id", projectID.String()),
	)
	tx, err := r.cell.current()
	if err != nil {
		return nil, err
	}
	log.Debug("sql.query_start")
	rows, err := tx.Query(ctx, q, projectID)
	if err != nil {
		log.Error("sql.query_failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	out := make([]domain.TaskDetail, 0)
	for rows.Next() {
		var t domain.TaskDetail
		if err := rows.Scan(&t.TaskID, &t.TaskName, &t.ProjectID, &t.ProjectName,
			&t.TaskStatus, &t.TaskPriority, &t.DueDate); err != nil {
			log.Error("sql.scan_failed", zap.Error(err))
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		log.Error("sql.rows_failed", zap.Error(err))
		return nil, err
	}
	log.Debug("sql.query_success", zap.Int("rows", len(out)))
	return out, nil
}

func (r *TaskRepo) UpdateTaskStatus(ctx context.Context, taskID uuid.UUID, newStatus domain.TaskStatusID, currentUserID uuid.UUID) error {
	const call = `CALL sp_update_task_status($1::uuid, $2::int, $3::uuid)`
	log := logx.L().With(
		zap.String("repo", "task"),
		zap.String("operation", "UpdateTaskStatus"),
		zap.String("sql", call),
		zap.String("id", taskID.String()),
		zap.String("status", newStatus.String()),
		zap.String("user", currentUserID.String()),
	)
	tx, err := r.cell.current()
	if err != nil {
		return err
	}
	log.Info("sql.exec_start")
	if _, err := tx.Exec(ctx, call, taskID, int32(newStatus), currentUserID); err != nil {
		log.Error("sql.exec_failed", zap.Error(err))
		return err
	}
	log.Info("sql.exec_success")
	return nil
}
