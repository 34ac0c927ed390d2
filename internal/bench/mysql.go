package bench

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

const (
	mysqlTable  = "project_logs_benchmark"
	mysqlCreate = `CREATE TABLE IF NOT EXISTS project_logs_benchmark (
    id BIGINT AUTO_INCREMENT PRIMARY KEY,
    project_id INT NOT NULL,
    user_id INT NOT NULL,
    action_type VARCHAR(32) NOT NULL,
    details_json JSON NOT NULL,
    created_at DATETIME(6) NOT NULL,
    INDEX idx_project_id (project_id)
)`
	mysqlTruncate = "TRUNCATE TABLE project_logs_benchmark"
	mysqlInsert   = "INSERT INTO project_logs_benchmark (project_id, user_id, action_type, details_json, created_at) VALUES (?, ?, ?, ?, ?)"
	mysqlSelect   = "SELECT id, project_id, user_id, action_type, details_json, created_at FROM project_logs_benchmark WHERE project_id = ?"
)

// MySQL writes the dataset into a relational table inside one transaction.
type MySQL struct {
	DSN            string
	DB             *sql.DB // opened from DSN when nil
	ConnectTimeout time.Duration
}

func (m *MySQL) Name() string { return "MySQL" }

func (m *MySQL) Run(ctx context.Context, run *Run) error {
	db := m.DB
	if db == nil {
		var err error
		if db, err = openMySQL(ctx, m.DSN, m.ConnectTimeout); err != nil {
			return err
		}
		defer db.Close()
	}

	if _, err := db.ExecContext(ctx, mysqlCreate); err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	if _, err := db.ExecContext(ctx, mysqlTruncate); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	took, err := run.Measure.Time("mysql.insert_bulk", func() error { return m.insertAll(ctx, db, run) })
	if err != nil {
		return fmt.Errorf("insert: %w", err)
	}
	run.Report.Logf("[INSERT] wrote %d rows: %d ms", len(run.Logs), took.Milliseconds())

	var found int
	took, err = run.Measure.Time("mysql.select", func() error {
		found, err = countRows(ctx, db, run.ProjectID)
		return err
	})
	if err != nil {
		return fmt.Errorf("select: %w", err)
	}
	run.Report.Logf("[SELECT] project_id=%d: %d ms (found %d)", run.ProjectID, took.Milliseconds(), found)
	return nil
}

func (m *MySQL) insertAll(ctx context.Context, db *sql.DB, run *Run) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	stmt, err := tx.PrepareContext(ctx, mysqlInsert)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, l := range run.Logs {
		start := time.Now()
		if _, err = stmt.ExecContext(ctx, l.ProjectID, l.UserID, l.ActionType, l.DetailsPayload, l.Timestamp); err != nil {
			return err
		}
		run.Measure.Measure("mysql.insert_row", time.Since(start))
	}
	return tx.Commit()
}

func countRows(ctx context.Context, db *sql.DB, projectID int) (int, error) {
	rows, err := db.QueryContext(ctx, mysqlSelect, projectID)
	if err != nil {
		return 0, err
	}
	defer rows.Close()
	n := 0
	for rows.Next() {
		n++
	}
	return n, rows.Err()
}

func openMySQL(ctx context.Context, dsn string, timeout time.Duration) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("mysql dsn is empty")
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	if err := retry(ctx, timeout, func() error { return db.PingContext(ctx) }); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	return db, nil
}
