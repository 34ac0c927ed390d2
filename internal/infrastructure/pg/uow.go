package pg

import (
	"context"
	"errors"
	"fmt"

	"projects-service/internal/application"
	"projects-service/internal/infrastructure/logx"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// conn is the single connection a unit of work runs on. *pgxpool.Conn
// satisfies it directly; standaloneConn adapts a *pgx.Conn.
type conn interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Release()
}

type standaloneConn struct{ *pgx.Conn }

func (c standaloneConn) Release() { _ = c.Conn.Close(context.Background()) }

// txCell holds the transaction every repository of a unit of work executes in.
// A nil tx means the unit of work is closed.
type txCell struct{ tx pgx.Tx }

func (c *txCell) current() (pgx.Tx, error) {
	if c.tx == nil {
		return nil, application.ErrUnitOfWorkClosed
	}
	return c.tx, nil
}

type UnitOfWork struct {
	conn     conn
	cell     *txCell
	projects *ProjectRepo
	tasks    *TaskRepo
	log      *zap.Logger
	closed   bool
	// generation counts committed transactions; T0 is generation 0.
	generation uint64
}

var _ application.UnitOfWork = (*UnitOfWork)(nil)

func newUnitOfWork(ctx context.Context, c conn) (*UnitOfWork, error) {
	tx, err := c.Begin(ctx)
	if err != nil {
		c.Release()
		return nil, fmt.Errorf("%w: begin transaction: %w", application.ErrConnection, err)
	}
	cell := &txCell{tx: tx}
	u := &UnitOfWork{
		conn:     c,
		cell:     cell,
		projects: &ProjectRepo{cell: cell},
		tasks:    &TaskRepo{cell: cell},
		log:      logx.L().With(zap.String("component", "uow")),
	}
	u.log.Debug("uow.begin")
	return u, nil
}

// Open connects with a plain pgx connection, outside any pool, and begins the
// first transaction.
func Open(ctx context.Context, url string) (*UnitOfWork, error) {
	c, err := pgx.Connect(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: connect: %w", application.ErrConnection, err)
	}
	return newUnitOfWork(ctx, standaloneConn{c})
}

func (u *UnitOfWork) Projects() application.ProjectRepo { return u.projects }
func (u *UnitOfWork) Tasks() application.TaskRepo       { return u.tasks }

func (u *UnitOfWork) Complete(ctx context.Context) error {
	tx, err := u.cell.current()
	if err != nil {
		return err
	}
	log := u.log.With(zap.Uint64("generation", u.generation))
	if err := tx.Commit(ctx); err != nil {
		log.Error("uow.commit_failed", zap.Error(err))
		u.rollback(ctx, tx)
		u.release()
		return fmt.Errorf("%w: commit: %w", application.ErrTransaction, err)
	}
	u.generation++
	next, err := u.conn.Begin(ctx)
	if err != nil {
		log.Error("uow.rearm_failed", zap.Error(err))
		u.release()
		return fmt.Errorf("%w: begin next transaction: %w", application.ErrTransaction, err)
	}
	u.cell.tx = next
	log.Debug("uow.committed")
	return nil
}

func (u *UnitOfWork) Close(ctx context.Context) error {
	if u.closed {
		return nil
	}
	var err error
	if tx := u.cell.tx; tx != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			err = fmt.Errorf("%w: rollback: %w", application.ErrTransaction, rbErr)
		}
	}
	u.release()
	u.log.Debug("uow.closed", zap.Uint64("generation", u.generation), zap.Error(err))
	return err
}

func (u *UnitOfWork) rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		u.log.Warn("uow.rollback_failed", zap.Error(err))
	}
}

func (u *UnitOfWork) release() {
	u.cell.tx = nil
	if !u.closed {
		u.closed = true
		u.conn.Release()
	}
}

// Factory hands out units of work backed by connections from the pool.
type Factory struct{ DB *DB }

var _ application.UnitOfWorkFactory = (*Factory)(nil)

func NewFactory(db *DB) *Factory { return &Factory{DB: db} }

func (f *Factory) Begin(ctx context.Context) (application.UnitOfWork, error) {
	c, err := f.DB.Pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: acquire: %w", application.ErrConnection, err)
	}
	u, err := newUnitOfWork(ctx, c)
	if err != nil {
		return nil, err
	}
	return u, nil
}
