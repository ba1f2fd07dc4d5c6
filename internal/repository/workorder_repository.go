package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/spec-kit/crane-workorders/internal/domain"
	"github.com/spec-kit/crane-workorders/internal/persistence"
)

const workorderTable = "workorder"

var workorderColumns = []string{
	"id", "title", "description", "location", "technician", "status", "created_at", "updated_at",
}

// WorkorderRepository encapsulates workorder persistence. Every call runs as
// one statement or one transaction, so each commits or fails as a whole.
type WorkorderRepository interface {
	List(ctx context.Context) ([]domain.Workorder, error)
	GetByID(ctx context.Context, id int64) (*domain.Workorder, error)
	Create(ctx context.Context, input domain.WorkorderInput) (*domain.Workorder, error)
	Update(ctx context.Context, id int64, input domain.WorkorderInput) (*domain.Workorder, error)
	Delete(ctx context.Context, id int64) error
}

// WorkorderOption customizes the repository.
type WorkorderOption func(*workorderRepository)

// WithClock replaces the time source used for created_at/updated_at.
func WithClock(now func() time.Time) WorkorderOption {
	return func(r *workorderRepository) {
		r.now = now
	}
}

type workorderRepository struct {
	db  *sqlx.DB
	sb  squirrel.StatementBuilderType
	now func() time.Time
}

// NewWorkorderRepository instantiates repository.
func NewWorkorderRepository(store *persistence.Store, opts ...WorkorderOption) WorkorderRepository {
	r := &workorderRepository{db: store.DB(), sb: store.Builder(), now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// timestamp returns the current instant in UTC at microsecond precision, the
// finest resolution both supported stores keep.
func (r *workorderRepository) timestamp() time.Time {
	return r.now().UTC().Truncate(time.Microsecond)
}

func (r *workorderRepository) List(ctx context.Context) ([]domain.Workorder, error) {
	query, args, err := r.sb.Select(workorderColumns...).From(workorderTable).OrderBy("id").ToSql()
	if err != nil {
		return nil, err
	}

	items := []domain.Workorder{}
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("list workorders: %w", err)
	}
	for i := range items {
		normalize(&items[i])
	}
	return items, nil
}

func (r *workorderRepository) GetByID(ctx context.Context, id int64) (*domain.Workorder, error) {
	return r.getOne(ctx, r.db, id)
}

func (r *workorderRepository) getOne(ctx context.Context, q sqlx.QueryerContext, id int64) (*domain.Workorder, error) {
	query, args, err := r.sb.Select(workorderColumns...).From(workorderTable).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	var wo domain.Workorder
	if err := sqlx.GetContext(ctx, q, &wo, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get workorder: %w", err)
	}
	normalize(&wo)
	return &wo, nil
}

func (r *workorderRepository) Create(ctx context.Context, input domain.WorkorderInput) (*domain.Workorder, error) {
	now := r.timestamp()
	wo := domain.Workorder{
		Title:       input.Title,
		Description: input.Description,
		Location:    input.Location,
		Technician:  input.Technician,
		Status:      input.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	query, args, err := r.sb.Insert(workorderTable).
		Columns("title", "description", "location", "technician", "status", "created_at", "updated_at").
		Values(wo.Title, wo.Description, wo.Location, wo.Technician, string(wo.Status), wo.CreatedAt, wo.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, err
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&wo.ID); err != nil {
		return nil, fmt.Errorf("insert workorder: %w", err)
	}
	return &wo, nil
}

// Update replaces every mutable field and refreshes updated_at. created_at is
// never written.
func (r *workorderRepository) Update(ctx context.Context, id int64, input domain.WorkorderInput) (*domain.Workorder, error) {
	query, args, err := r.sb.Update(workorderTable).
		SetMap(map[string]interface{}{
			"title":       input.Title,
			"description": input.Description,
			"location":    input.Location,
			"technician":  input.Technician,
			"status":      string(input.Status),
			"updated_at":  r.timestamp(),
		}).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("update workorder: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	wo, err := r.getOne(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return wo, nil
}

func (r *workorderRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.sb.Delete(workorderTable).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete workorder: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func normalize(wo *domain.Workorder) {
	wo.CreatedAt = wo.CreatedAt.UTC()
	wo.UpdatedAt = wo.UpdatedAt.UTC()
}
