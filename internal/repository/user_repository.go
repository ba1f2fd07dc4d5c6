package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/spec-kit/crane-workorders/internal/domain"
	"github.com/spec-kit/crane-workorders/internal/persistence"
)

const userTable = "usertable"

var userColumns = []string{"id", "username", "hashed_password", "disabled"}

// UserRepository defines persistence access for accounts.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	// EnsureDefault inserts the account when no row with that username exists and
	// reports whether it created one.
	EnsureDefault(ctx context.Context, username, hashedPassword string) (bool, error)
}

type userRepository struct {
	db *sqlx.DB
	sb squirrel.StatementBuilderType
}

// NewUserRepository returns a store-backed implementation.
func NewUserRepository(store *persistence.Store) UserRepository {
	return &userRepository{db: store.DB(), sb: store.Builder()}
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, r.db, squirrel.Eq{"id": id})
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getOne(ctx, r.db, squirrel.Eq{"username": username})
}

func (r *userRepository) EnsureDefault(ctx context.Context, username, hashedPassword string) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = r.getOne(ctx, tx, squirrel.Eq{"username": username})
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return false, err
	}

	query, args, err := r.sb.Insert(userTable).
		Columns("username", "hashed_password", "disabled").
		Values(username, hashedPassword, false).
		Suffix("ON CONFLICT (username) DO NOTHING").
		ToSql()
	if err != nil {
		return false, err
	}
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("insert user: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *userRepository) getOne(ctx context.Context, q sqlx.QueryerContext, where squirrel.Eq) (*domain.User, error) {
	query, args, err := r.sb.Select(userColumns...).From(userTable).Where(where).ToSql()
	if err != nil {
		return nil, err
	}

	var user domain.User
	if err := sqlx.GetContext(ctx, q, &user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}
