package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
)

const RoleAdmin = "admin"

type RoleRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewRoleRepository(db *pgxpool.Pool) *RoleRepo {
	return &RoleRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *RoleRepo) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	const op = "repository.role_repository.IsAdmin"

	query, args, err := r.sb.Select("1").
		Prefix("SELECT EXISTS (").
		From("user_roles").
		Where(sq.Eq{"user_id": userID, "role": RoleAdmin}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	var isAdmin bool
	if err := r.db.QueryRow(ctx, query, args...).Scan(&isAdmin); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return isAdmin, nil
}

func (r *RoleRepo) GrantRole(ctx context.Context, userID uuid.UUID, role string) error {
	const op = "repository.role_repository.GrantRole"

	query, args, err := r.sb.Insert("user_roles").
		Columns("user_id", "role").
		Values(userID, role).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
