package repository

import (
	"context"
	"fmt"
	"time"

	"site_cms/internal/domain/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
)

type MessageRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewMessageRepository(db *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *MessageRepo) SaveMessage(ctx context.Context, msg models.ContactMessage) (uuid.UUID, error) {
	const op = "repository.message_repository.SaveMessage"

	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}

	query, args, err := r.sb.Insert("messages").
		Columns("name", "email", "subject", "message", "created_at").
		Values(msg.Name, msg.Email, msg.Subject, msg.Message, msg.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}
