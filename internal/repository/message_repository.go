package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/anonqa-service/internal/domain"
)

// MessageRepository manages anonymous answers left for a user.
type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	GetByID(ctx context.Context, messageID string) (*domain.Message, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.Message, error)
	Delete(ctx context.Context, messageID string) error
}

type messageRepository struct {
	pool *pgxpool.Pool
}

// NewMessageRepository returns a Postgres-backed implementation.
func NewMessageRepository(pool *pgxpool.Pool) MessageRepository {
	return &messageRepository{pool: pool}
}

func (r *messageRepository) Create(ctx context.Context, msg *domain.Message) error {
	const query = `
        INSERT INTO messages (message_id, user_id, question, answer, created_at)
        VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, query,
		msg.MessageID,
		msg.UserID,
		msg.Question,
		msg.Answer,
		msg.CreatedAt,
	)
	return translateError(err)
}

func (r *messageRepository) GetByID(ctx context.Context, messageID string) (*domain.Message, error) {
	const query = `
        SELECT message_id, user_id, question, answer, created_at
        FROM messages WHERE message_id=$1`

	var msg domain.Message
	if err := r.pool.QueryRow(ctx, query, messageID).Scan(
		&msg.MessageID,
		&msg.UserID,
		&msg.Question,
		&msg.Answer,
		&msg.CreatedAt,
	); err != nil {
		return nil, translateError(err)
	}
	return &msg, nil
}

func (r *messageRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Message, error) {
	const query = `
        SELECT message_id, user_id, question, answer, created_at
        FROM messages WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var result []domain.Message
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(
			&msg.MessageID,
			&msg.UserID,
			&msg.Question,
			&msg.Answer,
			&msg.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, msg)
	}
	return result, rows.Err()
}

func (r *messageRepository) Delete(ctx context.Context, messageID string) error {
	const query = `DELETE FROM messages WHERE message_id=$1`

	cmd, err := r.pool.Exec(ctx, query, messageID)
	if err != nil {
		return translateError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
