package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/escusoft/escuela-backend/internal/model"
)

// MessageRepository handles message data access.
type MessageRepository struct {
	pool *pgxpool.Pool
}

// NewMessageRepository creates a new MessageRepository.
func NewMessageRepository(pool *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{pool: pool}
}

// Create inserts a message. Timestamp is assigned by the database, never
// taken from the client; the delete window depends on that.
func (r *MessageRepository) Create(ctx context.Context, m *model.Message) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO messages (sender_id, receiver_id, content, file_url)
		 VALUES ($1, $2, $3, $4) RETURNING id, timestamp`,
		m.SenderID, m.ReceiverID, m.Content, m.FileURL,
	).Scan(&m.ID, &m.Timestamp)
}

func (r *MessageRepository) GetByID(ctx context.Context, id int) (*model.Message, error) {
	m := &model.Message{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, sender_id, receiver_id, content, timestamp, file_url
		 FROM messages WHERE id = $1`, id,
	).Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.Timestamp, &m.FileURL)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ListForUser returns every message the user sent or received, newest first,
// with the sender's display name.
func (r *MessageRepository) ListForUser(ctx context.Context, userID int) ([]model.MessageRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT m.id, m.sender_id, m.receiver_id, m.content, m.timestamp,
		        COALESCE(ud.first_name || ' ' || ud.last_name, 'Usuario desconocido'),
		        m.file_url
		 FROM messages m
		 LEFT JOIN user_details ud ON ud.user_id = m.sender_id
		 WHERE m.sender_id = $1 OR m.receiver_id = $1
		 ORDER BY m.timestamp DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []model.MessageRow
	for rows.Next() {
		var m model.MessageRow
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Content,
			&m.Timestamp, &m.SenderName, &m.FileURL); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// ListBetween returns every message exchanged between two users, in either
// direction.
func (r *MessageRepository) ListBetween(ctx context.Context, userID, otherID int) ([]model.Message, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, sender_id, receiver_id, content, timestamp, file_url
		 FROM messages
		 WHERE (sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1)
		 ORDER BY timestamp`, userID, otherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.Timestamp, &m.FileURL); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// LatestReceived returns the newest message addressed to the user with the
// sender's name, or nil when the inbox is empty.
func (r *MessageRepository) LatestReceived(ctx context.Context, userID int) (*model.MessageRow, error) {
	m := &model.MessageRow{}
	err := r.pool.QueryRow(ctx,
		`SELECT m.id, m.sender_id, m.receiver_id, m.content, m.timestamp,
		        COALESCE(ud.first_name || ' ' || ud.last_name, 'Usuario desconocido'),
		        m.file_url
		 FROM messages m
		 LEFT JOIN user_details ud ON ud.user_id = m.sender_id
		 WHERE m.receiver_id = $1
		 ORDER BY m.timestamp DESC LIMIT 1`, userID,
	).Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.Timestamp, &m.SenderName, &m.FileURL)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}

func (r *MessageRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
