package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/escusoft/escuela-backend/internal/model"
	"github.com/escusoft/escuela-backend/internal/pagination"
)

const paymentRowColumns = `p.id, p.user_id, u.username, p.career_id, c.name, p.amount, p.affected_month, p.created_at`

// PaymentRepository handles payment data access.
type PaymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

func (r *PaymentRepository) Create(ctx context.Context, p *model.Payment) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO payments (user_id, career_id, amount, affected_month)
		 VALUES ($1, $2, $3, $4) RETURNING id, created_at`,
		p.UserID, p.CareerID, p.Amount, p.AffectedMonth,
	).Scan(&p.ID, &p.CreatedAt)
}

func (r *PaymentRepository) GetByID(ctx context.Context, id int) (*model.Payment, error) {
	p := &model.Payment{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, career_id, amount, affected_month, created_at
		 FROM payments WHERE id = $1`, id,
	).Scan(&p.ID, &p.UserID, &p.CareerID, &p.Amount, &p.AffectedMonth, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListAll returns every payment joined with user and career names.
func (r *PaymentRepository) ListAll(ctx context.Context) ([]model.PaymentRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+paymentRowColumns+`
		 FROM payments p
		 JOIN users u ON u.id = p.user_id
		 JOIN careers c ON c.id = p.career_id
		 ORDER BY p.id`)
	if err != nil {
		return nil, err
	}
	return scanPaymentRows(rows)
}

// ListByUser returns every payment of one user.
func (r *PaymentRepository) ListByUser(ctx context.Context, userID int) ([]model.PaymentRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+paymentRowColumns+`
		 FROM payments p
		 JOIN users u ON u.id = p.user_id
		 JOIN careers c ON c.id = p.career_id
		 WHERE p.user_id = $1
		 ORDER BY p.id`, userID)
	if err != nil {
		return nil, err
	}
	return scanPaymentRows(rows)
}

// ListKeyset returns up to limit payments with id strictly greater than the
// cursor, ordered by id, narrowed by the optional filter conjunction.
func (r *PaymentRepository) ListKeyset(ctx context.Context, lastSeenID *int, limit int, filter *pagination.Builder) ([]model.PaymentRow, error) {
	if limit == 0 {
		return nil, nil
	}

	query := `SELECT ` + paymentRowColumns + `
		 FROM payments p
		 JOIN users u ON u.id = p.user_id
		 JOIN careers c ON c.id = p.career_id
		 WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if lastSeenID != nil {
		query += ` AND p.id > $` + strconv.Itoa(argIdx)
		args = append(args, *lastSeenID)
		argIdx++
	}

	if filter != nil {
		clause, filterArgs, next := filter.Clause(argIdx)
		query += clause
		args = append(args, filterArgs...)
		argIdx = next
	}

	query += ` ORDER BY p.id LIMIT $` + strconv.Itoa(argIdx)
	args = append(args, limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanPaymentRows(rows)
}

// SearchPage returns one offset page of payments whose username, first name,
// last name or career name contains q, optionally restricted to one user.
func (r *PaymentRepository) SearchPage(ctx context.Context, q string, userID *int, limit, offset int) ([]model.PaymentRow, error) {
	query := `SELECT ` + paymentRowColumns + `
		 FROM payments p
		 JOIN users u ON u.id = p.user_id
		 JOIN user_details ud ON ud.user_id = u.id
		 JOIN careers c ON c.id = p.career_id
		 WHERE (u.username ILIKE $1 OR ud.first_name ILIKE $1 OR ud.last_name ILIKE $1 OR c.name ILIKE $1)`
	args := []interface{}{"%" + q + "%"}
	argIdx := 2

	if userID != nil {
		query += ` AND p.user_id = $` + strconv.Itoa(argIdx)
		args = append(args, *userID)
		argIdx++
	}

	query += ` ORDER BY p.id LIMIT $` + strconv.Itoa(argIdx) + ` OFFSET $` + strconv.Itoa(argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanPaymentRows(rows)
}

// PendingStudents lists students with no payment whose affected month falls
// in the given calendar month.
func (r *PaymentRepository) PendingStudents(ctx context.Context, month time.Time) ([]model.PendingStudent, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT u.id, ud.first_name || ' ' || ud.last_name
		 FROM users u
		 JOIN user_details ud ON ud.user_id = u.id
		 WHERE ud.type = $1
		   AND NOT EXISTS (
		       SELECT 1 FROM payments p
		       WHERE p.user_id = u.id
		         AND date_trunc('month', p.affected_month) = date_trunc('month', $2::date)
		   )
		 ORDER BY u.id`, model.RoleStudent, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pending []model.PendingStudent
	for rows.Next() {
		var p model.PendingStudent
		if err := rows.Scan(&p.ID, &p.FullName); err != nil {
			return nil, err
		}
		pending = append(pending, p)
	}
	return pending, rows.Err()
}

// LatestOfUser returns the most recently recorded payment of a user, or nil.
func (r *PaymentRepository) LatestOfUser(ctx context.Context, userID int) (*model.Payment, error) {
	p := &model.Payment{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, career_id, amount, affected_month, created_at
		 FROM payments WHERE user_id = $1
		 ORDER BY created_at DESC LIMIT 1`, userID,
	).Scan(&p.ID, &p.UserID, &p.CareerID, &p.Amount, &p.AffectedMonth, &p.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func (r *PaymentRepository) Update(ctx context.Context, p *model.Payment) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE payments SET career_id = $1, amount = $2, affected_month = $3 WHERE id = $4`,
		p.CareerID, p.Amount, p.AffectedMonth, p.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PaymentRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanPaymentRows(rows pgx.Rows) ([]model.PaymentRow, error) {
	defer rows.Close()

	var payments []model.PaymentRow
	for rows.Next() {
		var p model.PaymentRow
		if err := rows.Scan(&p.ID, &p.UserID, &p.Username, &p.CareerID, &p.CareerName,
			&p.Amount, &p.AffectedMonth, &p.CreatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
