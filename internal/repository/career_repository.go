package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/escusoft/escuela-backend/internal/model"
)

// CareerRepository handles career data access.
type CareerRepository struct {
	pool *pgxpool.Pool
}

// NewCareerRepository creates a new CareerRepository.
func NewCareerRepository(pool *pgxpool.Pool) *CareerRepository {
	return &CareerRepository{pool: pool}
}

func (r *CareerRepository) Create(ctx context.Context, c *model.Career) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO careers (name) VALUES ($1) RETURNING id`, c.Name).Scan(&c.ID)
}

func (r *CareerRepository) GetByID(ctx context.Context, id int) (*model.Career, error) {
	c := &model.Career{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name FROM careers WHERE id = $1`, id).Scan(&c.ID, &c.Name)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CareerRepository) GetAll(ctx context.Context) ([]model.Career, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM careers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var careers []model.Career
	for rows.Next() {
		var c model.Career
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		careers = append(careers, c)
	}
	return careers, rows.Err()
}

func (r *CareerRepository) Update(ctx context.Context, c *model.Career) error {
	tag, err := r.pool.Exec(ctx, `UPDATE careers SET name = $1 WHERE id = $2`, c.Name, c.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a career together with its subjects and their join rows, in
// one transaction.
func (r *CareerRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM student_subjects WHERE subject_id IN (SELECT id FROM subjects WHERE career_id = $1)`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx,
		`DELETE FROM teacher_subjects WHERE subject_id IN (SELECT id FROM subjects WHERE career_id = $1)`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM subjects WHERE career_id = $1`, id); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM careers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return tx.Commit(ctx)
}
