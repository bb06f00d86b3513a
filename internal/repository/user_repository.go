package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/escusoft/escuela-backend/internal/model"
	"github.com/escusoft/escuela-backend/internal/pagination"
)

// Uniqueness violations mapped from PostgreSQL constraint names.
var (
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrDuplicateDNI      = errors.New("dni already exists")
)

const userWithDetailColumns = `u.id, u.username, ud.email, ud.dni, ud.first_name, ud.last_name, ud.type, ud.career_id`

// UserRepository handles user and user-detail data access.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create inserts a user and its detail atomically. On success the generated
// ids are written back into u.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO users (username, password_hash) VALUES ($1, $2) RETURNING id`,
		u.Username, u.PasswordHash,
	).Scan(&u.ID)
	if err != nil {
		return mapUniqueViolation(err)
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO user_details (user_id, dni, first_name, last_name, type, email, career_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		u.ID, u.Detail.DNI, u.Detail.FirstName, u.Detail.LastName, u.Detail.Role, u.Detail.Email, u.Detail.CareerID,
	).Scan(&u.Detail.ID)
	if err != nil {
		return mapUniqueViolation(err)
	}

	return tx.Commit(ctx)
}

// GetByID retrieves a user with its detail.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*model.User, error) {
	return r.getBy(ctx, `u.id = $1`, id)
}

// GetByUsername retrieves a user with its detail by the unique username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getBy(ctx, `u.username = $1`, username)
}

func (r *UserRepository) getBy(ctx context.Context, cond string, arg interface{}) (*model.User, error) {
	u := &model.User{}
	err := r.pool.QueryRow(ctx,
		`SELECT u.id, u.username, u.password_hash,
		        ud.id, ud.dni, ud.first_name, ud.last_name, ud.type, ud.email, ud.career_id
		 FROM users u
		 JOIN user_details ud ON ud.user_id = u.id
		 WHERE `+cond, arg,
	).Scan(&u.ID, &u.Username, &u.PasswordHash,
		&u.Detail.ID, &u.Detail.DNI, &u.Detail.FirstName, &u.Detail.LastName,
		&u.Detail.Role, &u.Detail.Email, &u.Detail.CareerID)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// ListAll returns every user with its detail, ordered by id.
func (r *UserRepository) ListAll(ctx context.Context) ([]model.UserWithDetail, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+userWithDetailColumns+`
		 FROM users u JOIN user_details ud ON ud.user_id = u.id
		 ORDER BY u.id`)
	if err != nil {
		return nil, err
	}
	return scanUserRows(rows)
}

// ListTeachers returns id and username of every teacher.
func (r *UserRepository) ListTeachers(ctx context.Context) ([]model.Contact, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT u.id, u.username, ud.type
		 FROM users u JOIN user_details ud ON ud.user_id = u.id
		 WHERE ud.type = $1 ORDER BY u.id`, model.RoleTeacher)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teachers []model.Contact
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.ID, &c.FullName, &c.Role); err != nil {
			return nil, err
		}
		teachers = append(teachers, c)
	}
	return teachers, rows.Err()
}

// ListByRolePage returns one offset page of users of the given role plus the
// total matching count.
func (r *UserRepository) ListByRolePage(ctx context.Context, role model.Role, limit, offset int) ([]model.UserWithDetail, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM users u JOIN user_details ud ON ud.user_id = u.id WHERE ud.type = $1`,
		role,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+userWithDetailColumns+`
		 FROM users u JOIN user_details ud ON ud.user_id = u.id
		 WHERE ud.type = $1
		 ORDER BY u.id LIMIT $2 OFFSET $3`, role, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	users, err := scanUserRows(rows)
	return users, total, err
}

// SearchByRolePage returns one offset page of users of the given role whose
// first or last name contains q (case-insensitive), plus the total count.
func (r *UserRepository) SearchByRolePage(ctx context.Context, role model.Role, q string, limit, offset int) ([]model.UserWithDetail, int, error) {
	pattern := "%" + strings.ToLower(q) + "%"

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM users u JOIN user_details ud ON ud.user_id = u.id
		 WHERE ud.type = $1 AND (ud.first_name ILIKE $2 OR ud.last_name ILIKE $2)`,
		role, pattern,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+userWithDetailColumns+`
		 FROM users u JOIN user_details ud ON ud.user_id = u.id
		 WHERE ud.type = $1 AND (ud.first_name ILIKE $2 OR ud.last_name ILIKE $2)
		 ORDER BY u.id LIMIT $3 OFFSET $4`, role, pattern, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	users, err := scanUserRows(rows)
	return users, total, err
}

// ListKeyset returns up to limit users with id strictly greater than the
// cursor, ordered by id. Filter predicates, when present, narrow the match
// set; they never affect the ordering or the cursor semantics.
func (r *UserRepository) ListKeyset(ctx context.Context, lastSeenID *int, limit int, filter *pagination.Builder) ([]model.UserWithDetail, error) {
	if limit == 0 {
		return nil, nil
	}

	query := `SELECT ` + userWithDetailColumns + `
		 FROM users u JOIN user_details ud ON ud.user_id = u.id
		 WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if lastSeenID != nil {
		query += ` AND u.id > $` + strconv.Itoa(argIdx)
		args = append(args, *lastSeenID)
		argIdx++
	}

	if filter != nil {
		clause, filterArgs, next := filter.Clause(argIdx)
		query += clause
		args = append(args, filterArgs...)
		argIdx = next
	}

	query += ` ORDER BY u.id LIMIT $` + strconv.Itoa(argIdx)
	args = append(args, limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanUserRows(rows)
}

// ListContacts returns users visible to the messaging contact picker:
// everyone except the caller whose role is in roles, optionally filtered by a
// substring over the concatenated full name.
func (r *UserRepository) ListContacts(ctx context.Context, excludeID int, roles []model.Role, search string, limit int) ([]model.Contact, error) {
	query := `SELECT u.id, ud.first_name || ' ' || ud.last_name, ud.type
		 FROM users u JOIN user_details ud ON ud.user_id = u.id
		 WHERE u.id <> $1`
	args := []interface{}{excludeID}
	argIdx := 2

	if len(roles) > 0 {
		placeholders := make([]string, len(roles))
		for i, role := range roles {
			placeholders[i] = "$" + strconv.Itoa(argIdx)
			args = append(args, role)
			argIdx++
		}
		query += ` AND ud.type IN (` + strings.Join(placeholders, ", ") + `)`
	}

	if search != "" {
		query += ` AND (ud.first_name || ' ' || ud.last_name) ILIKE $` + strconv.Itoa(argIdx)
		args = append(args, "%"+search+"%")
		argIdx++
	}

	query += ` ORDER BY u.id LIMIT $` + strconv.Itoa(argIdx)
	args = append(args, limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []model.Contact
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.ID, &c.FullName, &c.Role); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// UpdatePassword replaces a user's password hash.
func (r *UserRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// UpdateProfile renames a user and replaces the password hash.
func (r *UserRepository) UpdateProfile(ctx context.Context, id int, username, passwordHash string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET username = $1, password_hash = $2 WHERE id = $3`,
		username, passwordHash, id)
	if err != nil {
		return mapUniqueViolation(err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// UsernameTakenByOther reports whether another user already holds username.
func (r *UserRepository) UsernameTakenByOther(ctx context.Context, username string, excludeID int) (bool, error) {
	var taken bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 AND id <> $2)`,
		username, excludeID).Scan(&taken)
	return taken, err
}

func scanUserRows(rows pgx.Rows) ([]model.UserWithDetail, error) {
	defer rows.Close()

	var users []model.UserWithDetail
	for rows.Next() {
		var u model.UserWithDetail
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.DNI,
			&u.FirstName, &u.LastName, &u.Role, &u.CareerID); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// mapUniqueViolation turns a 23505 into the matching sentinel based on the
// violated constraint.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return err
	}
	switch {
	case strings.Contains(pgErr.ConstraintName, "username"):
		return ErrDuplicateUsername
	case strings.Contains(pgErr.ConstraintName, "email"):
		return ErrDuplicateEmail
	case strings.Contains(pgErr.ConstraintName, "dni"):
		return ErrDuplicateDNI
	}
	return err
}
