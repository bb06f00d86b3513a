package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/escusoft/escuela-backend/internal/model"
)

// EnrollmentRepository handles the student-subject and teacher-subject join
// tables, including the optional grade attribute on enrollments.
type EnrollmentRepository struct {
	pool *pgxpool.Pool
}

// NewEnrollmentRepository creates a new EnrollmentRepository.
func NewEnrollmentRepository(pool *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{pool: pool}
}

// EnrollStudent adds a student-subject row if absent. Idempotent.
func (r *EnrollmentRepository) EnrollStudent(ctx context.Context, userID, subjectID int) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO student_subjects (user_id, subject_id) VALUES ($1, $2)
		 ON CONFLICT (user_id, subject_id) DO NOTHING`, userID, subjectID)
	return err
}

// AssignTeacher adds a teacher-subject row if absent. Idempotent.
func (r *EnrollmentRepository) AssignTeacher(ctx context.Context, userID, subjectID int) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO teacher_subjects (user_id, subject_id) VALUES ($1, $2)
		 ON CONFLICT (user_id, subject_id) DO NOTHING`, userID, subjectID)
	return err
}

// SetGrade updates the grade of an existing enrollment. A missing join row is
// silently a no-op; bulk grade uploads rely on that.
func (r *EnrollmentRepository) SetGrade(ctx context.Context, userID, subjectID, grade int) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE student_subjects SET grade = $1 WHERE user_id = $2 AND subject_id = $3`,
		grade, userID, subjectID)
	return err
}

// GetGrade returns the grade of one enrollment, found=false when the join row
// does not exist.
func (r *EnrollmentRepository) GetGrade(ctx context.Context, userID, subjectID int) (grade *int, found bool, err error) {
	rows, err := r.pool.Query(ctx,
		`SELECT grade FROM student_subjects WHERE user_id = $1 AND subject_id = $2`,
		userID, subjectID)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, false, rows.Err()
	}
	if err := rows.Scan(&grade); err != nil {
		return nil, false, err
	}
	return grade, true, rows.Err()
}

// StudentsOfSubject lists enrolled students with their grade.
func (r *EnrollmentRepository) StudentsOfSubject(ctx context.Context, subjectID int) ([]model.StudentGrade, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT u.id, u.username, ud.first_name, ud.last_name, ud.dni, ud.email, ss.grade
		 FROM student_subjects ss
		 JOIN users u ON u.id = ss.user_id
		 JOIN user_details ud ON ud.user_id = u.id
		 WHERE ss.subject_id = $1
		 ORDER BY u.id`, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []model.StudentGrade
	for rows.Next() {
		var s model.StudentGrade
		if err := rows.Scan(&s.ID, &s.Username, &s.FirstName, &s.LastName, &s.DNI, &s.Email, &s.Grade); err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// SubjectsOfStudent lists the subjects a student is enrolled in, with career
// name and the assigned teacher when one exists.
func (r *EnrollmentRepository) SubjectsOfStudent(ctx context.Context, userID int) ([]model.SubjectWithTeacher, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT s.id, s.name, c.name,
		        t.id, t.username, td.first_name, td.last_name
		 FROM student_subjects ss
		 JOIN subjects s ON s.id = ss.subject_id
		 JOIN careers c ON c.id = s.career_id
		 LEFT JOIN LATERAL (
		     SELECT tu.id, tu.username, ts.subject_id
		     FROM teacher_subjects ts JOIN users tu ON tu.id = ts.user_id
		     WHERE ts.subject_id = s.id
		     ORDER BY tu.id LIMIT 1
		 ) t ON true
		 LEFT JOIN user_details td ON td.user_id = t.id
		 WHERE ss.user_id = $1
		 ORDER BY s.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []model.SubjectWithTeacher
	for rows.Next() {
		var s model.SubjectWithTeacher
		var tID *int
		var tUsername, tFirst, tLast *string
		if err := rows.Scan(&s.ID, &s.Name, &s.CareerName, &tID, &tUsername, &tFirst, &tLast); err != nil {
			return nil, err
		}
		if tID != nil {
			s.Teacher = &model.TeacherSummary{ID: *tID, Username: *tUsername, FirstName: *tFirst, LastName: *tLast}
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

// SubjectsOfTeacher lists the subjects a teacher is assigned to.
func (r *EnrollmentRepository) SubjectsOfTeacher(ctx context.Context, userID int) ([]model.SubjectWithTeacher, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT s.id, s.name, c.name
		 FROM teacher_subjects ts
		 JOIN subjects s ON s.id = ts.subject_id
		 JOIN careers c ON c.id = s.career_id
		 WHERE ts.user_id = $1
		 ORDER BY s.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []model.SubjectWithTeacher
	for rows.Next() {
		var s model.SubjectWithTeacher
		if err := rows.Scan(&s.ID, &s.Name, &s.CareerName); err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

// TeachingAssignments lists every teacher-subject pair.
func (r *EnrollmentRepository) TeachingAssignments(ctx context.Context) ([]model.TeachingAssignment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT subject_id, user_id FROM teacher_subjects ORDER BY subject_id, user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []model.TeachingAssignment
	for rows.Next() {
		var a model.TeachingAssignment
		if err := rows.Scan(&a.SubjectID, &a.TeacherID); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

// CountAssignmentsOfTeacher returns how many subjects a teacher carries.
func (r *EnrollmentRepository) CountAssignmentsOfTeacher(ctx context.Context, userID int) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM teacher_subjects WHERE user_id = $1`, userID).Scan(&n)
	return n, err
}

// CountGradesOfStudent returns how many non-null grades a student has.
func (r *EnrollmentRepository) CountGradesOfStudent(ctx context.Context, userID int) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM student_subjects WHERE user_id = $1 AND grade IS NOT NULL`, userID).Scan(&n)
	return n, err
}
