package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/escusoft/escuela-backend/internal/model"
	"github.com/escusoft/escuela-backend/internal/repository"
)

// Enrollment errors.
var (
	ErrRoleMismatch  = errors.New("relation type does not match the user's role")
	ErrGradeNotFound = errors.New("grade not found")
)

// EnrollmentService implements the student/teacher ↔ subject join relations
// and grade entry.
type EnrollmentService struct {
	enrollRepo  *repository.EnrollmentRepository
	userRepo    *repository.UserRepository
	subjectRepo *repository.SubjectRepository
	log         zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService.
func NewEnrollmentService(
	enrollRepo *repository.EnrollmentRepository,
	userRepo *repository.UserRepository,
	subjectRepo *repository.SubjectRepository,
	log zerolog.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		enrollRepo:  enrollRepo,
		userRepo:    userRepo,
		subjectRepo: subjectRepo,
		log:         log.With().Str("component", "enrollment_service").Logger(),
	}
}

// Assign links a user to a subject. The requested relation must match the
// user's role; the insert is idempotent.
func (s *EnrollmentService) Assign(ctx context.Context, req *model.AssignSubjectRequest) error {
	u, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}
	if _, err := s.subjectRepo.GetByID(ctx, req.SubjectID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrSubjectNotFound
		}
		return err
	}

	switch {
	case req.Relation == string(model.RoleStudent) && u.Detail.Role == model.RoleStudent:
		return s.enrollRepo.EnrollStudent(ctx, req.UserID, req.SubjectID)
	case req.Relation == string(model.RoleTeacher) && u.Detail.Role == model.RoleTeacher:
		return s.enrollRepo.AssignTeacher(ctx, req.UserID, req.SubjectID)
	}
	return ErrRoleMismatch
}

// SaveGrades applies a bulk grade upload for one subject. Entries with a nil
// grade and entries whose join row does not exist are skipped silently.
func (s *EnrollmentService) SaveGrades(ctx context.Context, subjectID int, entries []model.GradeEntry) error {
	if _, err := s.subjectRepo.GetByID(ctx, subjectID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrSubjectNotFound
		}
		return err
	}
	for _, e := range entries {
		if e.Grade == nil {
			continue
		}
		if err := s.enrollRepo.SetGrade(ctx, e.UserID, subjectID, *e.Grade); err != nil {
			return err
		}
	}
	return nil
}

// GetGrade looks up one student's grade in one subject.
func (s *EnrollmentService) GetGrade(ctx context.Context, userID, subjectID int) (*int, error) {
	grade, found, err := s.enrollRepo.GetGrade(ctx, userID, subjectID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrGradeNotFound
	}
	return grade, nil
}

// StudentsOfSubject lists enrolled students with grades, after checking the
// subject exists.
func (s *EnrollmentService) StudentsOfSubject(ctx context.Context, subjectID int) ([]model.StudentGrade, error) {
	if _, err := s.subjectRepo.GetByID(ctx, subjectID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}
	return s.enrollRepo.StudentsOfSubject(ctx, subjectID)
}

// SubjectsOfUser lists the subjects of a user according to their role:
// enrollments for students (with the assigned teacher), assignments for
// teachers, nothing for admins.
func (s *EnrollmentService) SubjectsOfUser(ctx context.Context, userID int) ([]model.SubjectWithTeacher, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	switch u.Detail.Role {
	case model.RoleStudent:
		return s.enrollRepo.SubjectsOfStudent(ctx, userID)
	case model.RoleTeacher:
		subjects, err := s.enrollRepo.SubjectsOfTeacher(ctx, userID)
		if err != nil {
			return nil, err
		}
		// Teachers are their own "assigned teacher".
		for i := range subjects {
			subjects[i].Teacher = &model.TeacherSummary{
				ID:        u.ID,
				Username:  u.Username,
				FirstName: u.Detail.FirstName,
				LastName:  u.Detail.LastName,
			}
		}
		return subjects, nil
	}
	return nil, nil
}

// TeachingAssignments lists every teacher-subject pair.
func (s *EnrollmentService) TeachingAssignments(ctx context.Context) ([]model.TeachingAssignment, error) {
	return s.enrollRepo.TeachingAssignments(ctx)
}
