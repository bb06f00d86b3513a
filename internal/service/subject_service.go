package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/escusoft/escuela-backend/internal/model"
	"github.com/escusoft/escuela-backend/internal/repository"
)

var ErrSubjectNotFound = errors.New("subject not found")

// SubjectService implements subject CRUD under careers.
type SubjectService struct {
	subjectRepo *repository.SubjectRepository
	careerRepo  *repository.CareerRepository
	log         zerolog.Logger
}

// NewSubjectService creates a new SubjectService.
func NewSubjectService(subjectRepo *repository.SubjectRepository, careerRepo *repository.CareerRepository, log zerolog.Logger) *SubjectService {
	return &SubjectService{
		subjectRepo: subjectRepo,
		careerRepo:  careerRepo,
		log:         log.With().Str("component", "subject_service").Logger(),
	}
}

// Create inserts a subject after checking the parent career exists.
func (s *SubjectService) Create(ctx context.Context, sub *model.Subject) (*model.Career, error) {
	career, err := s.careerRepo.GetByID(ctx, sub.CareerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCareerNotFound
		}
		return nil, err
	}
	if err := s.subjectRepo.Create(ctx, sub); err != nil {
		return nil, err
	}
	return career, nil
}

func (s *SubjectService) ListByCareer(ctx context.Context, careerID int) ([]model.Subject, error) {
	return s.subjectRepo.ListByCareer(ctx, careerID)
}

func (s *SubjectService) Update(ctx context.Context, sub *model.Subject) error {
	if err := s.subjectRepo.Update(ctx, sub); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrSubjectNotFound
		}
		return err
	}
	return nil
}

func (s *SubjectService) Delete(ctx context.Context, id int) error {
	if err := s.subjectRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrSubjectNotFound
		}
		return err
	}
	return nil
}
