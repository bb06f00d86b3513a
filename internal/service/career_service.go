package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/escusoft/escuela-backend/internal/model"
	"github.com/escusoft/escuela-backend/internal/repository"
)

var ErrCareerNotFound = errors.New("career not found")

// CareerService implements career CRUD. Deleting a career cascades to its
// subjects in application code (the schema does not enforce it).
type CareerService struct {
	careerRepo *repository.CareerRepository
	log        zerolog.Logger
}

// NewCareerService creates a new CareerService.
func NewCareerService(careerRepo *repository.CareerRepository, log zerolog.Logger) *CareerService {
	return &CareerService{
		careerRepo: careerRepo,
		log:        log.With().Str("component", "career_service").Logger(),
	}
}

func (s *CareerService) GetAll(ctx context.Context) ([]model.Career, error) {
	return s.careerRepo.GetAll(ctx)
}

func (s *CareerService) Create(ctx context.Context, c *model.Career) error {
	return s.careerRepo.Create(ctx, c)
}

func (s *CareerService) Update(ctx context.Context, c *model.Career) error {
	if err := s.careerRepo.Update(ctx, c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrCareerNotFound
		}
		return err
	}
	return nil
}

func (s *CareerService) Delete(ctx context.Context, id int) error {
	if err := s.careerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrCareerNotFound
		}
		return err
	}
	s.log.Info().Int("career_id", id).Msg("career deleted with its subjects")
	return nil
}
