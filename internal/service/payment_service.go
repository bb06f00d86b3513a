package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/escusoft/escuela-backend/internal/model"
	"github.com/escusoft/escuela-backend/internal/pagination"
	"github.com/escusoft/escuela-backend/internal/repository"
)

var ErrPaymentNotFound = errors.New("payment not found")

// PaymentService implements tuition payment CRUD and the paginated listings.
type PaymentService struct {
	paymentRepo *repository.PaymentRepository
	userRepo    *repository.UserRepository
	careerRepo  *repository.CareerRepository
	log         zerolog.Logger
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(
	paymentRepo *repository.PaymentRepository,
	userRepo *repository.UserRepository,
	careerRepo *repository.CareerRepository,
	log zerolog.Logger,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		careerRepo:  careerRepo,
		log:         log.With().Str("component", "payment_service").Logger(),
	}
}

// Create records a payment after checking both referenced entities exist.
// Returns the joined row for the response payload.
func (s *PaymentService) Create(ctx context.Context, req *model.CreatePaymentRequest) (*model.PaymentRow, error) {
	u, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	career, err := s.careerRepo.GetByID(ctx, req.CareerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCareerNotFound
		}
		return nil, err
	}

	month, err := time.Parse(model.DateLayout, req.AffectedMonth)
	if err != nil {
		return nil, err
	}

	p := &model.Payment{
		UserID:        req.UserID,
		CareerID:      req.CareerID,
		Amount:        req.Amount,
		AffectedMonth: month,
	}
	if err := s.paymentRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	return &model.PaymentRow{
		ID:            p.ID,
		UserID:        u.ID,
		Username:      u.Username,
		CareerID:      career.ID,
		CareerName:    career.Name,
		Amount:        p.Amount,
		AffectedMonth: p.AffectedMonth,
		CreatedAt:     p.CreatedAt,
	}, nil
}

// ListAll returns every payment with user and career names.
func (s *PaymentService) ListAll(ctx context.Context) ([]model.PaymentRow, error) {
	return s.paymentRepo.ListAll(ctx)
}

// ListByUsername returns the payments of the user holding username.
func (s *PaymentService) ListByUsername(ctx context.Context, username string) ([]model.PaymentRow, error) {
	u, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.paymentRepo.ListByUser(ctx, u.ID)
}

// ListKeyset fetches one keyset page of payments with the structured filters
// and derives the next cursor.
func (s *PaymentService) ListKeyset(ctx context.Context, params pagination.Params, filter *model.PaymentFilter) ([]model.PaymentRow, *int, error) {
	limit, err := params.NormalizeLimit()
	if err != nil {
		return nil, nil, err
	}

	b, err := buildPaymentFilter(filter)
	if err != nil {
		return nil, nil, err
	}

	payments, err := s.paymentRepo.ListKeyset(ctx, params.Cursor(), limit, b)
	if err != nil {
		return nil, nil, err
	}

	next := pagination.NextCursor(payments, limit, func(p model.PaymentRow) int { return p.ID })
	return payments, next, nil
}

// buildPaymentFilter renders the typed filter: exact user match plus an
// inclusive created-at range. The end date is pushed to the end of its day so
// "2024-06-30" includes payments recorded that day.
func buildPaymentFilter(f *model.PaymentFilter) (*pagination.Builder, error) {
	if f == nil {
		return nil, nil
	}

	var b pagination.Builder
	if f.UserID != nil {
		b.Where("p.user_id = ?", *f.UserID)
	}
	if f.StartDate != nil {
		start, err := time.Parse(model.DateLayout, *f.StartDate)
		if err != nil {
			return nil, err
		}
		b.Where("p.created_at >= ?", start)
	}
	if f.EndDate != nil {
		end, err := time.Parse(model.DateLayout, *f.EndDate)
		if err != nil {
			return nil, err
		}
		b.Where("p.created_at <= ?", end.Add(24*time.Hour-time.Nanosecond))
	}
	if b.Empty() {
		return nil, nil
	}
	return &b, nil
}

// Search is the offset search over username, names and career name.
func (s *PaymentService) Search(ctx context.Context, q string, userID *int, limit, offset int) ([]model.PaymentRow, error) {
	return s.paymentRepo.SearchPage(ctx, q, userID, limit, offset)
}

// PendingStudents lists students without a payment for the current month.
func (s *PaymentService) PendingStudents(ctx context.Context) ([]model.PendingStudent, error) {
	return s.paymentRepo.PendingStudents(ctx, time.Now())
}

// Update rewrites a payment, checking the new career exists.
func (s *PaymentService) Update(ctx context.Context, id int, req *model.UpdatePaymentRequest) error {
	if _, err := s.careerRepo.GetByID(ctx, req.CareerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrCareerNotFound
		}
		return err
	}

	month, err := time.Parse(model.DateLayout, req.AffectedMonth)
	if err != nil {
		return err
	}

	p := &model.Payment{ID: id, CareerID: req.CareerID, Amount: req.Amount, AffectedMonth: month}
	if err := s.paymentRepo.Update(ctx, p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrPaymentNotFound
		}
		return err
	}
	return nil
}

func (s *PaymentService) Delete(ctx context.Context, id int) error {
	if err := s.paymentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrPaymentNotFound
		}
		return err
	}
	return nil
}
