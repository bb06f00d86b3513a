package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/escusoft/escuela-backend/internal/config"
	"github.com/escusoft/escuela-backend/internal/model"
	"github.com/escusoft/escuela-backend/internal/repository"
)

// spanishMonths maps time.Month to the month names used in payment texts.
var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// NotificationService derives notifications on demand from the current data
// and tracks read state in Redis. Nothing is persisted for the notifications
// themselves; a notification disappears once its rendered text is in the
// user's read set.
type NotificationService struct {
	userRepo       *repository.UserRepository
	messageRepo    *repository.MessageRepository
	enrollmentRepo *repository.EnrollmentRepository
	paymentRepo    *repository.PaymentRepository
	redis          *redis.Client
	log            zerolog.Logger
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(
	userRepo *repository.UserRepository,
	messageRepo *repository.MessageRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	paymentRepo *repository.PaymentRepository,
	rdb *redis.Client,
	log zerolog.Logger,
) *NotificationService {
	return &NotificationService{
		userRepo:       userRepo,
		messageRepo:    messageRepo,
		enrollmentRepo: enrollmentRepo,
		paymentRepo:    paymentRepo,
		redis:          rdb,
		log:            log.With().Str("component", "notification_service").Logger(),
	}
}

// derive builds the full notification list for a user, at most one entry per
// category, before read filtering.
func (s *NotificationService) derive(ctx context.Context, userID int, role model.Role) ([]model.Notification, error) {
	var notifs []model.Notification

	latest, err := s.messageRepo.LatestReceived(ctx, userID)
	if err != nil {
		return nil, err
	}
	if latest != nil {
		notifs = append(notifs, model.Notification{
			Category: model.NotifMessage,
			Text:     fmt.Sprintf("Mensaje de %s: %s...", latest.SenderName, truncate(latest.Content, 40)),
			Date:     latest.Timestamp,
		})
	}

	switch role {
	case model.RoleTeacher:
		count, err := s.enrollmentRepo.CountAssignmentsOfTeacher(ctx, userID)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			notifs = append(notifs, model.Notification{
				Category: model.NotifAssignment,
				Text:     fmt.Sprintf("Se te ha asignado a %d materia(s).", count),
				Date:     time.Now(),
			})
		}
	case model.RoleStudent:
		count, err := s.enrollmentRepo.CountGradesOfStudent(ctx, userID)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			notifs = append(notifs, model.Notification{
				Category: model.NotifGrade,
				Text:     fmt.Sprintf("Se han cargado %d nota(s).", count),
				Date:     time.Now(),
			})
		}

		payment, err := s.paymentRepo.LatestOfUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		if payment != nil {
			month := spanishMonths[payment.AffectedMonth.Month()-1]
			notifs = append(notifs, model.Notification{
				Category: model.NotifPayment,
				Text: fmt.Sprintf("Se registró un pago de $%d para %s %d.",
					payment.Amount, month, payment.AffectedMonth.Year()),
				Date: payment.CreatedAt,
			})
		}
	}

	return notifs, nil
}

// ListUnread returns the user's current notifications minus the ones whose
// text is already in the read set.
func (s *NotificationService) ListUnread(ctx context.Context, userID int) ([]model.Notification, error) {
	role, err := s.roleOf(ctx, userID)
	if err != nil {
		return nil, err
	}

	notifs, err := s.derive(ctx, userID, role)
	if err != nil {
		return nil, err
	}
	if len(notifs) == 0 {
		return []model.Notification{}, nil
	}

	key := config.RedisKey.NotificationsReadKey(userID)
	texts := make([]interface{}, len(notifs))
	for i, n := range notifs {
		texts[i] = n.Text
	}
	read, err := s.redis.SMIsMember(ctx, key, texts...).Result()
	if err != nil {
		return nil, err
	}

	unread := make([]model.Notification, 0, len(notifs))
	for i, n := range notifs {
		if !read[i] {
			unread = append(unread, n)
		}
	}
	return unread, nil
}

// MarkRead acknowledges one notification by its rendered text.
func (s *NotificationService) MarkRead(ctx context.Context, userID int, text string) error {
	key := config.RedisKey.NotificationsReadKey(userID)
	return s.redis.SAdd(ctx, key, text).Err()
}

// MarkCategoryRead acknowledges every current notification of one category by
// recomputing the list and adding the matching texts to the read set.
func (s *NotificationService) MarkCategoryRead(ctx context.Context, userID int, category model.NotificationCategory) error {
	role, err := s.roleOf(ctx, userID)
	if err != nil {
		return err
	}

	notifs, err := s.derive(ctx, userID, role)
	if err != nil {
		return err
	}

	var texts []interface{}
	for _, n := range notifs {
		if n.Category == category {
			texts = append(texts, n.Text)
		}
	}
	if len(texts) == 0 {
		return nil
	}

	key := config.RedisKey.NotificationsReadKey(userID)
	return s.redis.SAdd(ctx, key, texts...).Err()
}

func (s *NotificationService) roleOf(ctx context.Context, userID int) (model.Role, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	return u.Detail.Role, nil
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
