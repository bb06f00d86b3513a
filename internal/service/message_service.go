package service

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/escusoft/escuela-backend/internal/model"
	"github.com/escusoft/escuela-backend/internal/repository"
	"github.com/escusoft/escuela-backend/internal/storage"
)

var (
	ErrMessageNotFound     = errors.New("message not found")
	ErrEmptyMessage        = errors.New("message needs content or an attachment")
	ErrDeleteWindowExpired = errors.New("message delete window expired")
	ErrUploadFailed        = errors.New("attachment upload failed")
)

// Attachment is an incoming multipart file destined for the blob store.
type Attachment struct {
	Filename    string
	Reader      io.Reader
	Size        int64
	ContentType string
}

// MessageService implements direct messaging with optional attachments.
type MessageService struct {
	messageRepo *repository.MessageRepository
	userRepo    *repository.UserRepository
	store       *storage.AttachmentStore
	log         zerolog.Logger
}

// NewMessageService creates a new MessageService.
func NewMessageService(
	messageRepo *repository.MessageRepository,
	userRepo *repository.UserRepository,
	store *storage.AttachmentStore,
	log zerolog.Logger,
) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		store:       store,
		log:         log.With().Str("component", "message_service").Logger(),
	}
}

// Send stores a message from sender to receiver. A message must carry text or
// an attachment. The attachment is uploaded before the row is inserted so a
// stored message never references a missing object.
func (s *MessageService) Send(ctx context.Context, senderID, receiverID int, content string, att *Attachment) (*model.Message, error) {
	if content == "" && att == nil {
		return nil, ErrEmptyMessage
	}

	if _, err := s.userRepo.GetByID(ctx, senderID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, receiverID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var fileURL *string
	if att != nil {
		url, err := s.store.Upload(ctx, att.Filename, att.Reader, att.Size, att.ContentType)
		if err != nil {
			s.log.Error().Err(err).Str("filename", att.Filename).Msg("attachment upload failed")
			return nil, ErrUploadFailed
		}
		fileURL = &url
	}

	m := &model.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		FileURL:    fileURL,
	}
	if err := s.messageRepo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// ListForUser returns the full conversation feed of a user, newest first.
func (s *MessageService) ListForUser(ctx context.Context, userID int) ([]model.MessageRow, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.messageRepo.ListForUser(ctx, userID)
}

// DeleteAllowed reports whether a message sent at sentAt may still be deleted
// at now. The window is measured from the server-assigned timestamp.
func DeleteAllowed(sentAt, now time.Time) bool {
	return now.Sub(sentAt) <= model.DeleteWindow
}

// Delete removes a single message if it is still inside the delete window,
// along with its stored attachment.
func (s *MessageService) Delete(ctx context.Context, id int) error {
	m, err := s.messageRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrMessageNotFound
		}
		return err
	}

	if !DeleteAllowed(m.Timestamp, time.Now()) {
		return ErrDeleteWindowExpired
	}

	if err := s.messageRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrMessageNotFound
		}
		return err
	}

	if m.FileURL != nil {
		if err := s.store.Remove(ctx, *m.FileURL); err != nil {
			s.log.Warn().Err(err).Int("message_id", id).Msg("could not remove attachment")
		}
	}
	return nil
}

// DeleteChat removes every message exchanged between two users, attachments
// included. The row count is returned for the confirmation payload.
func (s *MessageService) DeleteChat(ctx context.Context, userID, otherID int) (int, error) {
	messages, err := s.messageRepo.ListBetween(ctx, userID, otherID)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, m := range messages {
		if err := s.messageRepo.Delete(ctx, m.ID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				continue
			}
			return deleted, err
		}
		deleted++
		if m.FileURL != nil {
			if err := s.store.Remove(ctx, *m.FileURL); err != nil {
				s.log.Warn().Err(err).Int("message_id", m.ID).Msg("could not remove attachment")
			}
		}
	}
	return deleted, nil
}
