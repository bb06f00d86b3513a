package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/escusoft/escuela-backend/internal/config"
	"github.com/escusoft/escuela-backend/internal/model"
	"github.com/escusoft/escuela-backend/internal/response"
	"github.com/escusoft/escuela-backend/internal/service"
)

// MessageHandler exposes direct messaging with attachments.
type MessageHandler struct {
	messageService *service.MessageService
	cfg            *config.Config
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(messageService *service.MessageService, cfg *config.Config) *MessageHandler {
	return &MessageHandler{messageService: messageService, cfg: cfg}
}

// Send accepts a multipart form with sender_id, receiver_id, an optional
// content text and an optional file attachment. One of content or file must
// be present.
func (h *MessageHandler) Send(c *gin.Context) {
	senderID, err := strconv.Atoi(c.PostForm("sender_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	receiverID, err := strconv.Atoi(c.PostForm("receiver_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	content := strings.TrimSpace(c.PostForm("content"))

	var att *service.Attachment
	fileHeader, err := c.FormFile("file")
	if err == nil && fileHeader != nil {
		if fileHeader.Size > h.cfg.MaxUploadBytes {
			response.Fail(c, http.StatusRequestEntityTooLarge, response.ErrFileTooLarge)
			return
		}
		f, err := fileHeader.Open()
		if err != nil {
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}
		defer f.Close()

		att = &service.Attachment{
			Filename:    fileHeader.Filename,
			Reader:      f,
			Size:        fileHeader.Size,
			ContentType: fileHeader.Header.Get("Content-Type"),
		}
	}

	m, err := h.messageService.Send(c.Request.Context(), senderID, receiverID, content, att)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyMessage):
			response.Fail(c, http.StatusUnprocessableEntity, response.ErrEmptyMessage)
		case errors.Is(err, service.ErrUserNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrUserNotFound)
		case errors.Is(err, service.ErrUploadFailed):
			response.Fail(c, http.StatusInternalServerError, response.ErrUploadFailed)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"mensaje": m})
}

// ListForUser returns a user's full message feed, newest first.
func (h *MessageHandler) ListForUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	messages, err := h.messageService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrUserNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if messages == nil {
		messages = []model.MessageRow{}
	}
	response.Success(c, http.StatusOK, gin.H{"mensajes": messages})
}

// Delete removes one message while it is still inside the delete window.
func (h *MessageHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("msg_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.messageService.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, service.ErrMessageNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrMessageNotFound)
		case errors.Is(err, service.ErrDeleteWindowExpired):
			response.Fail(c, http.StatusForbidden, response.ErrDeleteWindowExpired)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Mensaje eliminado correctamente"})
}

// DeleteChat removes every message between two users, attachments included.
func (h *MessageHandler) DeleteChat(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	otherID, err := strconv.Atoi(c.Param("other_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	deleted, err := h.messageService.DeleteChat(c.Request.Context(), userID, otherID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": deleted})
}
