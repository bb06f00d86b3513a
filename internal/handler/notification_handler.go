package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/escusoft/escuela-backend/internal/model"
	"github.com/escusoft/escuela-backend/internal/response"
	"github.com/escusoft/escuela-backend/internal/service"
	"github.com/escusoft/escuela-backend/internal/validator"
)

// NotificationHandler exposes the derived notification feed.
type NotificationHandler struct {
	notificationService *service.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List returns the user's unread notifications. The user's role decides which
// categories apply; it is resolved server-side, never taken from the client.
func (h *NotificationHandler) List(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	notifs, err := h.notificationService.ListUnread(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrUserNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"notificaciones": notifs})
}

// MarkRead acknowledges one notification by its rendered text.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	var req model.MarkReadRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), req.UserID, req.Text); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Notificación marcada como leída"})
}

// MarkCategoryRead acknowledges every current notification of one category.
func (h *NotificationHandler) MarkCategoryRead(c *gin.Context) {
	var req model.MarkCategoryReadRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	err := h.notificationService.MarkCategoryRead(c.Request.Context(),
		req.UserID, model.NotificationCategory(req.Category))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrUserNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Notificaciones marcadas como leídas"})
}
