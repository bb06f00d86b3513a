package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/escusoft/escuela-backend/internal/model"
	"github.com/escusoft/escuela-backend/internal/repository"
	"github.com/escusoft/escuela-backend/internal/response"
	"github.com/escusoft/escuela-backend/internal/service"
	"github.com/escusoft/escuela-backend/internal/validator"
)

// AuthHandler exposes registration and login.
type AuthHandler struct {
	userService *service.UserService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(userService *service.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// Register creates a user together with its profile detail.
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterUserRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	u, err := h.userService.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownRole):
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidRole)
		case errors.Is(err, repository.ErrDuplicateUsername):
			response.Fail(c, http.StatusBadRequest, response.ErrUsernameTaken)
		case errors.Is(err, repository.ErrDuplicateEmail):
			response.Fail(c, http.StatusBadRequest, response.ErrEmailTaken)
		case errors.Is(err, repository.ErrDuplicateDNI):
			response.Fail(c, http.StatusBadRequest, response.ErrDNITaken)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"user": u})
}

// Login checks credentials and returns a token plus the profile payload.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	u, token, err := h.userService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrUserNotFound)
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"user": gin.H{
			"id":        u.ID,
			"username":  u.Username,
			"type":      u.Detail.Role,
			"firstName": u.Detail.FirstName,
			"lastName":  u.Detail.LastName,
			"email":     u.Detail.Email,
			"carer_id":  u.Detail.CareerID,
		},
	})
}
