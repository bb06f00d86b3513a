package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/escusoft/escuela-backend/internal/model"
	"github.com/escusoft/escuela-backend/internal/pagination"
	"github.com/escusoft/escuela-backend/internal/repository"
	"github.com/escusoft/escuela-backend/internal/response"
	"github.com/escusoft/escuela-backend/internal/service"
	"github.com/escusoft/escuela-backend/internal/validator"
)

// UserHandler exposes the user listings and profile mutations.
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// ListAll returns every user with its detail.
func (h *UserHandler) ListAll(c *gin.Context) {
	users, err := h.userService.ListAll(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"users": users})
}

// ListTeachers returns every teacher for the assignment pickers.
func (h *UserHandler) ListTeachers(c *gin.Context) {
	teachers, err := h.userService.ListTeachers(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"profesores": teachers})
}

// pageQuery reads the shared limit/offset query params with their defaults.
func pageQuery(c *gin.Context) (limit, offset int, ok bool) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 || limit > 100 {
		return 0, 0, false
	}
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		return 0, 0, false
	}
	return limit, offset, true
}

// ListByType is the offset listing filtered by user type, with a total count.
func (h *UserHandler) ListByType(c *gin.Context) {
	limit, offset, ok := pageQuery(c)
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidLimit)
		return
	}

	users, total, err := h.userService.ListByRolePage(c.Request.Context(), c.Query("user_type"), limit, offset)
	if err != nil {
		if errors.Is(err, service.ErrUnknownRole) {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidRole)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"users": users, "total": total})
}

// SearchByType adds a name substring search to the offset listing.
func (h *UserHandler) SearchByType(c *gin.Context) {
	limit, offset, ok := pageQuery(c)
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidLimit)
		return
	}

	users, total, err := h.userService.SearchByRolePage(c.Request.Context(),
		c.Query("user_type"), c.Query("q"), limit, offset)
	if err != nil {
		if errors.Is(err, service.ErrUnknownRole) {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidRole)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"users": users, "total": total})
}

type userKeysetRequest struct {
	pagination.Params
	Filters *model.UserFilter `json:"filters"`
}

// ListKeyset is the cursor-paginated listing. The optional filters body field
// carries the structured filter set.
func (h *UserHandler) ListKeyset(c *gin.Context) {
	var req userKeysetRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	users, next, err := h.userService.ListKeyset(c.Request.Context(), req.Params, req.Filters)
	if err != nil {
		if errors.Is(err, pagination.ErrNegativeLimit) {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidLimit)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if users == nil {
		users = []model.UserWithDetail{}
	}
	response.Success(c, http.StatusOK, gin.H{"users": users, "next_cursor": next})
}

// Contacts lists the users visible to one user in the messaging picker.
func (h *UserHandler) Contacts(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	contacts, err := h.userService.Contacts(c.Request.Context(), id, c.Query("search"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrUserNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if contacts == nil {
		contacts = []model.Contact{}
	}
	response.Success(c, http.StatusOK, gin.H{"usuarios": contacts})
}

// UpdatePassword replaces one user's password.
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdatePasswordRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.userService.UpdatePassword(c.Request.Context(), id, req.Password); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrUserNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Contraseña actualizada correctamente"})
}

// UpdateProfile renames a user and resets the password in one call.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req model.UpdateProfileRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.userService.UpdateProfile(c.Request.Context(), &req); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateUsername):
			response.Fail(c, http.StatusBadRequest, response.ErrUsernameTaken)
		case errors.Is(err, service.ErrUserNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrUserNotFound)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Perfil actualizado correctamente"})
}
