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

// EnrollmentHandler exposes the user-subject relations.
type EnrollmentHandler struct {
	enrollmentService *service.EnrollmentService
}

// NewEnrollmentHandler creates a new EnrollmentHandler.
func NewEnrollmentHandler(enrollmentService *service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentService: enrollmentService}
}

// Assign links a user to a subject as student or teacher. Repeating an
// existing assignment is a no-op.
func (h *EnrollmentHandler) Assign(c *gin.Context) {
	var req model.AssignSubjectRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.enrollmentService.Assign(c.Request.Context(), &req); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrUserNotFound)
		case errors.Is(err, service.ErrSubjectNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrSubjectNotFound)
		case errors.Is(err, service.ErrRoleMismatch):
			response.Fail(c, http.StatusBadRequest, response.ErrRoleMismatch)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Materia asignada correctamente"})
}

// SubjectsOfUser lists the subjects a user relates to. Students get their
// enrolled subjects with the assigned teacher, teachers their taught ones.
func (h *EnrollmentHandler) SubjectsOfUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	subjects, err := h.enrollmentService.SubjectsOfUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrUserNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if subjects == nil {
		subjects = []model.SubjectWithTeacher{}
	}
	response.Success(c, http.StatusOK, gin.H{"materias": subjects})
}
