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

// SubjectHandler exposes subject CRUD and the grade endpoints.
type SubjectHandler struct {
	subjectService    *service.SubjectService
	enrollmentService *service.EnrollmentService
}

// NewSubjectHandler creates a new SubjectHandler.
func NewSubjectHandler(subjectService *service.SubjectService, enrollmentService *service.EnrollmentService) *SubjectHandler {
	return &SubjectHandler{subjectService: subjectService, enrollmentService: enrollmentService}
}

// Create adds a subject under an existing career.
func (h *SubjectHandler) Create(c *gin.Context) {
	var req model.CreateSubjectRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	subject := &model.Subject{Name: req.Name, CareerID: req.CareerID}
	career, err := h.subjectService.Create(c.Request.Context(), subject)
	if err != nil {
		if errors.Is(err, service.ErrCareerNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrCareerNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"materia": subject, "carrera": career})
}

// ListByCareer lists the subjects of one career.
func (h *SubjectHandler) ListByCareer(c *gin.Context) {
	careerID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	subjects, err := h.subjectService.ListByCareer(c.Request.Context(), careerID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"materias": subjects})
}

func (h *SubjectHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateSubjectRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	subject := &model.Subject{ID: id, Name: req.Name}
	if err := h.subjectService.Update(c.Request.Context(), subject); err != nil {
		if errors.Is(err, service.ErrSubjectNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrSubjectNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"materia": subject})
}

func (h *SubjectHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.subjectService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrSubjectNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrSubjectNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Materia eliminada correctamente"})
}

type saveGradesRequest struct {
	Grades []model.GradeEntry `json:"notas" binding:"required,dive"`
}

// SaveGrades bulk-upserts grades for one subject. Entries without a grade or
// pointing at users not enrolled are skipped.
func (h *SubjectHandler) SaveGrades(c *gin.Context) {
	subjectID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req saveGradesRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.enrollmentService.SaveGrades(c.Request.Context(), subjectID, req.Grades); err != nil {
		if errors.Is(err, service.ErrSubjectNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrSubjectNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Notas guardadas correctamente"})
}

// StudentsOfSubject lists the students enrolled in a subject with each grade.
func (h *SubjectHandler) StudentsOfSubject(c *gin.Context) {
	subjectID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	students, err := h.enrollmentService.StudentsOfSubject(c.Request.Context(), subjectID)
	if err != nil {
		if errors.Is(err, service.ErrSubjectNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrSubjectNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if students == nil {
		students = []model.StudentGrade{}
	}
	response.Success(c, http.StatusOK, gin.H{"estudiantes": students})
}

// GetGrade returns one student's grade in one subject.
func (h *SubjectHandler) GetGrade(c *gin.Context) {
	subjectID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	grade, err := h.enrollmentService.GetGrade(c.Request.Context(), userID, subjectID)
	if err != nil {
		if errors.Is(err, service.ErrGradeNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"nota": grade})
}

// TeachingAssignments dumps the teacher-subject join table.
func (h *SubjectHandler) TeachingAssignments(c *gin.Context) {
	assignments, err := h.enrollmentService.TeachingAssignments(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if assignments == nil {
		assignments = []model.TeachingAssignment{}
	}
	response.Success(c, http.StatusOK, gin.H{"asignadas": assignments})
}
