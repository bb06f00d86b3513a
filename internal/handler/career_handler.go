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

// CareerHandler exposes career CRUD.
type CareerHandler struct {
	careerService *service.CareerService
}

// NewCareerHandler creates a new CareerHandler.
func NewCareerHandler(careerService *service.CareerService) *CareerHandler {
	return &CareerHandler{careerService: careerService}
}

func (h *CareerHandler) GetAll(c *gin.Context) {
	careers, err := h.careerService.GetAll(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"carreras": careers})
}

func (h *CareerHandler) Create(c *gin.Context) {
	var req model.CreateCareerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	career := &model.Career{Name: req.Name}
	if err := h.careerService.Create(c.Request.Context(), career); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"carrera": career})
}

func (h *CareerHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateCareerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	career := &model.Career{ID: id, Name: req.Name}
	if err := h.careerService.Update(c.Request.Context(), career); err != nil {
		if errors.Is(err, service.ErrCareerNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrCareerNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"carrera": career})
}

// Delete removes a career and everything hanging from it, subjects included.
func (h *CareerHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.careerService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrCareerNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrCareerNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Carrera eliminada correctamente"})
}
