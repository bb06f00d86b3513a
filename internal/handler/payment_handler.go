package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/escusoft/escuela-backend/internal/model"
	"github.com/escusoft/escuela-backend/internal/pagination"
	"github.com/escusoft/escuela-backend/internal/response"
	"github.com/escusoft/escuela-backend/internal/service"
	"github.com/escusoft/escuela-backend/internal/validator"
)

// PaymentHandler exposes tuition payment CRUD and listings.
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

func (h *PaymentHandler) Create(c *gin.Context) {
	var req model.CreatePaymentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	row, err := h.paymentService.Create(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrUserNotFound)
		case errors.Is(err, service.ErrCareerNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrCareerNotFound)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"pago": row})
}

func (h *PaymentHandler) ListAll(c *gin.Context) {
	payments, err := h.paymentService.ListAll(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"payments": payments})
}

// ListByUsername lists the payments of one user looked up by username.
func (h *PaymentHandler) ListByUsername(c *gin.Context) {
	payments, err := h.paymentService.ListByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrUserNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"payments": payments})
}

type paymentKeysetRequest struct {
	pagination.Params
	model.PaymentFilter
}

// ListKeyset is the cursor-paginated listing with the structured filters
// carried flat in the body.
func (h *PaymentHandler) ListKeyset(c *gin.Context) {
	var req paymentKeysetRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	payments, next, err := h.paymentService.ListKeyset(c.Request.Context(), req.Params, &req.PaymentFilter)
	if err != nil {
		if errors.Is(err, pagination.ErrNegativeLimit) {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidLimit)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if payments == nil {
		payments = []model.PaymentRow{}
	}
	response.Success(c, http.StatusOK, gin.H{"payments": payments, "next_cursor": next})
}

// Search is the offset search across username, names and career name.
func (h *PaymentHandler) Search(c *gin.Context) {
	limit, offset, ok := pageQuery(c)
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidLimit)
		return
	}

	var userID *int
	if raw := c.Query("user_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
			return
		}
		userID = &id
	}

	payments, err := h.paymentService.Search(c.Request.Context(), c.Query("q"), userID, limit, offset)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if payments == nil {
		payments = []model.PaymentRow{}
	}
	response.Success(c, http.StatusOK, gin.H{"payments": payments})
}

// Pending lists students with no payment recorded for the current month.
func (h *PaymentHandler) Pending(c *gin.Context) {
	students, err := h.paymentService.PendingStudents(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if students == nil {
		students = []model.PendingStudent{}
	}
	response.Success(c, http.StatusOK, gin.H{"pending": students})
}

func (h *PaymentHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdatePaymentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.paymentService.Update(c.Request.Context(), id, &req); err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrPaymentNotFound)
		case errors.Is(err, service.ErrCareerNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrCareerNotFound)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Pago actualizado correctamente"})
}

func (h *PaymentHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.paymentService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrPaymentNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrPaymentNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Pago eliminado correctamente"})
}
