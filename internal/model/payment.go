package model

import "time"

// DateLayout is the wire format for billing dates ("YYYY-MM-DD").
const DateLayout = "2006-01-02"

// Payment is a tuition payment. AffectedMonth is the billing period the
// payment covers; CreatedAt is when it was recorded, used for chronological
// range filters.
type Payment struct {
	ID            int       `json:"id"`
	UserID        int       `json:"user_id"`
	CareerID      int       `json:"carer_id"`
	Amount        int       `json:"amount"`
	AffectedMonth time.Time `json:"affected_month"`
	CreatedAt     time.Time `json:"created_at"`
}

// PaymentRow is a listing row joined with user and career names.
type PaymentRow struct {
	ID            int       `json:"id"`
	UserID        int       `json:"user_id"`
	Username      string    `json:"username"`
	CareerID      int       `json:"carer_id"`
	CareerName    string    `json:"carer"`
	Amount        int       `json:"amount"`
	AffectedMonth time.Time `json:"affected_month"`
	CreatedAt     time.Time `json:"created_at"`
}

// PendingStudent is a student with no payment recorded for the current month.
type PendingStudent struct {
	ID       int    `json:"id"`
	FullName string `json:"fullname"`
}

// CreatePaymentRequest records a payment for a user and career.
type CreatePaymentRequest struct {
	UserID        int    `json:"user_id" binding:"required,gt=0"`
	CareerID      int    `json:"carer_id" binding:"required,gt=0"`
	Amount        int    `json:"amount" binding:"required,gt=0"`
	AffectedMonth string `json:"affected_month" binding:"required,datetime=2006-01-02"`
}

// UpdatePaymentRequest rewrites an existing payment.
type UpdatePaymentRequest struct {
	CareerID      int    `json:"carer_id" binding:"required,gt=0"`
	Amount        int    `json:"amount" binding:"required,gt=0"`
	AffectedMonth string `json:"affected_month" binding:"required,datetime=2006-01-02"`
}

// PaymentFilter is the structured filter set of the paginated payment
// listing: exact user match and an inclusive created-at range, either bound
// optional. Dates use DateLayout.
type PaymentFilter struct {
	UserID    *int    `json:"user_id"`
	StartDate *string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
}
