package model

import "time"

// NotificationCategory enumerates the on-demand notification kinds.
type NotificationCategory string

const (
	NotifMessage    NotificationCategory = "mensaje"
	NotifAssignment NotificationCategory = "asignacion"
	NotifGrade      NotificationCategory = "nota"
	NotifPayment    NotificationCategory = "pago"
)

// Notification is a derived, non-persisted alert. At most one per category is
// produced for a given user; read state is tracked by the rendered text.
type Notification struct {
	Category NotificationCategory `json:"tipo"`
	Text     string               `json:"texto"`
	Date     time.Time            `json:"fecha"`
}

// MarkReadRequest acknowledges a single notification by its rendered text.
type MarkReadRequest struct {
	UserID int    `json:"user_id" binding:"required,gt=0"`
	Text   string `json:"texto" binding:"required"`
}

// MarkCategoryReadRequest acknowledges every current notification of one
// category.
type MarkCategoryReadRequest struct {
	UserID   int    `json:"user_id" binding:"required,gt=0"`
	Category string `json:"tipo" binding:"required,oneof=mensaje asignacion nota pago"`
}
