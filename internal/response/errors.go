package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrUserNotFound       ErrCode = "USER_NOT_FOUND"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"
	ErrInvalidLimit   ErrCode = "INVALID_LIMIT"
	ErrInvalidRole    ErrCode = "INVALID_ROLE"

	// ─── Uniqueness conflicts ──────────────────────────────────────────
	ErrUsernameTaken ErrCode = "USERNAME_TAKEN"
	ErrEmailTaken    ErrCode = "EMAIL_TAKEN"
	ErrDNITaken      ErrCode = "DNI_TAKEN"
	ErrConflict      ErrCode = "CONFLICT"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound        ErrCode = "NOT_FOUND"
	ErrCareerNotFound  ErrCode = "CAREER_NOT_FOUND"
	ErrSubjectNotFound ErrCode = "SUBJECT_NOT_FOUND"
	ErrPaymentNotFound ErrCode = "PAYMENT_NOT_FOUND"
	ErrMessageNotFound ErrCode = "MESSAGE_NOT_FOUND"

	// ─── Messaging ─────────────────────────────────────────────────────
	ErrEmptyMessage        ErrCode = "EMPTY_MESSAGE"
	ErrDeleteWindowExpired ErrCode = "DELETE_WINDOW_EXPIRED"
	ErrUploadFailed        ErrCode = "UPLOAD_FAILED"
	ErrFileTooLarge        ErrCode = "FILE_TOO_LARGE"

	// ─── Enrollment ────────────────────────────────────────────────────
	ErrRoleMismatch ErrCode = "ROLE_MISMATCH"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Contraseña incorrecta."
	case ErrUserNotFound:
		return "Usuario no encontrado."
	case ErrTokenRequired:
		return "Se requiere el encabezado de autorización."
	case ErrTokenInvalid:
		return "Token inválido o expirado."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "La validación falló. Revise los datos enviados."
	case ErrInvalidID:
		return "Formato de ID inválido."
	case ErrInvalidPayload:
		return "El cuerpo de la petición es inválido."
	case ErrInvalidLimit:
		return "El límite de paginación es inválido."
	case ErrInvalidRole:
		return "Tipo de usuario desconocido."

	// ─── Uniqueness conflicts ──────────────────────────────────────────
	case ErrUsernameTaken:
		return "El nombre de usuario ya existe."
	case ErrEmailTaken:
		return "El email ya está en uso."
	case ErrDNITaken:
		return "El DNI ya está registrado."
	case ErrConflict:
		return "El recurso ya existe."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Recurso no encontrado."
	case ErrCareerNotFound:
		return "Carrera no encontrada."
	case ErrSubjectNotFound:
		return "Materia no encontrada."
	case ErrPaymentNotFound:
		return "Pago no encontrado."
	case ErrMessageNotFound:
		return "Mensaje no encontrado."

	// ─── Messaging ─────────────────────────────────────────────────────
	case ErrEmptyMessage:
		return "Debe proporcionar contenido del mensaje o un archivo."
	case ErrDeleteWindowExpired:
		return "Solo se pueden eliminar mensajes de los últimos 10 minutos."
	case ErrUploadFailed:
		return "Error al subir el archivo."
	case ErrFileTooLarge:
		return "El archivo supera el tamaño máximo permitido."

	// ─── Enrollment ────────────────────────────────────────────────────
	case ErrRoleMismatch:
		return "Tipo de relación no válido para este usuario."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Demasiadas peticiones. Intente nuevamente más tarde."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Error interno del servidor."
	default:
		return "Ocurrió un error inesperado."
	}
}
