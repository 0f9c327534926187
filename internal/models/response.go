package models

// Машиночитаемые коды ошибок для клиентов API.
const (
	ErrCodeBadRequest     = "BAD_REQUEST"
	ErrCodeValidation     = "VALIDATION_ERROR"
	ErrCodeUnauthorized   = "UNAUTHORIZED"
	ErrCodeForbidden      = "FORBIDDEN"
	ErrCodeNotFound       = "NOT_FOUND"
	ErrCodeConflict       = "CONFLICT"
	ErrCodeNoActiveChar   = "NO_ACTIVE_CHARACTER"
	ErrCodeServerMismatch = "SERVER_MISMATCH"
	ErrCodeTokenInvalid   = "TOKEN_INVALID"
	ErrCodeTokenExpired   = "TOKEN_EXPIRED"
	ErrCodeInternal       = "INTERNAL_ERROR"
)

// ErrorResponse - стандартная структура для ответа об ошибке в формате JSON.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
