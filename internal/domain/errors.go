package domain

import "fmt"

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Это позволяет использовать errors.Is()
func (e *DomainError) Is(target error) bool {
	if t, ok := target.(*DomainError); ok {
		return e.Code == t.Code
	}
	return false
}

const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeEmailExists        = "EMAIL_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeInvalidInvite      = "INVALID_INVITE"
)

var (
	// ErrValidation - тело запроса или параметры не прошли проверку
	ErrValidation = &DomainError{
		Code:    CodeValidation,
		Message: "invalid request",
	}

	// ErrEmailExists - email уже зарегистрирован
	ErrEmailExists = &DomainError{
		Code:    CodeEmailExists,
		Message: "email already registered",
	}

	// ErrInvalidCredentials - неверный email или пароль
	ErrInvalidCredentials = &DomainError{
		Code:    CodeInvalidCredentials,
		Message: "invalid email or password",
	}

	// ErrUnauthenticated - токен отсутствует, невалиден или истёк
	ErrUnauthenticated = &DomainError{
		Code:    CodeUnauthenticated,
		Message: "invalid or expired token",
	}

	// ErrForbidden - недостаточно прав в группе
	ErrForbidden = &DomainError{
		Code:    CodeForbidden,
		Message: "only the group owner or an admin can do this",
	}

	// ErrNotFound - ресурс не найден
	ErrNotFound = &DomainError{
		Code:    CodeNotFound,
		Message: "resource not found",
	}

	// ErrInvalidInvite - приглашение не существует, уже использовано или истекло
	ErrInvalidInvite = &DomainError{
		Code:    CodeInvalidInvite,
		Message: "invite is invalid or already used",
	}
)

// NewNotFoundError создает ошибку NOT_FOUND с дополнительным контекстом
func NewNotFoundError(resource string) *DomainError {
	return &DomainError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

func NewValidationError(message string) *DomainError {
	return &DomainError{
		Code:    CodeValidation,
		Message: message,
	}
}

func NewForbiddenError(message string) *DomainError {
	return &DomainError{
		Code:    CodeForbidden,
		Message: message,
	}
}
