package service

import (
	"fmt"

	"taskBoard/internal/logger"

	"go.uber.org/zap"
)

const (
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeAccountDeactivated = "ACCOUNT_DEACTIVATED"
	CodeNotFound           = "NOT_FOUND"
	CodeForbidden          = "FORBIDDEN"
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidStatus      = "INVALID_STATUS"
	CodeInvalidAssignee    = "INVALID_ASSIGNEE"
	CodeAlreadyMember      = "ALREADY_MEMBER"
	CodeEmailTaken         = "EMAIL_TAKEN"
	CodeInvalidOperation   = "INVALID_OPERATION"
	CodeInternal           = "INTERNAL"
)

// эталоны для errors.Is, сравнение идёт только по коду
var (
	ErrUnauthenticated    = &BusinessError{Code: CodeUnauthenticated}
	ErrAccountDeactivated = &BusinessError{Code: CodeAccountDeactivated}
	ErrNotFound           = &BusinessError{Code: CodeNotFound}
	ErrForbidden          = &BusinessError{Code: CodeForbidden}
	ErrValidation         = &BusinessError{Code: CodeValidation}
	ErrInvalidStatus      = &BusinessError{Code: CodeInvalidStatus}
	ErrInvalidAssignee    = &BusinessError{Code: CodeInvalidAssignee}
	ErrAlreadyMember      = &BusinessError{Code: CodeAlreadyMember}
	ErrEmailTaken         = &BusinessError{Code: CodeEmailTaken}
	ErrInvalidOperation   = &BusinessError{Code: CodeInvalidOperation}
	ErrInternal           = &BusinessError{Code: CodeInternal}
)

type BusinessError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

type Detail struct {
	Key     string
	Payload any
}

func (b *BusinessError) Error() string {
	if b.Err != nil {
		return fmt.Sprintf("[%s] %s: %s", b.Code, b.Message, b.Err.Error())
	}
	return fmt.Sprintf("[%s] %s", b.Code, b.Message)
}

func (b *BusinessError) Unwrap() error {
	return b.Err
}

func (b *BusinessError) Is(target error) bool {
	t, ok := target.(*BusinessError)
	return ok && t.Code == b.Code
}

func ToDetail(key string, payload any) Detail {
	return Detail{
		Key:     key,
		Payload: payload,
	}
}

func NewBusinessError(code string, message string, details ...Detail) *BusinessError {
	busErr := &BusinessError{
		Code:    code,
		Message: message,
		Details: make(map[string]any),
	}

	for _, detail := range details {
		busErr.Details[detail.Key] = detail.Payload
	}

	return busErr
}

type Resource string

const (
	ResourceUser    Resource = "user"
	ResourceProject Resource = "project"
	ResourceTask    Resource = "task"
	ResourceComment Resource = "comment"
)

func NewNotFound(resource Resource, id string) *BusinessError {
	return NewBusinessError(CodeNotFound,
		fmt.Sprintf("%s %s не найден(а)", resource, id),
		ToDetail("resource", resource),
		ToDetail("id", id),
	)
}

func NewForbidden(action string) *BusinessError {
	return NewBusinessError(CodeForbidden,
		fmt.Sprintf("недостаточно прав: %s", action),
		ToDetail("action", action),
	)
}

func NewValidationError(field, reason string) *BusinessError {
	return NewBusinessError(CodeValidation,
		fmt.Sprintf("Неверное значение поля '%s': %s", field, reason),
		ToDetail("field", field),
		ToDetail("reason", reason),
	)
}

func NewInvalidStatus(value string) *BusinessError {
	return NewBusinessError(CodeInvalidStatus,
		fmt.Sprintf("недопустимый статус %q", value),
		ToDetail("status", value),
	)
}

func NewInvalidAssignee(userID string) *BusinessError {
	return NewBusinessError(CodeInvalidAssignee,
		"исполнитель должен быть владельцем или участником проекта",
		ToDetail("assigned_to", userID),
	)
}

func NewAlreadyMember(email string) *BusinessError {
	return NewBusinessError(CodeAlreadyMember,
		fmt.Sprintf("пользователь %s уже в проекте", email),
		ToDetail("email", email),
	)
}

func NewEmailTaken(email string) *BusinessError {
	return NewBusinessError(CodeEmailTaken,
		fmt.Sprintf("email %s уже зарегистрирован", email),
		ToDetail("email", email),
	)
}

func NewInvalidOperation(reason string) *BusinessError {
	return NewBusinessError(CodeInvalidOperation, reason)
}

func NewUnauthenticated(reason string) *BusinessError {
	return NewBusinessError(CodeUnauthenticated, reason)
}

func NewAccountDeactivated() *BusinessError {
	return NewBusinessError(CodeAccountDeactivated, "аккаунт деактивирован")
}

// internalError логирует причину и возвращает ошибку без подробностей хранилища
func internalError(operation string, err error, fields ...zap.Field) *BusinessError {
	logger.Error("Service: "+operation, err, append(fields, zap.String("operation", operation))...)
	busErr := NewBusinessError(CodeInternal, "внутренняя ошибка сервера")
	busErr.Err = err
	return busErr
}
