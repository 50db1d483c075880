package usecase

import (
	"errors"
	"strings"
)

const (
	CodeNotFound            = "NOT_FOUND"
	CodeConflict            = "CONFLICT"
	CodeValidation          = "VALIDATION_ERROR"
	CodeContractUnavailable = "CONTRACT_UNAVAILABLE"
	CodeSigningInProgress   = "SIGNING_IN_PROGRESS"
)

type DomainError struct {
	Code    string
	Message string
	Fields  []ValidationError
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *DomainError {
	return &DomainError{Code: CodeNotFound, Message: message}
}

func NewConflictError(message string) *DomainError {
	return &DomainError{Code: CodeConflict, Message: message}
}

func NewValidationError(fields []ValidationError) *DomainError {
	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, f.Error())
	}
	return &DomainError{Code: CodeValidation, Message: "dados inválidos: " + strings.Join(msgs, "; "), Fields: fields}
}

func IsDomainError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr)
}

// ErrorCode devolve o código do DomainError na cadeia, ou "" se não houver.
func ErrorCode(err error) string {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ""
}

type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *TechnicalError) Unwrap() error { return e.Err }

func IsTechnicalError(err error) bool {
	var techErr *TechnicalError
	return errors.As(err, &techErr)
}
