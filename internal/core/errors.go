package core

import (
	"errors"
	"fmt"
)

// Коды ошибок, видимые на границе ядра.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodePrompt       = "PROMPT_ERROR"
	CodeOperation    = "OPERATION_ERROR"
	CodeSubprocess   = "SUBPROCESS_ERROR"
	CodeSubprocessEx = "SUBPROCESS_EXIT_ERROR"
	CodeConfig       = "CONFIG_ERROR"
	CodePhase        = "PHASE_ERROR"
	CodeBatchItem    = "BATCH_ITEM_ERROR"
	CodeCanceled     = "CANCELED"

	codeUnknown = "UNKNOWN_ERROR"
)

// Error типизированная ошибка исполнителей.
type Error struct {
	Code    string
	Message string
	Field   string
	Details string
	Cause   error
}

// Error возвращает сообщение без кода: оно же попадает в логи исполнителей.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap отдает исходную причину для errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is сравнивает ошибки по коду.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code != "" && t.Code == e.Code && t.Message == ""
}

// New создает ошибку с кодом и сообщением.
func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap создает ошибку с кодом, сохраняя причину.
func Wrap(code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// Validation создает ошибку валидации для поля.
func Validation(field, message string) *Error {
	return &Error{Code: CodeValidation, Message: message, Field: field}
}

// Kind возвращает шаблон для errors.Is по коду.
func Kind(code string) *Error {
	return &Error{Code: code}
}

// FromPanic превращает значение recover() в ошибку с причиной.
func FromPanic(code, message string, rec any) *Error {
	cause, ok := rec.(error)
	if !ok {
		cause = fmt.Errorf("%v", rec)
	}
	return Wrap(code, message, cause)
}

// CodeOf возвращает код ошибки или UNKNOWN_ERROR.
func CodeOf(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) && e.Code != "" {
		return e.Code
	}
	return codeUnknown
}

// MessageOf возвращает текст ошибки; для nil пустую строку.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// DetailsOf возвращает Details ближайшей *Error в цепочке.
func DetailsOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Details
	}
	return ""
}
