package domain

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	CodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	CodeNotFound        ErrorCode = "NOT_FOUND"
	CodeUnauthenticated ErrorCode = "UNAUTHENTICATED"
	CodeNetwork         ErrorCode = "NETWORK"
	CodeDataShape       ErrorCode = "DATA_SHAPE"
	CodeInternal        ErrorCode = "INTERNAL"
	CodeCanceled        ErrorCode = "CANCELED"
)

var ErrNetwork = errors.New("network error")
var ErrDataShape = errors.New("unexpected payload shape")
var ErrUnauthenticated = errors.New("not signed in")
var ErrToolNotFound = errors.New("tool not found")
var ErrInvalidArgument = errors.New("invalid argument")

type Error struct {
	Code      ErrorCode
	Op        string
	Message   string
	Cause     error
	Retryable bool
	Meta      map[string]string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if msg == "" && e.Cause != nil {
		msg = e.Cause.Error()
	}
	if e.Op == "" {
		if msg == "" {
			return string(e.Code)
		}
		return fmt.Sprintf("%s: %s", e.Code, msg)
	}
	if msg == "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Code)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Code, msg)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func E(code ErrorCode, op, msg string, cause error) *Error {
	if msg == "" && cause != nil {
		msg = cause.Error()
	}
	return &Error{
		Code:    code,
		Op:      op,
		Message: msg,
		Cause:   cause,
	}
}

// NetworkError reports an unreachable upstream or a non-2xx response.
func NetworkError(op string, status int, cause error) *Error {
	msg := ""
	if status > 0 {
		msg = fmt.Sprintf("upstream returned status %d", status)
	}
	if cause == nil {
		cause = ErrNetwork
	} else if !errors.Is(cause, ErrNetwork) {
		cause = fmt.Errorf("%w: %w", ErrNetwork, cause)
	}
	err := E(CodeNetwork, op, msg, cause)
	err.Retryable = true
	if status > 0 {
		err.Meta = map[string]string{"status": fmt.Sprintf("%d", status)}
	}
	return err
}

// DataShapeError reports an upstream payload that is not a tool sequence.
func DataShapeError(op, msg string) *Error {
	return E(CodeDataShape, op, msg, ErrDataShape)
}

func Wrap(code ErrorCode, op string, err error) *Error {
	if err == nil {
		return nil
	}
	var existing *Error
	if errors.As(err, &existing) {
		if existing.Op != "" || op == "" {
			return existing
		}
		return &Error{
			Code:      existing.Code,
			Op:        op,
			Message:   existing.Message,
			Cause:     existing.Cause,
			Retryable: existing.Retryable,
			Meta:      existing.Meta,
		}
	}
	return E(code, op, "", err)
}

func CodeFrom(err error) (ErrorCode, bool) {
	if err == nil {
		return "", false
	}
	var domainErr *Error
	if errors.As(err, &domainErr) && domainErr.Code != "" {
		return domainErr.Code, true
	}
	switch {
	case errors.Is(err, ErrInvalidArgument):
		return CodeInvalidArgument, true
	case errors.Is(err, ErrToolNotFound):
		return CodeNotFound, true
	case errors.Is(err, ErrUnauthenticated):
		return CodeUnauthenticated, true
	case errors.Is(err, ErrNetwork):
		return CodeNetwork, true
	case errors.Is(err, ErrDataShape):
		return CodeDataShape, true
	default:
		return "", false
	}
}

// IsRetryable reports whether the page should offer a retry affordance.
func IsRetryable(err error) bool {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Retryable
	}
	return false
}
