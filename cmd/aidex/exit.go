package main

import (
	"errors"

	"aidex/internal/domain"
)

const (
	exitFailure         = 1
	exitUsage           = 2
	exitUnauthenticated = 3
	exitUpstream        = 4
)

type exitError struct {
	code    int
	message string
	silent  bool
}

func (e exitError) Error() string {
	return e.message
}

// classifyExit maps domain errors to process exit codes and user-facing
// messages. Errors that already carry an exit code pass through.
func classifyExit(err error) error {
	if err == nil {
		return nil
	}
	var exitErr exitError
	if errors.As(err, &exitErr) {
		return err
	}
	code, _ := domain.CodeFrom(err)
	switch code {
	case domain.CodeInvalidArgument:
		return exitError{code: exitUsage, message: err.Error()}
	case domain.CodeUnauthenticated:
		return exitError{code: exitUnauthenticated, message: "not signed in; run `aidex login` first"}
	case domain.CodeNetwork, domain.CodeDataShape:
		return exitError{code: exitUpstream, message: err.Error()}
	default:
		return exitError{code: exitFailure, message: err.Error()}
	}
}

func exitSilent(code int) error {
	return exitError{code: code, silent: true}
}
