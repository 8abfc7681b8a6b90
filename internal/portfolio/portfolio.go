// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package portfolio implements the management views of the admin tool:
// projects, experience grouped by category, the About text and contacts.
// Each service validates input before writing, asks a Prompter to confirm
// destructive operations and reports outcomes through it. The HTTP
// handlers and the terminal shell are thin front ends over these services.
package portfolio

import (
	"errors"
	"fmt"
	"log/slog"
)

// NoticeKind classifies a message shown to the user.
type NoticeKind string

const (
	NoticeInfo    NoticeKind = "info"
	NoticeWarning NoticeKind = "warning"
	NoticeError   NoticeKind = "error"
)

// Prompter is the confirmation and alert surface of a front end.
type Prompter interface {
	// Confirm asks a yes/no question and reports whether the user said yes.
	Confirm(question string) bool
	// Notify shows a message.
	Notify(kind NoticeKind, message string)
}

// ErrNotConfirmed is returned when the user declines a confirmation. No
// write has happened.
var ErrNotConfirmed = errors.New("operation not confirmed")

// ValidationError is a user mistake caught before any write.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// OperationError is a store failure at an operation boundary. Its message
// reads "Error <action>: <cause>".
type OperationError struct {
	Action string
	Err    error
}

func (e *OperationError) Error() string {
	return "Error " + e.Action + ": " + e.Err.Error()
}

func (e *OperationError) Unwrap() error { return e.Err }

// failed logs a store error and wraps it for the front end.
func failed(action string, err error) error {
	slog.Error(action+" failed", "error", err)
	return &OperationError{Action: action, Err: err}
}

// confirm asks p and returns ErrNotConfirmed on a "no".
func confirm(p Prompter, question string) error {
	if !p.Confirm(question) {
		return ErrNotConfirmed
	}
	return nil
}

// Silent is a Prompter that confirms everything and discards notices.
// It is meant for scripted use such as seeding and tests.
type Silent struct{}

func (Silent) Confirm(string) bool { return true }

func (Silent) Notify(NoticeKind, string) {}
