package apperr

import (
	"errors"
	"fmt"
)

// ===============================
// Error taxonomy
// ===============================
//
// ValidationError and ConflictError are always surfaced before any side
// effect. ExternalError carries the port that failed so handlers can tell
// a broken calendar from a broken ledger.

type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

type ConflictError struct {
	Reason string
}

func (e ConflictError) Error() string {
	return e.Reason
}

type ConfigurationError struct {
	Key string
}

func (e ConfigurationError) Error() string {
	return "missing configuration: " + e.Key
}

type ExternalError struct {
	Port string // "calendar", "ledger", "notifier", "holidays"
	Err  error
}

func (e ExternalError) Error() string {
	return fmt.Sprintf("%s: %v", e.Port, e.Err)
}

func (e ExternalError) Unwrap() error {
	return e.Err
}

// ===============================
// Constructors
// ===============================

func Validation(field, reason string) error {
	return ValidationError{Field: field, Reason: reason}
}

func Conflict(reason string) error {
	return ConflictError{Reason: reason}
}

func Configuration(key string) error {
	return ConfigurationError{Key: key}
}

func External(port string, err error) error {
	return ExternalError{Port: port, Err: err}
}

// ===============================
// Checks
// ===============================

func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

func IsConflict(err error) bool {
	var ce ConflictError
	return errors.As(err, &ce)
}

func IsConfiguration(err error) bool {
	var ce ConfigurationError
	return errors.As(err, &ce)
}

func IsExternal(err error) bool {
	var ee ExternalError
	return errors.As(err, &ee)
}
