package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrRatesUnavailable indicates that no exchange rate table is currently loaded.
// Cross-currency conversion and editing must be disabled while this holds; it is
// a degraded mode surfaced to the user, never a fatal condition.
var ErrRatesUnavailable = errors.New("exchange rates unavailable")
