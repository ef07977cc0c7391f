package errors

import (
	stderrors "errors"
	"fmt"
)

// StatusError is returned when a remote call completes with a non-success status.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func NewStatusError(url string, code int, status string) *StatusError {
	return &StatusError{URL: url, StatusCode: code, Status: status}
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request to %s failed with status %s", e.URL, e.Status)
}

func IsStatusError(err error) bool {
	var e *StatusError
	return stderrors.As(err, &e)
}

// TransportError is returned when a remote call fails before a response is received
// or while its body is being read.
type TransportError struct {
	URL string
	Err error
}

func NewTransportError(url string, err error) *TransportError {
	return &TransportError{URL: url, Err: err}
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func IsTransportError(err error) bool {
	var e *TransportError
	return stderrors.As(err, &e)
}

type InvalidWorkerCountError struct {
	Workers int
}

func NewInvalidWorkerCountError(workers int) *InvalidWorkerCountError {
	return &InvalidWorkerCountError{Workers: workers}
}

func (e *InvalidWorkerCountError) Error() string {
	return fmt.Sprintf("worker count must be at least 1, got %d", e.Workers)
}

func IsInvalidWorkerCountError(err error) bool {
	var e *InvalidWorkerCountError
	return stderrors.As(err, &e)
}

// ClientConstructionError is returned when the client for one of the worker slots
// cannot be built.
type ClientConstructionError struct {
	Slot int
	Err  error
}

func NewClientConstructionError(slot int, err error) *ClientConstructionError {
	return &ClientConstructionError{Slot: slot, Err: err}
}

func (e *ClientConstructionError) Error() string {
	return fmt.Sprintf("failed to create client for worker %d: %v", e.Slot, e.Err)
}

func (e *ClientConstructionError) Unwrap() error {
	return e.Err
}

func IsClientConstructionError(err error) bool {
	var e *ClientConstructionError
	return stderrors.As(err, &e)
}

type InvalidSleepParamsError struct {
	Min uint64
	Max uint64
}

func NewInvalidSleepParamsError(min, max uint64) *InvalidSleepParamsError {
	return &InvalidSleepParamsError{Min: min, Max: max}
}

func (e *InvalidSleepParamsError) Error() string {
	return fmt.Sprintf("min must be less than max (min=%d, max=%d)", e.Min, e.Max)
}

func IsInvalidSleepParamsError(err error) bool {
	var e *InvalidSleepParamsError
	return stderrors.As(err, &e)
}

type PageNotFoundError struct {
	Key string
}

func NewPageNotFoundError(key string) *PageNotFoundError {
	return &PageNotFoundError{Key: key}
}

func (e *PageNotFoundError) Error() string {
	return fmt.Sprintf("subpage %q not found", e.Key)
}

func IsPageNotFoundError(err error) bool {
	var e *PageNotFoundError
	return stderrors.As(err, &e)
}

// InvalidConfigurationError reports a configuration field that failed validation.
type InvalidConfigurationError struct {
	Field  string
	Reason string
}

func NewInvalidConfigurationError(field, reason string) *InvalidConfigurationError {
	return &InvalidConfigurationError{Field: field, Reason: reason}
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Reason)
}

func IsInvalidConfigurationError(err error) bool {
	var e *InvalidConfigurationError
	return stderrors.As(err, &e)
}
