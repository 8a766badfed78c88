package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrParse matches any *ParseError.
	ErrParse = errors.New("input parse failed")
	// ErrDispatch matches any *DispatchError.
	ErrDispatch = errors.New("notification dispatch failed")
	// ErrEmptyInput indicates the payload has no clients.
	ErrEmptyInput = errors.New("input has no clients")
	// ErrInvalidShape indicates the payload does not match the expected structure.
	ErrInvalidShape = errors.New("input does not match expected shape")
	// ErrInvalidResponse indicates the DAS response body is not JSON.
	ErrInvalidResponse = errors.New("response body is not valid JSON")
	// ErrMissingParam indicates a required parameter has no value.
	ErrMissingParam = errors.New("missing required parameter")
)

// ParseError is returned when the input file cannot be turned into an InputPayload.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse input %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error        { return e.Err }
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// DispatchError is returned when DAS answers with a non-2xx status.
type DispatchError struct {
	StatusCode int
	StatusText string
	Body       string // compact JSON as received
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("Non-OK DAS API response: %d %s:%s", e.StatusCode, e.StatusText, e.Body)
}

func (e *DispatchError) Is(target error) bool { return target == ErrDispatch }
