package models

import (
	"errors"
	"fmt"
)

// Error codes used in API responses.
const (
	ErrCodeFetch        = "FETCH_FAILED"
	ErrCodeParse        = "PARSE_FAILED"
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeRateLimited  = "RATE_LIMITED"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// ErrorDetail is the structured error in API responses.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ContentErrorKind tells a fetch failure apart from a parse failure.
type ContentErrorKind int

const (
	// FetchError means the resource could not be obtained.
	FetchError ContentErrorKind = iota + 1
	// ParseError means the resource was obtained but could not be understood.
	ParseError
)

func (k ContentErrorKind) String() string {
	switch k {
	case FetchError:
		return "fetch"
	case ParseError:
		return "parse"
	default:
		return "unknown"
	}
}

// ContentError is the only error type leaving the content pipeline.
// It carries the originating URL so it can be logged as-is.
type ContentError struct {
	Kind ContentErrorKind
	URL  string
	Err  error
}

func (e *ContentError) Error() string {
	switch e.Kind {
	case FetchError:
		return fmt.Sprintf("failed to fetch URL %s: %v", e.URL, e.Err)
	case ParseError:
		return fmt.Sprintf("failed to parse body of %s: %v", e.URL, e.Err)
	default:
		return fmt.Sprintf("content error for %s: %v", e.URL, e.Err)
	}
}

func (e *ContentError) Unwrap() error {
	return e.Err
}

// NewFetchError wraps a transport failure for url.
func NewFetchError(url string, err error) *ContentError {
	return &ContentError{Kind: FetchError, URL: url, Err: err}
}

// NewParseError wraps an extraction failure for url.
func NewParseError(url string, err error) *ContentError {
	return &ContentError{Kind: ParseError, URL: url, Err: err}
}

// ToDetail converts the error to an API-facing ErrorDetail.
func (e *ContentError) ToDetail() *ErrorDetail {
	code := ErrCodeInternal
	switch e.Kind {
	case FetchError:
		code = ErrCodeFetch
	case ParseError:
		code = ErrCodeParse
	}
	return &ErrorDetail{Code: code, Message: e.Error()}
}

// IsFetchError reports whether err is, or wraps, a fetch ContentError.
func IsFetchError(err error) bool {
	var ce *ContentError
	return errors.As(err, &ce) && ce.Kind == FetchError
}

// IsParseError reports whether err is, or wraps, a parse ContentError.
func IsParseError(err error) bool {
	var ce *ContentError
	return errors.As(err, &ce) && ce.Kind == ParseError
}
