package logdash

import (
	"errors"
	"fmt"
)

const (
	MsgPageOutOfRange      = "page is out of range"
	MsgNavigationDisabled  = "navigation is disabled"
	MsgUnknownLevel        = "unknown log level"
	MsgUnknownTopic        = "unknown topic"
	MsgUnknownNavigation   = "unknown navigation direction"
	MsgUnknownDimension    = "unknown filter dimension"
	MsgNoDraftOpen         = "no log draft is open"
	MsgSubmissionPending   = "a log submission is still in progress"
	MsgInvalidMetadata     = "metadata is not a valid JSON object"
	MsgLogStoreURLMissing  = "basepath for the log store must be set. check your configuration for LOG_STORE_URL"
	MsgLogStoreUnreachable = "log store request failed"
	MsgLogStoreStatus      = "log store answered with an error status"
	MsgUnmarshalResponse   = "unmarshal log store response failed"
	MsgMissingCountField   = "log store response has no count"
	MsgNegativeCount       = "log store response has a negative count"
	MsgMissingLogsField    = "log store response has no logs"
	MsgMissingSourceField  = "log store hit has no _source"
)

var (
	ErrPageOutOfRange       = errors.New(MsgPageOutOfRange)
	ErrNavigationDisabled   = errors.New(MsgNavigationDisabled)
	ErrUnknownLevel         = errors.New(MsgUnknownLevel)
	ErrUnknownTopic         = errors.New(MsgUnknownTopic)
	ErrUnknownNavigation    = errors.New(MsgUnknownNavigation)
	ErrUnknownDimension     = errors.New(MsgUnknownDimension)
	ErrNoDraftOpen          = errors.New(MsgNoDraftOpen)
	ErrSubmissionInProgress = errors.New(MsgSubmissionPending)
	ErrInvalidMetadata      = errors.New(MsgInvalidMetadata)
	ErrLogStoreURLMissing   = errors.New(MsgLogStoreURLMissing)
)

type ErrorKind string // @Name ErrorKind

const (
	KindTransport  ErrorKind = "transport"
	KindDecode     ErrorKind = "decode"
	KindValidation ErrorKind = "validation"
	KindUnknown    ErrorKind = "unknown"
)

// TransportError is a failed request: the store was unreachable or answered with a non-2xx status.
// StatusCode is 0 when no response was received.
type TransportError struct {
	Operation  Operation
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (status %d): %v", e.Operation, MsgLogStoreStatus, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Operation, MsgLogStoreUnreachable, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError is a response that arrived but was not in the expected shape.
type DecodeError struct {
	Operation Operation
	Err       error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %v", e.Operation, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ValidationError is raised for draft input before any request is made.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func KindOf(err error) ErrorKind {
	var transportErr *TransportError
	var decodeErr *DecodeError
	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		return KindValidation
	case errors.As(err, &decodeErr):
		return KindDecode
	case errors.As(err, &transportErr):
		return KindTransport
	default:
		return KindUnknown
	}
}
