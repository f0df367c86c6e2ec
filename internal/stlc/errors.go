package stlc

import (
	"errors"
	"fmt"
)

// DefaultFailureReason is shown when the service rejects a submission without
// a usable detail message.
const DefaultFailureReason = "STLC process failed"

var (
	// ErrFileKindRejected is returned when a file is not plain text.
	ErrFileKindRejected = errors.New("file kind rejected")
	// ErrFileReadFailed is returned when a plain text file could not be read.
	ErrFileReadFailed = errors.New("file read failed")
)

// Messages shown to the user for file ingestion failures.
const (
	FileKindRejectedMessage = "Only plain text (.txt) files are supported."
	FileReadFailedMessage   = "Could not read the selected file."
)

// ServiceRejectedError is returned when the generation service answers with a
// non-success status.
type ServiceRejectedError struct {
	StatusCode int
	Reason     string
}

func (e *ServiceRejectedError) Error() string {
	return e.Reason
}

// TransportError is returned when no response was received at all.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// MalformedResponseError is returned when a success response carries a body
// that is not JSON.
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("invalid response from STLC service: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// ReasonOf converts an error from the submission or ingestion path into the
// text shown to the user.
func ReasonOf(err error) string {
	if err == nil {
		return ""
	}

	var rejected *ServiceRejectedError
	if errors.As(err, &rejected) {
		return rejected.Reason
	}
	var transport *TransportError
	if errors.As(err, &transport) {
		return transport.Error()
	}

	switch {
	case errors.Is(err, ErrFileKindRejected):
		return FileKindRejectedMessage
	case errors.Is(err, ErrFileReadFailed):
		return FileReadFailedMessage
	}
	return err.Error()
}
