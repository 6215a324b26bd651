package telegram

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrMissingToken is returned before any I/O when no bot token is set.
	ErrMissingToken = errors.New("telegram: bot token not provided, you must provide your telegram bot token to make any API requests")

	// ErrFileNeedsMultipart is returned when an InputFile is put in a form-encoded body.
	ErrFileNeedsMultipart = errors.New("telegram: file uploads require a multipart body")
)

// APIError means Telegram rejected the request, either with an HTTP error
// status or with "ok": false in the response envelope.
type APIError struct {
	Endpoint   string
	StatusCode int
	// ErrorCode and Description come from the JSON envelope when present.
	ErrorCode   int
	Description string
	Body        []byte
	// Response is the original response. Its body has already been read
	// and is replaced with a reader over Body.
	Response *http.Response
}

func (e *APIError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("telegram: %s responded with an error %d: %s", e.Endpoint, e.StatusCode, e.Description)
	}
	return fmt.Sprintf("telegram: %s responded with an error %d", e.Endpoint, e.StatusCode)
}

// TransportError means the request could not be encoded or did not reach Telegram.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("telegram: could not communicate with Telegram on %s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
