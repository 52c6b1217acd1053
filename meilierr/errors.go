// Package meilierr defines the error taxonomy for the meiligo client.
//
// Every failure surfaces as one of three kinds: CommunicationError when
// the service could not be reached, TimeoutError when a request or a
// task wait exceeded its deadline, and APIError when the service
// answered with a non-2xx status. Callers branch on the server error
// code carried by APIError instead of matching message strings.
package meilierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Server error codes that calling code branches on.
const (
	CodeIndexNotFound      = "index_not_found"
	CodeIndexAlreadyExists = "index_already_exists"
	CodeDocumentNotFound   = "document_not_found"
)

// CommunicationError reports a connection that could not be established
// or was dropped mid-request.
type CommunicationError struct {
	Message string
}

func (e *CommunicationError) Error() string {
	return fmt.Sprintf("meiligo: communication error: %s", e.Message)
}

// TimeoutError reports a request or task wait that exceeded its
// configured deadline.
type TimeoutError struct {
	Message string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("meiligo: timeout: %s", e.Message)
}

// APIError is a non-2xx response from the search service. Code, Message
// and Link come from the response body when it carries the standard
// error payload; otherwise Message falls back to the HTTP status text.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Link       string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("meiligo: api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("meiligo: api error %d: %s", e.StatusCode, e.Message)
}

// FromResponse builds an APIError from a failed response. fallback is
// used as the message when the body is empty or not the standard error
// payload.
func FromResponse(statusCode int, body []byte, fallback string) *APIError {
	apiErr := &APIError{StatusCode: statusCode, Message: fallback}
	if len(body) == 0 {
		return apiErr
	}
	var payload struct {
		Message string `json:"message"`
		Code    string `json:"code"`
		Link    string `json:"link"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return apiErr
	}
	if payload.Message != "" {
		apiErr.Message = payload.Message
	}
	apiErr.Code = payload.Code
	apiErr.Link = payload.Link
	return apiErr
}

// IsCode reports whether err is an APIError carrying the given server
// error code.
func IsCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// IsNotFound reports whether err is an APIError with a 404 status.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsTimeout reports whether err is a TimeoutError.
func IsTimeout(err error) bool {
	var timeoutErr *TimeoutError
	return errors.As(err, &timeoutErr)
}

// IsCommunication reports whether err is a CommunicationError.
func IsCommunication(err error) bool {
	var commErr *CommunicationError
	return errors.As(err, &commErr)
}
