package meilierr

import (
	"fmt"
	"net/http"
	"testing"
)

func TestFromResponse(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		fallback    string
		wantCode    string
		wantMessage string
		wantLink    string
	}{
		{
			name:        "standard error payload",
			status:      http.StatusNotFound,
			body:        `{"message":"Index movies not found.","code":"index_not_found","link":"https://docs.example.com/errors#index_not_found"}`,
			fallback:    "404 Not Found",
			wantCode:    "index_not_found",
			wantMessage: "Index movies not found.",
			wantLink:    "https://docs.example.com/errors#index_not_found",
		},
		{
			name:        "empty body falls back to status text",
			status:      http.StatusBadGateway,
			body:        "",
			fallback:    "502 Bad Gateway",
			wantMessage: "502 Bad Gateway",
		},
		{
			name:        "non-JSON body falls back to status text",
			status:      http.StatusInternalServerError,
			body:        "<html>oops</html>",
			fallback:    "500 Internal Server Error",
			wantMessage: "500 Internal Server Error",
		},
		{
			name:        "payload without message keeps fallback",
			status:      http.StatusForbidden,
			body:        `{"code":"invalid_api_key"}`,
			fallback:    "403 Forbidden",
			wantCode:    "invalid_api_key",
			wantMessage: "403 Forbidden",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := FromResponse(tt.status, []byte(tt.body), tt.fallback)
			if apiErr.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, tt.status)
			}
			if apiErr.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", apiErr.Code, tt.wantCode)
			}
			if apiErr.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", apiErr.Message, tt.wantMessage)
			}
			if apiErr.Link != tt.wantLink {
				t.Errorf("Link = %q, want %q", apiErr.Link, tt.wantLink)
			}
		})
	}
}

func TestPredicates(t *testing.T) {
	notFound := FromResponse(404, []byte(`{"code":"index_not_found"}`), "404 Not Found")
	forbidden := FromResponse(403, []byte(`{"code":"invalid_api_key"}`), "403 Forbidden")
	timeout := &TimeoutError{Message: "deadline exceeded"}
	comm := &CommunicationError{Message: "connection refused"}

	if !IsCode(notFound, CodeIndexNotFound) {
		t.Error("IsCode(index_not_found) = false, want true")
	}
	if IsCode(forbidden, CodeIndexNotFound) {
		t.Error("IsCode on invalid_api_key = true, want false")
	}
	if !IsNotFound(notFound) {
		t.Error("IsNotFound on 404 = false, want true")
	}
	if IsNotFound(forbidden) {
		t.Error("IsNotFound on 403 = true, want false")
	}
	if !IsTimeout(timeout) || IsTimeout(comm) {
		t.Error("IsTimeout misclassified")
	}
	if !IsCommunication(comm) || IsCommunication(timeout) {
		t.Error("IsCommunication misclassified")
	}

	// Predicates must see through wrapping.
	wrapped := fmt.Errorf("get index: %w", notFound)
	if !IsCode(wrapped, CodeIndexNotFound) {
		t.Error("IsCode through wrapping = false, want true")
	}
}

func TestErrorStrings(t *testing.T) {
	apiErr := &APIError{StatusCode: 404, Code: "index_not_found", Message: "not found"}
	if got := apiErr.Error(); got != "meiligo: api error 404 (index_not_found): not found" {
		t.Errorf("unexpected error string: %q", got)
	}
	bare := &APIError{StatusCode: 500, Message: "500 Internal Server Error"}
	if got := bare.Error(); got != "meiligo: api error 500: 500 Internal Server Error" {
		t.Errorf("unexpected error string: %q", got)
	}
}
