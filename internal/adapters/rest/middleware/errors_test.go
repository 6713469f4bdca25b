package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteJSONError(t *testing.T) {
	tests := []struct {
		name           string
		code           string
		message        string
		status         int
		expectedStatus int
		expectedBody   map[string]string
	}{
		{
			name:           "writes unauthorized error",
			code:           ErrorCodeUnauthorized,
			message:        "Authentication required",
			status:         http.StatusUnauthorized,
			expectedStatus: http.StatusUnauthorized,
			expectedBody: map[string]string{
				"error":   "unauthorized",
				"message": "Authentication required",
			},
		},
		{
			name:           "writes token expired error",
			code:           ErrorCodeTokenExpired,
			message:        "token has expired",
			status:         http.StatusUnauthorized,
			expectedStatus: http.StatusUnauthorized,
			expectedBody: map[string]string{
				"error":   "token_expired",
				"message": "token has expired",
			},
		},
		{
			name:           "writes invalid token error",
			code:           ErrorCodeInvalidToken,
			message:        "Token is invalid",
			status:         http.StatusUnauthorized,
			expectedStatus: http.StatusUnauthorized,
			expectedBody: map[string]string{
				"error":   "invalid_token",
				"message": "Token is invalid",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create a test response writer
			w := httptest.NewRecorder()

			// Call the function
			WriteJSONError(w, tt.code, tt.message, tt.status)

			// Check status code
			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			// Check Content-Type header
			contentType := w.Header().Get("Content-Type")
			if contentType != "application/json" {
				t.Errorf("expected Content-Type application/json, got %s", contentType)
			}

			// Check response body
			var response map[string]interface{}
			if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}

			for key, expectedValue := range tt.expectedBody {
				if actualValue, ok := response[key]; !ok {
					t.Errorf("expected key %q not found in response", key)
				} else if actualValue != expectedValue {
					t.Errorf("for key %q: expected %q, got %q", key, expectedValue, actualValue)
				}
			}
		})
	}
}
