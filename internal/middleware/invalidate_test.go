package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAfterWrite(t *testing.T) {
	tests := []struct {
		name   string
		method string
		status int
		want   bool
	}{
		{"successful post", http.MethodPost, http.StatusCreated, true},
		{"successful delete", http.MethodDelete, http.StatusOK, true},
		{"unconfirmed delete", http.MethodDelete, http.StatusConflict, false},
		{"validation error", http.MethodPut, http.StatusBadRequest, false},
		{"read", http.MethodGet, http.StatusOK, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fired bool
			handler := AfterWrite(func(context.Context) { fired = true })(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(tt.status)
				}))

			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(tt.method, "/api/projects", nil))

			if fired != tt.want {
				t.Errorf("fired = %v, want %v", fired, tt.want)
			}
		})
	}
}
