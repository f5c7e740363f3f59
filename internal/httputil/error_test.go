package httputil

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorResponses(t *testing.T) {
	tests := []struct {
		name   string
		write  func(w http.ResponseWriter)
		status int
		body   string
	}{
		{"bad request", func(w http.ResponseWriter) { BadRequest(w, "Invalid event ID", nil) }, http.StatusBadRequest, `{"error":"Invalid event ID"}`},
		{"not found", func(w http.ResponseWriter) { NotFound(w, "Event not found", errors.New("no rows")) }, http.StatusNotFound, `{"error":"Event not found"}`},
		{"conflict", func(w http.ResponseWriter) { Conflict(w, "No verified results", nil) }, http.StatusConflict, `{"error":"No verified results"}`},
		{"internal", func(w http.ResponseWriter) { InternalServerError(w, "boom", errors.New("disk full")) }, http.StatusInternalServerError, `{"error":"Internal Server Error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.write(rec)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}
