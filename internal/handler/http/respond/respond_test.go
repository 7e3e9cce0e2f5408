package respond_test

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devflow/internal/domain/entity"
	"devflow/internal/handler/http/respond"
)

func TestSafeError_ValidationErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	respond.SafeError(rec, 400, entity.ValidationErrors{
		{Field: "title", Message: "is required"},
		{Field: "body", Message: "is required"},
	})

	assert.Equal(t, 400, rec.Code)
	var body struct {
		Errors []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Errors, 2)
	assert.Equal(t, "title", body.Errors[0].Field)
}

func TestSafeError_InternalHidden(t *testing.T) {
	rec := httptest.NewRecorder()
	respond.SafeError(rec, 500, errors.New("pq: connection refused at 10.0.0.3:5432"))

	assert.NotContains(t, rec.Body.String(), "10.0.0.3", "internal detail leaked")
	assert.Contains(t, rec.Body.String(), "internal server error")
}

func TestSafeError_SafeMessagePassesThrough(t *testing.T) {
	rec := httptest.NewRecorder()
	respond.SafeError(rec, 404, errors.New("article not found"))

	assert.Contains(t, rec.Body.String(), "article not found")
}

func TestSanitizeError(t *testing.T) {
	tests := []struct {
		in       string
		mustMiss string
	}{
		{"dial postgres://app:hunter2@db:5432/devflow", "hunter2"},
		{"auth failed for Bearer abc.def.ghi", "abc.def.ghi"},
		{"bad token eyJhbGciOi.eyJzdWIi.sig123", "eyJzdWIi"},
	}
	for _, tt := range tests {
		got := respond.SanitizeError(errors.New(tt.in))
		assert.NotContains(t, got, tt.mustMiss, "SanitizeError(%q)", tt.in)
	}
}
