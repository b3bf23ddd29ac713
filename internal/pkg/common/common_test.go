package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		details string
	}{
		{"validation", NewValidationError("limit must be positive"), http.StatusBadRequest, ErrCodeInvalidRequest, ""},
		{"predefined", ErrRecipeNotFound, http.StatusNotFound, ErrCodeRecipeNotFound, ""},
		{"wrapped", fmt.Errorf("load: %w", ErrDataSourceUnavailable.WithErr(errors.New("timeout"))), http.StatusServiceUnavailable, ErrCodeSourceDown, "timeout"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, ErrCodeInternalError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := StatusOf(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, resp.Code)
			assert.Equal(t, tt.details, resp.Details)
		})
	}
}

func TestCustomErrorWithErr(t *testing.T) {
	cause := errors.New("missing: vinaigre")
	err := ErrCannotCook.WithErr(cause)

	assert.True(t, errors.Is(err, ErrCannotCook))
	assert.False(t, errors.Is(err, ErrRecipeNotFound))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "recipe cannot be cooked with current stock: missing: vinaigre", err.Error())
	assert.Nil(t, ErrCannotCook.Err)
}

func TestIsValidationError(t *testing.T) {
	assert.True(t, IsValidationError(fmt.Errorf("wrap: %w", NewValidationError("bad"))))
	assert.False(t, IsValidationError(ErrInvalidRequest))
}

func TestParseJSONBytes(t *testing.T) {
	var v struct {
		Limit int `json:"limit"`
	}
	require.NoError(t, ParseJSONBytes([]byte(`{"limit":3}`), &v))
	assert.Equal(t, 3, v.Limit)

	assert.Error(t, ParseJSONBytes([]byte(`{"limit":3} {"limit":4}`), &v))
	assert.Error(t, ParseJSONBytes([]byte(`{"limit":`), &v))
}

func TestToJSON(t *testing.T) {
	s, err := ToJSON(map[string]int{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, s)
}

func TestHashAndUUID(t *testing.T) {
	assert.Equal(t, HashString("pantry"), HashString("pantry"))
	assert.NotEqual(t, HashString("pantry"), HashString("pantry2"))
	assert.Len(t, HashString(""), 64)

	assert.True(t, IsUUID(GenerateUUID()))
	assert.False(t, IsUUID("not-a-uuid"))
}
