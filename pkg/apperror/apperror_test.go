package apperror

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreErrorKeepsCause(t *testing.T) {
	err := NewStore("failed to query skills", sql.ErrConnDone)

	assert.ErrorIs(t, err, ErrStore)
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.NotErrorIs(t, err, ErrSeed)
	assert.Contains(t, err.Error(), "failed to query skills")
}

func TestToHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", NewInvalidInput("bad body", nil), http.StatusBadRequest},
		{"wrapped invalid input", fmt.Errorf("handler: %w", NewInvalidInput("bad body", nil)), http.StatusBadRequest},
		{"store", NewStore("insert failed", errors.New("disk full")), http.StatusInternalServerError},
		{"seed", NewSeed("missing", nil), http.StatusInternalServerError},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToHTTPStatus(tt.err))
		})
	}
}

func TestToJSON(t *testing.T) {
	body := NewStore("x", nil).ToJSON()
	assert.Equal(t, "store error", body["error"])
	assert.Equal(t, "A storage error occurred", body["message"])
}
