package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "github.com/techpro/techpromanager/domain/error"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, http.StatusCreated, "created", map[string]string{"id": "1"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	env := decode(t, rec)
	assert.True(t, env.Status)
	assert.Equal(t, "created", env.Message)
	assert.Empty(t, env.Code)
}

func TestAppError(t *testing.T) {
	t.Run("CatalogueError", func(t *testing.T) {
		rec := httptest.NewRecorder()
		AppError(rec, apperr.ErrDuplicateEmail("a@x.com"))

		assert.Equal(t, http.StatusConflict, rec.Code)
		env := decode(t, rec)
		assert.False(t, env.Status)
		assert.Equal(t, apperr.ErrCodeDuplicateEmail, env.Code)
		assert.NotContains(t, rec.Body.String(), "a@x.com")
	})

	t.Run("UnknownErrorIsGeneric", func(t *testing.T) {
		rec := httptest.NewRecorder()
		AppError(rec, errors.New("pq: connection refused to 10.0.0.5"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "10.0.0.5")
		assert.Equal(t, apperr.ErrCodeInternalServerError, decode(t, rec).Code)
	})
}

func TestNoContent(t *testing.T) {
	rec := httptest.NewRecorder()
	NoContent(rec)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, rec.Body.Len())
}
