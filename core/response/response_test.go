package response_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/dmitrymomot/ouch/core/response"
)

type customStatusError struct {
	status int
}

func (e customStatusError) Error() string   { return "custom" }
func (e customStatusError) StatusCode() int { return e.status }

func TestNewHTTPError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status  int
		want    int
		code    string
		message string
	}{
		{http.StatusNotFound, http.StatusNotFound, "not_found", "Not Found"},
		{http.StatusTeapot, http.StatusTeapot, "im_a_teapot", "I'm a teapot"},
		{http.StatusRequestURITooLong, http.StatusRequestURITooLong, "request_uri_too_long", "Request URI Too Long"},
		{http.StatusOK, http.StatusInternalServerError, "internal_server_error", "Internal Server Error"},
		{599, http.StatusInternalServerError, "internal_server_error", "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			t.Parallel()
			e := response.NewHTTPError(tt.status)
			assert.Equal(t, tt.want, e.StatusCode())
			assert.Equal(t, tt.code, e.Code)
			assert.Equal(t, tt.message, e.Error())
		})
	}

	custom := response.ErrNotFound.WithMessage("user not found").WithDetails(map[string]any{"id": 1})
	assert.Equal(t, "user not found", custom.Error())
	assert.Equal(t, "Not Found", response.ErrNotFound.Error())
	assert.Equal(t, 1, custom.Details["id"])
}

func TestFromError(t *testing.T) {
	t.Parallel()

	t.Run("http error passes through wrapping", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("lookup: %w", response.ErrNotFound.WithMessage("gone"))
		got := response.FromError(err)
		assert.Equal(t, http.StatusNotFound, got.Status)
		assert.Equal(t, "gone", got.Message)
	})

	t.Run("status code interface", func(t *testing.T) {
		t.Parallel()
		got := response.FromError(fmt.Errorf("x: %w", customStatusError{status: http.StatusConflict}))
		assert.Equal(t, http.StatusConflict, got.Status)
		assert.Equal(t, "Conflict", got.Message)
	})

	t.Run("plain error is a 500 without its message", func(t *testing.T) {
		t.Parallel()
		got := response.FromError(errors.New("db password is hunter2"))
		assert.Equal(t, http.StatusInternalServerError, got.Status)
		assert.Equal(t, "Internal Server Error", got.Message)
	})
}

func TestWriter(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	w := response.NewWriter(rec)
	assert.Same(t, w, response.NewWriter(w))
	assert.False(t, w.Written())
	assert.False(t, response.HeadersSent(w))
	assert.False(t, response.HeadersSent(rec))

	w.WriteHeader(http.StatusNotFound)
	w.WriteHeader(http.StatusOK)
	_, err := w.Write([]byte("body"))
	require.NoError(t, err)
	w.Flush()

	assert.True(t, w.Written())
	assert.True(t, response.HeadersSent(w))
	assert.Equal(t, http.StatusNotFound, w.Status())
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "body", rec.Body.String())
	assert.True(t, rec.Flushed)
	assert.Same(t, rec, w.Unwrap())

	implicit := response.NewWriter(httptest.NewRecorder())
	_, _ = implicit.Write([]byte("x"))
	assert.Equal(t, http.StatusOK, implicit.Status())
}

func TestResponses(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		require.NoError(t, response.Render(rec, req, response.JSONWithStatus(map[string]string{"a": "b"}, http.StatusTeapot)))
		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, "b", gjson.Get(rec.Body.String(), "a").String())

		rec = httptest.NewRecorder()
		require.NoError(t, response.Render(rec, req, response.JSONWithStatus(nil, 0)))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("raw json", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		require.NoError(t, response.Render(rec, req, response.RawJSONWithStatus([]byte(`{"x":1}`), http.StatusBadRequest)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"x":1}`, rec.Body.String())
	})

	t.Run("text and html", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		require.NoError(t, response.Render(rec, req, response.StringWithStatus("oops", 0)))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))

		rec = httptest.NewRecorder()
		require.NoError(t, response.Render(rec, req, response.HTMLWithStatus("<p>x</p>", http.StatusBadGateway)))
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Equal(t, "<p>x</p>", rec.Body.String())
	})

	t.Run("does not rewrite a sent header", func(t *testing.T) {
		t.Parallel()
		w := response.NewWriter(httptest.NewRecorder())
		w.WriteHeader(http.StatusAccepted)
		require.NoError(t, response.Render(w, req, response.StringWithStatus("late", http.StatusInternalServerError)))
		assert.Equal(t, http.StatusAccepted, w.Status())
	})

	t.Run("templ", func(t *testing.T) {
		t.Parallel()
		component := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			_, err := io.WriteString(w, "<main>templ</main>")
			return err
		})
		rec := httptest.NewRecorder()
		require.NoError(t, response.Render(rec, req, response.TemplWithStatus(component, http.StatusServiceUnavailable)))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "<main>templ</main>", rec.Body.String())

		failing := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			return errors.New("render failed")
		})
		err := response.Render(httptest.NewRecorder(), req, response.TemplWithStatus(failing, 0))
		assert.ErrorContains(t, err, "templ component render error")

		rec = httptest.NewRecorder()
		require.NoError(t, response.Render(rec, nil, response.TemplWithStatus(templ.Raw("<p>no request</p>"), http.StatusNotFound)))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "<p>no request</p>", rec.Body.String())

		assert.Nil(t, response.TemplWithStatus(nil, 0))
		assert.NoError(t, response.Render(httptest.NewRecorder(), req, nil))
	})
}
