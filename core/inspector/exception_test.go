package inspector_test

import (
	"database/sql"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ouch/core/inspector"
)

func TestException(t *testing.T) {
	t.Parallel()

	t.Run("new captures message and stack", func(t *testing.T) {
		t.Parallel()

		err := inspector.New("payment declined")
		assert.Equal(t, "payment declined", err.Error())
		assert.Equal(t, inspector.DefaultExceptionName, err.Name())
		assert.Zero(t, err.StatusCode())
		assert.NotEmpty(t, err.Callers())
		assert.Nil(t, err.Stack())
		assert.Nil(t, err.Unwrap())
	})

	t.Run("errorf keeps the wrapped error reachable", func(t *testing.T) {
		t.Parallel()

		err := inspector.Errorf("load user %d: %w", 42, sql.ErrNoRows)
		assert.Equal(t, "load user 42: sql: no rows in result set", err.Error())
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.NotEmpty(t, err.Callers())

		plain := inspector.Errorf("no wrapping %d", 1)
		assert.Nil(t, plain.Unwrap())
	})

	t.Run("wrap keeps the cause", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("disk full")
		err := inspector.Wrap(cause)
		require.NotNil(t, err)
		assert.Equal(t, "disk full", err.Error())
		assert.ErrorIs(t, err, cause)

		assert.Nil(t, inspector.Wrap(nil))
	})

	t.Run("with methods return copies", func(t *testing.T) {
		t.Parallel()

		base := inspector.New("not found")
		withStatus := base.WithStatus(http.StatusNotFound)
		withName := withStatus.WithName("NotFoundError")

		assert.Zero(t, base.StatusCode())
		assert.Equal(t, inspector.DefaultExceptionName, base.Name())
		assert.Equal(t, http.StatusNotFound, withStatus.StatusCode())
		assert.Equal(t, inspector.DefaultExceptionName, withStatus.Name())
		assert.Equal(t, "NotFoundError", withName.Name())
		assert.Equal(t, http.StatusNotFound, withName.StatusCode())
		assert.Equal(t, base.Callers(), withName.Callers())
	})

	t.Run("from panic converts the recovered value", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("nil map write")
		tests := []struct {
			name    string
			value   any
			message string
			cause   error
		}{
			{"error", cause, "nil map write", cause},
			{"string", "boom", "boom", nil},
			{"other", 42, "42", nil},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				dump := []byte("goroutine 1 [running]:\nmain.main()\n\t/app/main.go:8 +0x1d\n")
				exc := inspector.FromPanic(tt.value, dump)
				assert.Equal(t, inspector.PanicExceptionName, exc.Name())
				assert.Equal(t, tt.message, exc.Error())
				assert.Equal(t, tt.cause, exc.Unwrap())
				assert.Equal(t, dump, exc.Stack())
				assert.Empty(t, exc.Callers())
			})
		}
	})

	t.Run("from panic without a dump captures callers", func(t *testing.T) {
		t.Parallel()

		exc := inspector.FromPanic("boom", nil)
		assert.NotEmpty(t, exc.Callers())

		frames := inspector.NewInspector(exc).Frames()
		require.NotEmpty(t, frames)
		assert.Contains(t, frames[0].Function(), "TestException")
	})
}
