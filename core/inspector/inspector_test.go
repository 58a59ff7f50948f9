package inspector_test

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ouch/core/inspector"
)

type statusError struct {
	status int
}

func (e statusError) Error() string   { return "status error" }
func (e statusError) StatusCode() int { return e.status }

type codedError struct {
	code int
}

func (e *codedError) Error() string { return "coded error" }
func (e *codedError) HTTPCode() int { return e.code }

// dualError carries both status methods, with StatusCode unset.
type dualError struct {
	status int
	code   int
}

func (e dualError) Error() string   { return "dual error" }
func (e dualError) StatusCode() int { return e.status }
func (e dualError) HTTPCode() int   { return e.code }

type namedError struct {
	name string
}

func (e namedError) Error() string { return "named" }
func (e namedError) Name() string  { return e.name }

// here returns the file and line of its call site.
func here() (string, int) {
	_, file, line, _ := runtime.Caller(1)
	return file, line
}

func TestInspectorCode(t *testing.T) {
	t.Parallel()

	t.Run("returns 500 when status is not set", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, http.StatusInternalServerError, inspector.NewInspector(inspector.New("foo")).Code())
		assert.Equal(t, http.StatusInternalServerError, inspector.NewInspector(errors.New("foo")).Code())
		assert.Equal(t, http.StatusInternalServerError, inspector.NewInspector(nil).Code())
	})

	t.Run("returns 500 when status is below 400", func(t *testing.T) {
		t.Parallel()
		for _, status := range []int{-1, 100, 200, 302, 399} {
			err := inspector.New("foo").WithStatus(status)
			assert.Equal(t, http.StatusInternalServerError, inspector.NewInspector(err).Code(), "status %d", status)
		}
	})

	t.Run("returns status when it is at least 400", func(t *testing.T) {
		t.Parallel()
		for _, status := range []int{400, 404, 450, 503} {
			err := inspector.New("foo").WithStatus(status)
			assert.Equal(t, status, inspector.NewInspector(err).Code())
		}
	})

	t.Run("reads StatusCode and HTTPCode through the wrap chain", func(t *testing.T) {
		t.Parallel()

		wrapped := fmt.Errorf("handler: %w", statusError{status: http.StatusNotFound})
		assert.Equal(t, http.StatusNotFound, inspector.NewInspector(wrapped).Code())

		coded := inspector.Wrap(&codedError{code: http.StatusConflict})
		assert.Equal(t, http.StatusConflict, inspector.NewInspector(coded).Code())

		joined := errors.Join(errors.New("plain"), statusError{status: http.StatusTeapot})
		assert.Equal(t, http.StatusTeapot, inspector.NewInspector(joined).Code())
	})

	t.Run("falls back to HTTPCode when StatusCode is zero", func(t *testing.T) {
		t.Parallel()

		err := dualError{code: http.StatusConflict}
		assert.Equal(t, http.StatusConflict, inspector.NewInspector(err).Code())

		err = dualError{status: http.StatusNotFound, code: http.StatusConflict}
		assert.Equal(t, http.StatusNotFound, inspector.NewInspector(err).Code())
	})

	t.Run("outermost status wins", func(t *testing.T) {
		t.Parallel()

		inner := inspector.New("inner").WithStatus(http.StatusNotFound)
		outer := inspector.Wrap(inner).WithStatus(http.StatusForbidden)
		assert.Equal(t, http.StatusForbidden, inspector.NewInspector(outer).Code())
	})

	t.Run("explicit code overrides derivation", func(t *testing.T) {
		t.Parallel()

		err := inspector.New("foo").WithStatus(http.StatusNotFound)
		insp := inspector.NewInspector(err, inspector.WithCode(http.StatusBadGateway))
		assert.Equal(t, http.StatusBadGateway, insp.Code())

		insp.SetCode(http.StatusTeapot)
		assert.Equal(t, http.StatusTeapot, insp.Code())

		insp.SetCode(0)
		assert.Equal(t, http.StatusNotFound, insp.Code())
	})
}

func TestInspectorFrames(t *testing.T) {
	t.Parallel()

	t.Run("first frame is the creation site", func(t *testing.T) {
		t.Parallel()

		file, line := here()
		err := inspector.New("boom")
		frames := inspector.NewInspector(err).Frames()
		require.NotEmpty(t, frames)

		assert.Equal(t, file, frames[0].File())
		assert.Equal(t, line+1, frames[0].Line())
		assert.Contains(t, frames[0].Function(), "TestInspectorFrames")
	})

	t.Run("parses once and returns the cached slice", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		parser := inspector.StackParserFunc(func(err error) []*inspector.Frame {
			calls.Add(1)
			return []*inspector.Frame{inspector.NewFrame("a.go", 1, "pkg.A")}
		})
		insp := inspector.NewInspector(errors.New("foo"), inspector.WithStackParser(parser))

		first := insp.Frames()
		second := insp.Frames()

		assert.Equal(t, int32(1), calls.Load())
		require.Len(t, second, 1)
		assert.Same(t, first[0], second[0])
		assert.Equal(t, fmt.Sprintf("%p", first), fmt.Sprintf("%p", second))
	})

	t.Run("parses once under concurrent access", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		parser := inspector.StackParserFunc(func(err error) []*inspector.Frame {
			calls.Add(1)
			return nil
		})
		insp := inspector.NewInspector(errors.New("foo"), inspector.WithStackParser(parser))

		var wg sync.WaitGroup
		for range 16 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NotNil(t, insp.Frames())
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), calls.Load())
		assert.False(t, insp.HasFrames())
		assert.Nil(t, insp.OriginFrame())
	})

	t.Run("errors without a stack have no frames", func(t *testing.T) {
		t.Parallel()

		insp := inspector.NewInspector(errors.New("plain"))
		assert.Empty(t, insp.Frames())
		assert.False(t, insp.HasFrames())
	})

	t.Run("origin frame skips runtime frames", func(t *testing.T) {
		t.Parallel()

		parser := inspector.StackParserFunc(func(err error) []*inspector.Frame {
			return []*inspector.Frame{
				inspector.NewFrame("/go/src/runtime/debug/stack.go", 26, "runtime/debug.Stack"),
				inspector.NewFrame("/app/main.go", 12, "main.handler"),
			}
		})
		insp := inspector.NewInspector(errors.New("foo"), inspector.WithStackParser(parser))

		origin := insp.OriginFrame()
		require.NotNil(t, origin)
		assert.Equal(t, "main.handler", origin.Function())
	})
}

func TestInspectorException(t *testing.T) {
	t.Parallel()

	t.Run("returns the wrapped error", func(t *testing.T) {
		t.Parallel()

		err := inspector.New("sample exception message foo")
		insp := inspector.NewInspector(err)
		assert.Same(t, err, insp.Exception())
	})

	t.Run("name falls back to Error thrown", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Error", inspector.NewInspector(inspector.New("foo")).ExceptionName())
		assert.Equal(t, "My Custom Error Name",
			inspector.NewInspector(inspector.New("foo").WithName("My Custom Error Name")).ExceptionName())
		assert.Equal(t, inspector.FallbackExceptionName,
			inspector.NewInspector(inspector.New("foo").WithName("")).ExceptionName())
		assert.Equal(t, inspector.FallbackExceptionName, inspector.NewInspector(errors.New("foo")).ExceptionName())
		assert.Equal(t, inspector.FallbackExceptionName, inspector.NewInspector(nil).ExceptionName())
	})

	t.Run("name is found through the wrap chain", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("context: %w", namedError{name: "ValidationError"})
		assert.Equal(t, "ValidationError", inspector.NewInspector(err).ExceptionName())
	})

	t.Run("message is empty when absent", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "sample exception message foo",
			inspector.NewInspector(inspector.New("sample exception message foo")).ExceptionMessage())
		assert.Equal(t, "", inspector.NewInspector(inspector.New("")).ExceptionMessage())
		assert.Equal(t, "", inspector.NewInspector(nil).ExceptionMessage())
	})
}

func TestInspectorID(t *testing.T) {
	t.Parallel()

	a := inspector.NewInspector(errors.New("a"))
	b := inspector.NewInspector(errors.New("b"))
	assert.Len(t, a.ID(), 36)
	assert.NotEqual(t, a.ID(), b.ID())

	c := inspector.NewInspector(errors.New("c"), inspector.WithID("incident-1"))
	assert.Equal(t, "incident-1", c.ID())
}
