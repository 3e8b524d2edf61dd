package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOfAndMessageOf(t *testing.T) {
	err := New(CodeUserNotFound, "user not found")
	assert.Equal(t, CodeUserNotFound, CodeOf(err))
	assert.Equal(t, "user not found", MessageOf(err))

	wrapped := fmt.Errorf("handler: %w", err)
	assert.Equal(t, CodeUserNotFound, CodeOf(wrapped))
	assert.Equal(t, "user not found", MessageOf(wrapped))

	plain := errors.New("pq: connection refused")
	assert.Equal(t, CodeInternal, CodeOf(plain))
	assert.Equal(t, "internal server error", MessageOf(plain))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("version conflict")
	err := Wrap(CodeConcurrencyConflict, "concurrent balance update, please retry", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "CONCURRENCY_CONFLICT")
	assert.Contains(t, err.Error(), "version conflict")
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeInvalidInput:        http.StatusBadRequest,
		CodeInsufficientBalance: http.StatusBadRequest,
		CodeUserNotFound:        http.StatusNotFound,
		CodeMenuNotFound:        http.StatusNotFound,
		CodeOrderNotFound:       http.StatusNotFound,
		CodeConcurrencyConflict: http.StatusConflict,
		CodeDuplicateUser:       http.StatusConflict,
		CodeUnauthorized:        http.StatusUnauthorized,
		CodeInternal:            http.StatusInternalServerError,
		Code("SOMETHING_NEW"):   http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, HTTPStatus(code), string(code))
	}
}
