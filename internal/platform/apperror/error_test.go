package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/philly/postboard/internal/platform/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name         string
		code         apperror.ErrorCode
		businessCode apperror.BusinessCode
		message      string
		httpStatus   int
	}{
		{
			name:         "creates not found error",
			code:         apperror.CodeNotFound,
			businessCode: apperror.BusinessCodePostNotFound,
			message:      "post not found",
			httpStatus:   http.StatusNotFound,
		},
		{
			name:         "creates forbidden error",
			code:         apperror.CodeForbidden,
			businessCode: apperror.BusinessCodeNotPostAuthor,
			message:      "only the author may modify this post",
			httpStatus:   http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := apperror.New(tt.code, tt.businessCode, tt.message, tt.httpStatus)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.businessCode, err.BusinessCode)
			assert.Equal(t, tt.message, err.Message)
			assert.Equal(t, tt.httpStatus, err.HTTPStatus)
			assert.Nil(t, err.Inner)
			assert.Nil(t, err.Details)
		})
	}
}

func TestWrap(t *testing.T) {
	innerErr := errors.New("connection refused")

	err := apperror.Wrap(
		innerErr,
		apperror.CodeInternalError,
		apperror.BusinessCodeStorageFailure,
		"failed to load post",
		http.StatusInternalServerError,
	)

	assert.Same(t, innerErr, err.Inner)
	assert.ErrorIs(t, err, innerErr)
	assert.Equal(t, apperror.CodeInternalError, err.Code)
	assert.Equal(t, apperror.BusinessCodeStorageFailure, err.BusinessCode)
}

func TestInternal(t *testing.T) {
	innerErr := errors.New("boom")

	err := apperror.Internal(innerErr, "something failed")

	assert.Equal(t, apperror.CodeInternalError, err.Code)
	assert.Equal(t, apperror.BusinessCodeGeneral, err.BusinessCode)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus)
	assert.ErrorIs(t, err, innerErr)
}

func TestWithDetails_ReturnsCopy(t *testing.T) {
	sentinel := apperror.New(
		apperror.CodeValidationFailed,
		apperror.BusinessCodeMissingField,
		"validation failed",
		http.StatusBadRequest,
	)

	withDetails := sentinel.WithDetails(map[string]string{"title": "required"})

	assert.NotSame(t, sentinel, withDetails)
	assert.Nil(t, sentinel.Details, "sentinel must not be mutated")
	assert.Equal(t, map[string]string{"title": "required"}, withDetails.Details)
	assert.ErrorIs(t, withDetails, sentinel)
}

func TestWithCause_ReturnsCopy(t *testing.T) {
	sentinel := apperror.New(
		apperror.CodeInternalError,
		apperror.BusinessCodeStorageFailure,
		"storage failure",
		http.StatusInternalServerError,
	)
	cause := errors.New("timeout")

	wrapped := sentinel.WithCause(cause)

	assert.Nil(t, sentinel.Inner)
	assert.ErrorIs(t, wrapped, cause)
	assert.ErrorIs(t, wrapped, sentinel)
}

func TestAs(t *testing.T) {
	appErr := apperror.New(apperror.CodeNotFound, apperror.BusinessCodePostNotFound, "post not found", http.StatusNotFound)

	got, ok := apperror.As(fmt.Errorf("handler: %w", appErr))
	require.True(t, ok)
	assert.Same(t, appErr, got)

	_, ok = apperror.As(errors.New("plain"))
	assert.False(t, ok)
}

func TestIs(t *testing.T) {
	notFound := apperror.New(apperror.CodeNotFound, apperror.BusinessCodePostNotFound, "post not found", http.StatusNotFound)
	sameCodes := apperror.New(apperror.CodeNotFound, apperror.BusinessCodePostNotFound, "different message", http.StatusNotFound)
	otherBiz := apperror.New(apperror.CodeNotFound, apperror.BusinessCodeUserNotFound, "user not found", http.StatusNotFound)
	otherCode := apperror.New(apperror.CodeForbidden, apperror.BusinessCodePostNotFound, "forbidden", http.StatusForbidden)

	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{name: "same error codes match", err: notFound, target: sameCodes, want: true},
		{name: "different business code doesn't match", err: notFound, target: otherBiz, want: false},
		{name: "different error code doesn't match", err: notFound, target: otherCode, want: false},
		{name: "non-AppError doesn't match", err: notFound, target: errors.New("regular error"), want: false},
		{name: "wrapped AppError matches", err: fmt.Errorf("ctx: %w", notFound), target: sameCodes, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.Is(tt.err, tt.target))
		})
	}
}

func TestFormat(t *testing.T) {
	err := apperror.Wrap(
		errors.New("database error"),
		apperror.CodeValidationFailed,
		apperror.BusinessCodeMissingField,
		"title is required",
		http.StatusBadRequest,
	).WithDetails(map[string]string{"field": "title"})

	assert.Equal(t, "title is required", fmt.Sprintf("%s", err))
	assert.Equal(t, "title is required", fmt.Sprintf("%v", err))

	verbose := fmt.Sprintf("%+v", err)
	for _, expected := range []string{
		"Code: VALIDATION_FAILED",
		"BusinessCode: MISSING_FIELD",
		"Message: title is required",
		"HTTPStatus: 400",
		"Caused by: database error",
		"Details: map[field:title]",
	} {
		assert.Contains(t, verbose, expected)
	}
}

func TestFormat_OmitsEmptySections(t *testing.T) {
	err := apperror.New(apperror.CodeNotFound, apperror.BusinessCodePostNotFound, "post not found", http.StatusNotFound)

	output := fmt.Sprintf("%+v", err)

	assert.NotContains(t, output, "Caused by:")
	assert.NotContains(t, output, "Details:")
}
