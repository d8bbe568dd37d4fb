package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindsAndStatuses(t *testing.T) {
	cases := []struct {
		err    *Error
		kind   error
		status int
	}{
		{Validation("missing"), ErrValidation, http.StatusBadRequest},
		{Conflict("taken"), ErrConflict, http.StatusBadRequest},
		{Auth("nope"), ErrAuth, http.StatusUnauthorized},
		{NotFound("gone"), ErrNotFound, http.StatusNotFound},
	}

	for _, tc := range cases {
		require.True(t, errors.Is(tc.err, tc.kind))
		require.Equal(t, tc.status, tc.err.Status())
	}
}

func TestWrappedErrorKeepsKind(t *testing.T) {
	err := fmt.Errorf("handler: %w", NotFound("Expense not found"))
	require.True(t, errors.Is(err, ErrNotFound))

	var ae *Error
	require.True(t, errors.As(err, &ae))
	require.Equal(t, "Expense not found", ae.Message)
}
