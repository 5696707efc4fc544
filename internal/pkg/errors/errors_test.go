package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_WithDetailsDoesNotMutateSentinel(t *testing.T) {
	detailed := ErrInvalidDataset.WithDetails(map[string]interface{}{"field_id": "F1"})

	assert.Empty(t, ErrInvalidDataset.Details)
	assert.Equal(t, "F1", detailed.Details["field_id"])
	assert.Equal(t, ErrInvalidDataset.StatusCode, detailed.StatusCode)
}

func TestAppError_IsMatchesByCode(t *testing.T) {
	wrapped := fmt.Errorf("load: %w", ErrFieldNotFound.WithDetails(map[string]interface{}{"id": "x"}))

	assert.True(t, stderrors.Is(wrapped, ErrFieldNotFound))
	assert.False(t, stderrors.Is(wrapped, ErrSessionNotFound))

	var appErr *AppError
	assert.True(t, stderrors.As(wrapped, &appErr))
	assert.Equal(t, "FIELD_NOT_FOUND", appErr.Code)
}
