package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	err := NotFound("report %d not found", 42)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, "not_found: report 42 not found", err.Error())

	// kind survives wrapping
	wrapped := fmt.Errorf("load report: %w", err)
	assert.Equal(t, KindNotFound, KindOf(wrapped))

	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
	assert.Equal(t, Kind(""), KindOf(nil))
}

func TestIsKind(t *testing.T) {
	err := PreconditionFailed("cannot publish")
	assert.True(t, IsKind(err, KindPreconditionFailed))
	assert.False(t, IsKind(err, KindValidation))
}
