package apperr

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindsMatch(t *testing.T) {
	assert.ErrorIs(t, Validation("bad"), ErrValidation)
	assert.ErrorIs(t, Conflict("dup"), ErrConflict)
	assert.ErrorIs(t, NotFound("nope"), ErrNotFound)
	assert.ErrorIs(t, Authentication("who"), ErrAuthentication)
	assert.NotErrorIs(t, NotFound("nope"), ErrConflict)
}

func TestImportKeepsCause(t *testing.T) {
	err := Import("Failed to process CSV file: boom", io.ErrUnexpectedEOF)
	assert.ErrorIs(t, err, ErrImport)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Equal(t, "Failed to process CSV file: boom", err.Error())
}

func TestMessage(t *testing.T) {
	wrapped := fmt.Errorf("create category: %w", Conflict("You already have a category with this name"))
	assert.Equal(t, "You already have a category with this name", Message(wrapped, "x"))
	assert.Equal(t, "internal error", Message(errors.New("db down"), "internal error"))
}
