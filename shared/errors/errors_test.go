package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusCode(BadRequest("bad")))
	assert.Equal(t, http.StatusForbidden, StatusCode(fmt.Errorf("wrapped: %w", Forbidden("no"))))
	assert.Equal(t, http.StatusNotFound, StatusCode(fmt.Errorf("get thread: %w", ErrNotFound)))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(errors.New("boom")))
}
