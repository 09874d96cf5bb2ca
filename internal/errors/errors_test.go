package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMissingCatalogError(t *testing.T) {
	err := NewMissingCatalogError("data")
	assert.Equal(t, "no catalog HTML files found in data", err.Error())
	assert.True(t, IsMissingCatalogError(err))
	assert.True(t, IsMissingCatalogError(fmt.Errorf("extract: %w", err)))
	assert.False(t, IsMissingCatalogError(fmt.Errorf("unrelated")))
	assert.False(t, IsMissingCatalogError(nil))
}

func TestRateLimitError(t *testing.T) {
	err := NewRateLimitError("too many requests")
	assert.Equal(t, "too many requests", err.Error())
	assert.True(t, IsRateLimitError(err))
	assert.True(t, IsRateLimitError(fmt.Errorf("fetch: %w", err)))
	assert.False(t, IsRateLimitError(fmt.Errorf("unrelated")))
}
