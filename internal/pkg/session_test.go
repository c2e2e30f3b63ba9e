package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateNewSessionID(t *testing.T) {
	// When: two session ids are generated
	first := GenerateNewSessionID()
	second := GenerateNewSessionID()

	// Then: both are valid and distinct
	assert.True(t, IsValidSessionID(first))
	assert.True(t, IsValidSessionID(second))
	assert.NotEqual(t, first, second)
}

func TestIsValidSessionID(t *testing.T) {
	assert.False(t, IsValidSessionID(""))
	assert.False(t, IsValidSessionID("error-generating-session-id"))
	assert.False(t, IsValidSessionID("../game:1"))
}
