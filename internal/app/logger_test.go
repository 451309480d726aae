package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	jsonLogger := NewLogger(&Config{LogFormat: "json"})
	require.NotNil(t, jsonLogger)

	textLogger := NewLogger(&Config{LogFormat: "pretty"})
	require.NotNil(t, textLogger)

	// A nil config must not panic; it falls back to text output.
	assert.NotNil(t, NewLogger(nil))
}
