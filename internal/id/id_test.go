package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_FormatAndUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		v, err := NewShayariID()
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(v, "shy-"))
		assert.Len(t, v, len("shy-")+21)
		assert.False(t, seen[v], "duplicate id %s", v)
		seen[v] = true
	}
}
