package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFill(t *testing.T) {
	var out struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}
	require.NoError(t, Fill(&out, map[string]any{"id": "o1", "url": "https://x/o1"}))
	assert.Equal(t, "o1", out.ID)
	assert.Equal(t, "https://x/o1", out.URL)

	assert.Error(t, Fill(&out, make(chan int)))
}
