package invitecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		code, err := Generate()
		require.NoError(t, err)
		assert.True(t, Valid(code), code)
		seen[code] = struct{}{}
	}
	assert.Greater(t, len(seen), 190)
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("INV-AB12CD34"))
	assert.False(t, Valid("INV-ab12cd34"))
	assert.False(t, Valid("AB12CD34"))
	assert.False(t, Valid("INV-AB12CD3"))
}
