package automaxprocs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitUndo(t *testing.T) {
	before := Current()
	assert.Equal(t, -1, Value())

	require.NoError(t, Init())
	assert.GreaterOrEqual(t, Value(), 1)
	assert.Equal(t, Current(), Value())

	assert.Equal(t, before, Undo())
	assert.Equal(t, -1, Value())
}
