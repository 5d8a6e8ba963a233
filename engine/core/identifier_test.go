package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentifiersNeverIssueZero(t *testing.T) {
	ids := NewIdentifiers(4)
	first := ids.Acquire("a")
	second := ids.Acquire("b")
	assert.Equal(t, uint32(1), first)
	assert.Equal(t, uint32(2), second)
	assert.Equal(t, "b", ids.Owner(second))
	assert.Nil(t, ids.Owner(0))
}

func TestIdentifiersReuseReleasedSlot(t *testing.T) {
	ids := NewIdentifiers(4)
	a := ids.Acquire("a")
	ids.Acquire("b")
	require.NoError(t, ids.Release(a))
	assert.Equal(t, 1, ids.InUse())
	assert.Equal(t, a, ids.Acquire("c"))
	assert.Equal(t, 2, ids.InUse())
}

func TestIdentifiersReleaseErrors(t *testing.T) {
	ids := NewIdentifiers(1)
	assert.Error(t, ids.Release(0))
	assert.Error(t, ids.Release(7))
	id := ids.Acquire(struct{}{})
	require.NoError(t, ids.Release(id))
	assert.Error(t, ids.Release(id))
}
