package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsageText(t *testing.T) {
	var u Usage
	require.NoError(t, u.UnmarshalText([]byte("Dynamic_Draw")))
	assert.Equal(t, DynamicDraw, u)

	text, err := StreamCopy.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "stream_copy", string(text))

	assert.Error(t, u.UnmarshalText([]byte("sometimes_draw")))
	_, err = UsageUnknown.MarshalText()
	assert.Error(t, err)
}

func TestUsageValid(t *testing.T) {
	for u := StaticDraw; u <= StreamCopy; u++ {
		assert.True(t, u.Valid(), u.String())
	}
	assert.False(t, UsageUnknown.Valid())
	assert.False(t, Usage(42).Valid())
}

func TestDataTypeString(t *testing.T) {
	assert.Equal(t, "unsigned_int_10f_11f_11f_rev", UnsignedInt10F11F11FRev.String())
	assert.Equal(t, "DataType(99)", DataType(99).String())
}
