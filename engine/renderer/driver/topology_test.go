package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerticesPerPrimitive(t *testing.T) {
	tests := []struct {
		topology Topology
		want     int
	}{
		{Points, 1},
		{Lines, 2},
		{Triangles, 3},
		{Quads, 4},
		{TopologyUnknown, 0},
		{Topology(17), 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.topology.VerticesPerPrimitive(), tt.topology.String())
	}
}

func TestTopologyText(t *testing.T) {
	var topology Topology
	require.NoError(t, topology.UnmarshalText([]byte("Quads")))
	assert.Equal(t, Quads, topology)
	assert.Error(t, topology.UnmarshalText([]byte("triangle_fan")))

	text, err := Lines.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "lines", string(text))
}
