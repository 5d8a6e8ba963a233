package driver

import (
	"fmt"
	"strings"
)

// Topology is the primitive type a vertex buffer is drawn as.
type Topology uint8

const (
	TopologyUnknown Topology = iota
	Points
	Lines
	Triangles
	Quads
)

var topologyNames = map[Topology]string{
	Points:    "points",
	Lines:     "lines",
	Triangles: "triangles",
	Quads:     "quads",
}

// VerticesPerPrimitive returns how many vertices make up one primitive of t,
// or 0 for an unsupported topology.
func (t Topology) VerticesPerPrimitive() int {
	switch t {
	case Points:
		return 1
	case Lines:
		return 2
	case Triangles:
		return 3
	case Quads:
		return 4
	}
	return 0
}

func (t Topology) Valid() bool {
	return t.VerticesPerPrimitive() != 0
}

func (t Topology) String() string {
	if name, ok := topologyNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Topology(%d)", uint8(t))
}

func (t Topology) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("unknown topology %d", uint8(t))
	}
	return []byte(t.String()), nil
}

func (t *Topology) UnmarshalText(text []byte) error {
	want := strings.ToLower(strings.TrimSpace(string(text)))
	for topology, name := range topologyNames {
		if name == want {
			*t = topology
			return nil
		}
	}
	return fmt.Errorf("unknown topology %q", string(text))
}
