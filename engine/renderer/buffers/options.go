package buffers

import "github.com/spaghettifunk/midnight/engine/renderer/driver"

type options struct {
	topology driver.Topology
	usage    driver.Usage
}

type Option func(*options)

// WithTopology sets the primitive type the buffer holds. Defaults to triangles.
func WithTopology(topology driver.Topology) Option {
	return func(o *options) {
		o.topology = topology
	}
}

// WithUsage sets the usage hint given to the driver on every upload. Defaults to static draw.
func WithUsage(usage driver.Usage) Option {
	return func(o *options) {
		o.usage = usage
	}
}
