package buffers

import "github.com/spaghettifunk/midnight/engine/renderer/driver"

// arrayBufferScope binds a buffer to the array buffer binding point for the
// length of a scope and puts the previous binding back on release. Callers
// defer release so it also runs on error paths.
type arrayBufferScope struct {
	drv       driver.Driver
	preserved driver.BufferHandle
}

func acquireArrayBuffer(drv driver.Driver, handle driver.BufferHandle) arrayBufferScope {
	return arrayBufferScope{
		drv:       drv,
		preserved: drv.BindArrayBuffer(handle),
	}
}

func (s arrayBufferScope) release() {
	s.drv.BindArrayBuffer(s.preserved)
}
