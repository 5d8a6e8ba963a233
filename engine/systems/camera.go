package systems

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spaghettifunk/midnight/engine/core"
	"github.com/spaghettifunk/midnight/engine/renderer/components"
)

/** @brief The camera system configuration. */
type CameraSystemConfig struct {
	/** @brief The maximum number of cameras that can be managed by the system. */
	MaxCameraCount uint16
	/** @brief Projection parameters new cameras start with. */
	FieldOfView float32
	AspectRatio float32
	ZNear       float32
	ZFar        float32
}

type cameraLookup struct {
	referenceCount uint16
	camera         *components.Camera
}

type CameraSystem struct {
	config  *CameraSystemConfig
	cameras map[string]*cameraLookup
	// A default, non-registered camera that always exists as a fallback.
	defaultCamera *components.Camera
}

func NewCameraSystem(config *CameraSystemConfig) (*CameraSystem, error) {
	if config.MaxCameraCount == 0 {
		err := fmt.Errorf("%w: config.MaxCameraCount must be > 0", core.ErrInvalidArgument)
		core.LogError(err.Error())
		return nil, err
	}
	return &CameraSystem{
		config:        config,
		cameras:       make(map[string]*cameraLookup, config.MaxCameraCount),
		defaultCamera: components.NewCamera(config.FieldOfView, config.AspectRatio, config.ZNear, config.ZFar),
	}, nil
}

func (cs *CameraSystem) Shutdown() error {
	cs.cameras = make(map[string]*cameraLookup)
	return nil
}

/**
 * @brief Acquires a camera by name. If one is not found, a new one is
 * created. Internal reference counter is incremented. An empty name
 * registers a camera under a generated name, which is returned.
 */
func (cs *CameraSystem) Acquire(name string) (*components.Camera, string, error) {
	if name == components.DEFAULT_CAMERA_NAME {
		return cs.defaultCamera, name, nil
	}
	if name == "" {
		name = uuid.NewString()
	}

	lookup, ok := cs.cameras[name]
	if !ok {
		if len(cs.cameras) >= int(cs.config.MaxCameraCount) {
			err := fmt.Errorf("%w: no free camera slot for %q. Adjust camera system config to allow more", core.ErrResourceExhausted, name)
			core.LogError(err.Error())
			return nil, "", err
		}
		core.LogDebug("Creating new camera named '%s'...", name)
		lookup = &cameraLookup{
			camera: components.NewCamera(cs.config.FieldOfView, cs.config.AspectRatio, cs.config.ZNear, cs.config.ZFar),
		}
		cs.cameras[name] = lookup
	}
	lookup.referenceCount++
	return lookup.camera, name, nil
}

/**
 * @brief Releases a camera with the given name. Internal reference
 * counter is decremented. If this reaches 0, the camera is dropped and
 * the slot is usable by a new camera.
 */
func (cs *CameraSystem) Release(name string) {
	if name == components.DEFAULT_CAMERA_NAME {
		core.LogDebug("Cannot release default camera. Nothing was done.")
		return
	}
	lookup, ok := cs.cameras[name]
	if !ok {
		core.LogWarn("CameraSystem.Release failed lookup for '%s'. Nothing was done.", name)
		return
	}
	lookup.referenceCount--
	if lookup.referenceCount == 0 {
		delete(cs.cameras, name)
	}
}

// Each calls fn for every camera, the default one included.
func (cs *CameraSystem) Each(fn func(camera *components.Camera)) {
	fn(cs.defaultCamera)
	for _, lookup := range cs.cameras {
		fn(lookup.camera)
	}
}

func (cs *CameraSystem) Count() int {
	return len(cs.cameras)
}

func (cs *CameraSystem) Default() *components.Camera {
	return cs.defaultCamera
}
