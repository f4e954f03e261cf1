package devserver

import (
	"sync"

	"github.com/labstack/echo/v4"

	"buildmart.GO/core/registry"
)

var mu sync.Mutex

// ModuleFunc registers routes on the /api group.
type ModuleFunc func(s *Server, g *echo.Group)

func getModules() []ModuleFunc {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistryRoutes); ok && v != nil {
		return v.([]ModuleFunc)
	}
	return nil
}

// RegisterModule registers a route module. Call from init().
func RegisterModule(fn ModuleFunc) {
	mu.Lock()
	defer mu.Unlock()
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryRoutes) {
		panic("devserver/registry: routes locked (register only during init)")
	}
	list := getModules()
	list = append(list, fn)
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryRoutes, list)
}

// ApplyModules calls all registered route modules. Locks the registry.
func ApplyModules(s *Server, g *echo.Group) {
	for _, fn := range getModules() {
		fn(s, g)
	}
	registry.GlobalRegistry.Lock(registry.KeyRegistryRoutes)
}
