package tensor

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNoBackend is returned when no backend is registered for a device.
var ErrNoBackend = errors.New("no backend registered for device")

var (
	backendsMu sync.RWMutex
	backends   = make(map[Device]Backend)
)

// Register makes b the backend for b.Device(), replacing any previous one.
func Register(b Backend) {
	if b == nil {
		panic("tensor: Register backend is nil")
	}
	backendsMu.Lock()
	defer backendsMu.Unlock()
	backends[b.Device()] = b
}

// BackendFor returns the backend registered for device d.
func BackendFor(d Device) (Backend, error) {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	b, ok := backends[d]
	if !ok {
		return nil, fmt.Errorf("%w %s", ErrNoBackend, d)
	}
	return b, nil
}

// BackendOf returns the backend that owns t, so that follow-up allocations
// land on the same device as t.
func BackendOf(t *RawTensor) (Backend, error) {
	return BackendFor(t.Device())
}
