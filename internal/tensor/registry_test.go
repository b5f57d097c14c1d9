package tensor

import (
	"errors"
	"testing"
)

// fakeBackend embeds Backend so that only the registry methods are real.
type fakeBackend struct {
	Backend
	device Device
}

func (f fakeBackend) Device() Device { return f.device }
func (f fakeBackend) Name() string   { return "fake" }

func TestRegistry(t *testing.T) {
	if _, err := BackendFor(Vulkan); !errors.Is(err, ErrNoBackend) {
		t.Fatalf("BackendFor(Vulkan) error = %v, want ErrNoBackend", err)
	}

	Register(fakeBackend{device: Vulkan})
	defer func() {
		backendsMu.Lock()
		delete(backends, Vulkan)
		backendsMu.Unlock()
	}()

	b, err := BackendOf(Scalar(1, Vulkan))
	if err != nil {
		t.Fatalf("BackendOf failed: %v", err)
	}
	if b.Name() != "fake" {
		t.Errorf("Name = %q, want fake", b.Name())
	}
}

func TestRegisterNilPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Register(nil) should panic")
		}
	}()
	Register(nil)
}
