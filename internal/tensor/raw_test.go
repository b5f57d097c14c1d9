package tensor

import (
	"testing"
)

func TestNewRaw(t *testing.T) {
	raw, err := NewRaw(Shape{3, 2}, CPU)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}
	if got := len(raw.Data()); got != 6 {
		t.Errorf("len(Data) = %d, want 6", got)
	}
	for i, v := range raw.Data() {
		if v != 0 {
			t.Errorf("Data[%d] = %v, want 0", i, v)
		}
	}
	if s := raw.Strides(); s[0] != 2 || s[1] != 1 {
		t.Errorf("Strides = %v, want [2 1]", s)
	}
}

func TestNewRawInvalidShape(t *testing.T) {
	for _, shape := range []Shape{{0}, {2, -1}} {
		if _, err := NewRaw(shape, CPU); err == nil {
			t.Errorf("NewRaw(%v) should fail", shape)
		}
	}
}

func TestFromSliceCopies(t *testing.T) {
	src := []float64{1, 2, 3, 4}
	raw, err := FromSlice(src, Shape{2, 2}, CPU)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	src[0] = 99
	if raw.At(0, 0) != 1 {
		t.Error("FromSlice should copy its input")
	}
	if raw.At(1, 0) != 3 {
		t.Errorf("At(1, 0) = %v, want 3", raw.At(1, 0))
	}

	if _, err := FromSlice(src, Shape{3}, CPU); err == nil {
		t.Error("FromSlice should reject a length mismatch")
	}
}

func TestRawTensorScalar(t *testing.T) {
	s := Scalar(2.5, CUDA)
	if s.Item() != 2.5 {
		t.Errorf("Item = %v, want 2.5", s.Item())
	}
	if s.At() != 2.5 {
		t.Errorf("At() = %v, want 2.5", s.At())
	}
	if len(s.Shape()) != 0 || s.NumElements() != 1 {
		t.Errorf("scalar shape = %v", s.Shape())
	}
	if s.Device() != CUDA {
		t.Errorf("Device = %v, want CUDA", s.Device())
	}
}

func TestRawTensorItemPanics(t *testing.T) {
	raw, _ := NewRaw(Shape{2}, CPU)
	defer func() {
		if r := recover(); r == nil {
			t.Error("Item on a two-element tensor should panic")
		}
	}()
	raw.Item()
}

func TestRawTensorAtOutOfRangePanics(t *testing.T) {
	raw, _ := NewRaw(Shape{2, 2}, CPU)
	defer func() {
		if r := recover(); r == nil {
			t.Error("At out of range should panic")
		}
	}()
	raw.At(0, 2)
}

func TestRawTensorClone(t *testing.T) {
	raw, _ := FromSlice([]float64{1, 2}, Shape{2}, CPU)
	clone := raw.Clone()
	clone.Data()[0] = 7
	if raw.At(0) != 1 {
		t.Error("Clone should not share storage")
	}
	if !clone.Shape().Equal(raw.Shape()) {
		t.Errorf("Clone shape = %v, want %v", clone.Shape(), raw.Shape())
	}
}

func TestDeviceString(t *testing.T) {
	tests := map[Device]string{
		CPU:        "CPU",
		CUDA:       "CUDA",
		Vulkan:     "Vulkan",
		Metal:      "Metal",
		WebGPU:     "WebGPU",
		Device(42): "Unknown",
	}
	for d, want := range tests {
		if got := d.String(); got != want {
			t.Errorf("Device(%d).String() = %q, want %q", int(d), got, want)
		}
	}
}
