package tensor

import (
	"testing"
)

func TestShapeNumElements(t *testing.T) {
	tests := []struct {
		shape Shape
		want  int
	}{
		{Shape{}, 1},
		{Shape{5}, 5},
		{Shape{2, 3, 4}, 24},
	}
	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.want {
			t.Errorf("%v.NumElements() = %d, want %d", tt.shape, got, tt.want)
		}
	}
}

func TestShapeString(t *testing.T) {
	if got := (Shape{2, 3}).String(); got != "[2 3]" {
		t.Errorf("String = %q", got)
	}
	if got := (Shape{}).String(); got != "[]" {
		t.Errorf("scalar String = %q", got)
	}
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		name      string
		a, b      Shape
		want      Shape
		broadcast bool
		wantErr   bool
	}{
		{"same", Shape{3, 5}, Shape{3, 5}, Shape{3, 5}, false, false},
		{"column", Shape{3, 1}, Shape{3, 5}, Shape{3, 5}, true, false},
		{"scalar", Shape{}, Shape{4}, Shape{4}, true, false},
		{"rank pad", Shape{5}, Shape{2, 5}, Shape{2, 5}, true, false},
		{"outer", Shape{3, 1, 4}, Shape{1, 2, 4}, Shape{3, 2, 4}, true, false},
		{"incompatible", Shape{3, 4}, Shape{3, 5}, nil, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, broadcast, err := BroadcastShapes(tt.a, tt.b)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) || broadcast != tt.broadcast {
				t.Errorf("got %v, %v; want %v, %v", got, broadcast, tt.want, tt.broadcast)
			}
		})
	}
}

func TestBroadcastStrides(t *testing.T) {
	tests := []struct {
		name string
		s    Shape
		out  Shape
		want []int
	}{
		{"identity", Shape{2, 3}, Shape{2, 3}, []int{3, 1}},
		{"column", Shape{2, 1}, Shape{2, 3}, []int{1, 0}},
		{"row padded", Shape{3}, Shape{2, 3}, []int{0, 1}},
		{"scalar", Shape{}, Shape{2, 3}, []int{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.s.BroadcastStrides(tt.out)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}
