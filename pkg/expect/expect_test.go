package expect

import (
	"errors"
	"testing"
)

func TestToEqual(t *testing.T) {
	tests := []struct {
		name     string
		actual   any
		expected any
		wantErr  bool
	}{
		{"equal ints", 5, 5, false},
		{"unequal ints", 5, 6, true},
		{"equal strings", "vec", "vec", false},
		{"equal slices", []int{1, 2}, []int{1, 2}, false},
		{"unequal slices", []int{1, 2}, []int{2, 1}, true},
		{"equal structs", struct{ X, Y float64 }{3, 4}, struct{ X, Y float64 }{3, 4}, false},
		{"int vs int64", 5, int64(5), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Value(tt.actual).ToEqual(tt.expected)
			if (err != nil) != tt.wantErr {
				t.Errorf("expected wantErr=%v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestToEqual_Message(t *testing.T) {
	err := Value(2).ToEqual(3)
	if err == nil {
		t.Fatal("expected an error")
	}
	if err.Error() != "expected 3, but got 2" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestToNotEqual(t *testing.T) {
	if err := Value(5).ToNotEqual(6); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := Value(5).ToNotEqual(5); err == nil {
		t.Error("expected an error for equal values")
	}
}

func TestBooleanExpectations(t *testing.T) {
	if err := Value(true).ToBeTrue(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := Value(false).ToBeTrue(); err == nil {
		t.Error("expected an error for false")
	}
	if err := Value(1).ToBeTrue(); err == nil {
		t.Error("expected an error for a non-boolean")
	}
	if err := Value(false).ToBeFalse(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := Value(true).ToBeFalse(); err == nil {
		t.Error("expected an error for true")
	}
}

func TestToBeNil(t *testing.T) {
	var p *int
	var m map[string]int
	var fn func()

	tests := []struct {
		name    string
		actual  any
		wantErr bool
	}{
		{"untyped nil", nil, false},
		{"nil pointer", p, false},
		{"nil map", m, false},
		{"nil func", fn, false},
		{"nil slice", []int(nil), false},
		{"non-nil pointer", new(int), true},
		{"zero int", 0, true},
		{"empty string", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Value(tt.actual).ToBeNil()
			if (err != nil) != tt.wantErr {
				t.Errorf("expected wantErr=%v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestToBeAlmostEqual(t *testing.T) {
	tests := []struct {
		name     string
		actual   any
		expected float64
		delta    float64
		wantErr  bool
	}{
		{"within delta", 5.0001, 5.0, 0.001, false},
		{"exactly at delta", 5.001, 5.0, 0.001, false},
		{"outside delta", 5.01, 5.0, 0.001, true},
		{"int actual", 5, 5.0, 0.001, false},
		{"float32 actual", float32(2.5), 2.5, 0.001, false},
		{"non-numeric actual", "five", 5.0, 0.001, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Value(tt.actual).ToBeAlmostEqual(tt.expected, tt.delta)
			if (err != nil) != tt.wantErr {
				t.Errorf("expected wantErr=%v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestToBeWithin_Of(t *testing.T) {
	if err := Value(5.0001).ToBeWithin(0.001).Of(5.0); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := Value(5.01).ToBeWithin(0.001).Of(5.0); err == nil {
		t.Error("expected an error outside the tolerance")
	}
	if err := Value("five").ToBeWithin(0.001).Of(5.0); err == nil {
		t.Error("expected an error for a non-numeric value")
	}
}

func TestFunctionForms(t *testing.T) {
	if err := Equal(5, 5); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := NotEqual(5, 6); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := True(1 < 2); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := False(2 < 1); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := AlmostEqual(3.14159, 3.1416, 0.001); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAll(t *testing.T) {
	if err := All(nil, nil, nil); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	first := errors.New("first")
	second := errors.New("second")
	if got := All(nil, first, second); got != first {
		t.Errorf("expected the first failure, got %v", got)
	}
}
