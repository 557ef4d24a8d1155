// Package expect provides fluent assertion helpers whose failures are
// ordinary errors, matching the Action contract (a test body returns
// the first failed expectation).
package expect

import (
	"fmt"
	"math"
	"reflect"
)

// Expectation wraps an actual value for fluent assertions.
type Expectation struct {
	actual any
}

// Value creates an expectation for the given value.
func Value(actual any) Expectation {
	return Expectation{actual: actual}
}

// ToEqual fails unless actual deeply equals expected.
func (e Expectation) ToEqual(expected any) error {
	if !reflect.DeepEqual(e.actual, expected) {
		return fmt.Errorf("expected %v, but got %v", expected, e.actual)
	}
	return nil
}

// ToNotEqual fails when actual deeply equals expected.
func (e Expectation) ToNotEqual(expected any) error {
	if reflect.DeepEqual(e.actual, expected) {
		return fmt.Errorf("expected not %v, but got %v", expected, e.actual)
	}
	return nil
}

// ToBeTrue fails unless actual is the boolean true.
func (e Expectation) ToBeTrue() error {
	if b, ok := e.actual.(bool); ok && b {
		return nil
	}
	return fmt.Errorf("expected true, but got %v", e.actual)
}

// ToBeFalse fails unless actual is the boolean false.
func (e Expectation) ToBeFalse() error {
	if b, ok := e.actual.(bool); ok && !b {
		return nil
	}
	return fmt.Errorf("expected false, but got %v", e.actual)
}

// ToBeNil fails unless actual is nil.
func (e Expectation) ToBeNil() error {
	if e.actual == nil {
		return nil
	}
	v := reflect.ValueOf(e.actual)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		if v.IsNil() {
			return nil
		}
	}
	return fmt.Errorf("expected nil, but got %v", e.actual)
}

// ToBeAlmostEqual fails unless actual is within delta of expected.
// Both values must be numeric.
func (e Expectation) ToBeAlmostEqual(expected, delta float64) error {
	actual, ok := toFloat(e.actual)
	if !ok {
		return fmt.Errorf("expected a numeric value, but got %v (%T)", e.actual, e.actual)
	}
	if math.Abs(actual-expected) > delta {
		return fmt.Errorf("expected %v ± %v, but got %v", expected, delta, actual)
	}
	return nil
}

// Within is a partially applied tolerance comparison.
type Within struct {
	actual any
	delta  float64
}

// ToBeWithin starts a tolerance comparison: Value(got).ToBeWithin(0.001).Of(want).
func (e Expectation) ToBeWithin(delta float64) Within {
	return Within{actual: e.actual, delta: delta}
}

// Of fails unless the wrapped value is within the tolerance of expected.
func (w Within) Of(expected float64) error {
	return Value(w.actual).ToBeAlmostEqual(expected, w.delta)
}

// Function forms of the fluent assertions.

// Equal fails unless actual deeply equals expected.
func Equal(actual, expected any) error { return Value(actual).ToEqual(expected) }

// NotEqual fails when actual deeply equals expected.
func NotEqual(actual, expected any) error { return Value(actual).ToNotEqual(expected) }

// True fails unless condition holds.
func True(condition bool) error { return Value(condition).ToBeTrue() }

// False fails when condition holds.
func False(condition bool) error { return Value(condition).ToBeFalse() }

// AlmostEqual fails unless actual is within delta of expected.
func AlmostEqual(actual, expected, delta float64) error {
	return Value(actual).ToBeAlmostEqual(expected, delta)
}

// All returns the first non-nil error, letting a body chain several
// expectations in one return statement.
func All(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
