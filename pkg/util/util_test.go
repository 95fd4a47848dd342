package util

import (
	"errors"
	"math"
	"testing"
)

func TestMpsToKmh(t *testing.T) {
	testCases := []struct {
		mps  float64
		want float64
	}{
		{0, 0},
		{1, 3.6},
		{10, 36},
		{23.0 / 3.6, 23},
	}

	for _, tt := range testCases {
		got := MpsToKmh(tt.mps)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("MpsToKmh(%v) = %v, want %v", tt.mps, got, tt.want)
		}
	}
}

func TestWrapErrorf(t *testing.T) {
	orig := errors.New("upstream exploded")
	err := WrapErrorf(orig, ErrNotFound, "lookup for %q failed", "Kennon Road")

	var wrapped *Error
	if !errors.As(err, &wrapped) {
		t.Fatal("want *Error")
	}
	if wrapped.Code() != ErrNotFound {
		t.Errorf("code %v, want ErrNotFound", wrapped.Code())
	}
	if !errors.Is(err, orig) {
		t.Error("wrapped error should unwrap to the original")
	}
	if err.Error() != `lookup for "Kennon Road" failed` {
		t.Errorf("message %q", err.Error())
	}
}

func TestRoundFloat(t *testing.T) {
	testCases := []struct {
		val       float64
		precision uint
		want      float64
	}{
		{11.184, 1, 11.2},
		{11.14, 1, 11.1},
		{18.0, 1, 18.0},
		{29.9949, 2, 29.99},
	}

	for _, tt := range testCases {
		got := RoundFloat(tt.val, tt.precision)
		if got != tt.want {
			t.Errorf("RoundFloat(%v, %d) = %v, want %v", tt.val, tt.precision, got, tt.want)
		}
	}
}

func TestMinMax(t *testing.T) {
	if got := Min(16.40, 16.42); got != 16.40 {
		t.Errorf("Min = %v, want 16.40", got)
	}
	if got := Max(16.40, 16.42); got != 16.42 {
		t.Errorf("Max = %v, want 16.42", got)
	}
	if got := Min(3, 7); got != 3 {
		t.Errorf("Min = %v, want 3", got)
	}
	if got := Max(3, 7); got != 7 {
		t.Errorf("Max = %v, want 7", got)
	}
}

func TestStringToFloat64(t *testing.T) {
	got, err := StringToFloat64("16.4119")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if got != 16.4119 {
		t.Errorf("got %v", got)
	}

	if _, err := StringToFloat64("sixteen"); err == nil {
		t.Error("want error for non-numeric input")
	}
}
