package fixed

import (
	"errors"
	"math"
	"testing"
)

func TestSqrt(t *testing.T) {
	tests := []struct {
		in, want int64
	}{
		{0, 0},
		{1, 1},
		{2, 1},
		{3, 2},
		{4, 2},
		{8, 3},
		{9, 3},
		{100, 10},
		{1e16, 1e8},
		{4e16, 2e8},
		{-5, -1},
		{math.MinInt64, -1},
	}

	for _, tt := range tests {
		if got := Sqrt(tt.in); got != tt.want {
			t.Errorf("Sqrt(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSqrt_MaxInt64(t *testing.T) {
	got := Sqrt(math.MaxInt64)
	if got != 3037000499 && got != 3037000500 {
		t.Errorf("Sqrt(MaxInt64) = %d", got)
	}
}

func TestGravitationalAcceleration(t *testing.T) {
	tests := []struct {
		name    string
		g       int64
		mass    uint64
		d, r    int64
		want    int64
		wantErr error
	}{
		{"unit mass unit distance", 1, 1e8, 1e8, 1e8, -1e8, nil},
		{"negative delta", 1, 1e8, -1e8, 1e8, 1e8, nil},
		{"zero delta", 1, 1e8, 0, 1e8, 0, nil},
		{"truncates toward zero", 1, 1, 1, 3, -370370366666666, nil},
		{"quarter at distance two", 1, 1e8, 2e8, 2e8, -25000000, nil},
		{"coincident", 1, 1e8, 0, 0, 0, ErrDivideByZero},
		{"overflow", 1, 1e18, 1e18, 1, 0, ErrOverflow},
		{"mass beyond int64", 1, math.MaxUint64, 1, 1, 0, ErrOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GravitationalAcceleration(tt.g, tt.mass, tt.d, tt.r)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("GravitationalAcceleration = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestArith(t *testing.T) {
	tests := []struct {
		name    string
		op      func(a *Arith) int64
		want    int64
		wantErr error
	}{
		{"add", func(a *Arith) int64 { return a.Add(2, 3) }, 5, nil},
		{"add overflow", func(a *Arith) int64 { return a.Add(math.MaxInt64, 1) }, 0, ErrOverflow},
		{"add underflow", func(a *Arith) int64 { return a.Add(math.MinInt64, -1) }, 0, ErrOverflow},
		{"sub", func(a *Arith) int64 { return a.Sub(2, 3) }, -1, nil},
		{"sub overflow", func(a *Arith) int64 { return a.Sub(math.MinInt64, 1) }, 0, ErrOverflow},
		{"mul", func(a *Arith) int64 { return a.Mul(-4, 5) }, -20, nil},
		{"mul overflow", func(a *Arith) int64 { return a.Mul(1e10, 1e10) }, 0, ErrOverflow},
		{"mul min by minus one", func(a *Arith) int64 { return a.Mul(math.MinInt64, -1) }, 0, ErrOverflow},
		{"div truncates", func(a *Arith) int64 { return a.Div(-7, 2) }, -3, nil},
		{"div by zero", func(a *Arith) int64 { return a.Div(1, 0) }, 0, ErrDivideByZero},
		{"scale", func(a *Arith) int64 { return a.Scale(Precision, Precision/1000) }, Precision / 1000, nil},
		{"scale truncates", func(a *Arith) int64 { return a.Scale(-3, 1e5) }, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Arith
			got := tt.op(&a)
			if !errors.Is(a.Err(), tt.wantErr) {
				t.Fatalf("err = %v, want %v", a.Err(), tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestArith_StickyError(t *testing.T) {
	var a Arith
	a.Div(1, 0)
	a.Add(math.MaxInt64, 1)

	if !errors.Is(a.Err(), ErrDivideByZero) {
		t.Errorf("expected first error to stick, got %v", a.Err())
	}
	if got := a.Add(1, 2); got != 0 {
		t.Errorf("expected 0 after failure, got %d", got)
	}
}

func TestFromFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want int64
	}{
		{0.001, 100000},
		{1.0, 1e8},
		{0.4662036850, 46620368},
		{1e300, math.MaxInt64},
		{-1e300, math.MinInt64},
	}

	for _, tt := range tests {
		if got := FromFloat(tt.in); got != tt.want {
			t.Errorf("FromFloat(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}

	if got := FromFloatUnsigned(1.0002); got != 100020000 {
		t.Errorf("FromFloatUnsigned(1.0002) = %d", got)
	}
	if got := FromFloatUnsigned(-1); got != 0 {
		t.Errorf("FromFloatUnsigned(-1) = %d", got)
	}
}
