package fixed

import "math"

// Arith performs checked int64 arithmetic. The first failure sticks: later
// operations return 0 and Err reports the original cause.
type Arith struct {
	err error
}

func (a *Arith) Err() error { return a.err }

func (a *Arith) fail(err error) int64 {
	if a.err == nil {
		a.err = err
	}
	return 0
}

func (a *Arith) Add(x, y int64) int64 {
	if a.err != nil {
		return 0
	}
	s := x + y
	if (y > 0 && s < x) || (y < 0 && s > x) {
		return a.fail(ErrOverflow)
	}
	return s
}

func (a *Arith) Sub(x, y int64) int64 {
	if a.err != nil {
		return 0
	}
	d := x - y
	if (y > 0 && d > x) || (y < 0 && d < x) {
		return a.fail(ErrOverflow)
	}
	return d
}

func (a *Arith) Mul(x, y int64) int64 {
	if a.err != nil {
		return 0
	}
	if x == 0 || y == 0 {
		return 0
	}
	if (x == -1 && y == math.MinInt64) || (y == -1 && x == math.MinInt64) {
		return a.fail(ErrOverflow)
	}
	p := x * y
	if p/y != x {
		return a.fail(ErrOverflow)
	}
	return p
}

// Div truncates toward zero.
func (a *Arith) Div(x, y int64) int64 {
	if a.err != nil {
		return 0
	}
	if y == 0 {
		return a.fail(ErrDivideByZero)
	}
	if x == math.MinInt64 && y == -1 {
		return a.fail(ErrOverflow)
	}
	return x / y
}

// Scale returns (v*dt)/Precision.
func (a *Arith) Scale(v, dt int64) int64 {
	return a.Div(a.Mul(v, dt), Precision)
}
