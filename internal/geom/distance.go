package geom

import "fmt"

// ExactDistance is a non-negative rational Num/Den.
type ExactDistance struct {
	Num int
	Den int
}

// NewExactDistance builds the distance |num| / |den|.
func NewExactDistance(num, den int) ExactDistance {
	return ExactDistance{Num: abs(num), Den: abs(den)}
}

func (d ExactDistance) String() string {
	return fmt.Sprintf("%d/%d", d.Num, d.Den)
}

// Floor returns the integer part. It must not be called with Den == 0.
func (d ExactDistance) Floor() int {
	return d.Num / d.Den
}

// Float64 converts to floating point, for reporting only.
func (d ExactDistance) Float64() float64 {
	return float64(d.Num) / float64(d.Den)
}

// IsDefined reports whether the denominator is non-zero.
func (d ExactDistance) IsDefined() bool {
	return d.Den != 0
}

// Compare returns -1, 0 or +1 as d is less than, equal to or greater than e.
func (d ExactDistance) Compare(e ExactDistance) int {
	l := int64(d.Num) * int64(e.Den)
	r := int64(e.Num) * int64(d.Den)
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	}
	return 0
}

// LessThan reports d < e.
func (d ExactDistance) LessThan(e ExactDistance) bool {
	return d.Compare(e) < 0
}

// LessEqThan reports d <= e.
func (d ExactDistance) LessEqThan(e ExactDistance) bool {
	return d.Compare(e) <= 0
}

// GreaterThan reports d > e.
func (d ExactDistance) GreaterThan(e ExactDistance) bool {
	return d.Compare(e) > 0
}

// GreaterEqThan reports d >= e.
func (d ExactDistance) GreaterEqThan(e ExactDistance) bool {
	return d.Compare(e) >= 0
}

// Equals reports whether d and e denote the same rational.
func (d ExactDistance) Equals(e ExactDistance) bool {
	return d.Compare(e) == 0
}

// SumWithOneHalf returns d + 1/2, keeping the denominator small.
func (d ExactDistance) SumWithOneHalf() ExactDistance {
	if d.Den%2 != 0 {
		return ExactDistance{Num: 2*d.Num + d.Den, Den: 2 * d.Den}
	}
	return ExactDistance{Num: d.Num + d.Den/2, Den: d.Den}
}
