package median

// Rounding converts the exact quotient sum/n (n > 0, sum >= 0) to an integer.
type Rounding func(sum, n int64) int64

// HalfUp rounds fractions below .5 down and fractions of .5 or more up.
// The running tracker uses it for even-count medians.
func HalfUp(sum, n int64) int64 {
	q, r := sum/n, sum%n
	if 2*r >= n {
		q++
	}
	return q
}

// HalfEven rounds to the nearest integer, breaking .5 ties toward the even
// neighbour.
func HalfEven(sum, n int64) int64 {
	q, r := sum/n, sum%n
	switch {
	case 2*r > n:
		q++
	case 2*r == n && q%2 == 1:
		q++
	}
	return q
}

// RoundingByName resolves a configured rounding mode.
func RoundingByName(name string) (Rounding, bool) {
	switch name {
	case "half_up":
		return HalfUp, true
	case "half_even":
		return HalfEven, true
	default:
		return nil, false
	}
}

// midpoint is the half-up average of two amounts.
func midpoint(a, b int64) int64 {
	return HalfUp(a+b, 2)
}
