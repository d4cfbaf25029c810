// Package median maintains exact running medians over non-negative integer amounts.
//
// A Tracker keeps two dense frequency histograms:
//   - lower: counts for every value in [0, top], top bucket always non-zero
//   - upper: counts for every value in [min, min+len-1], bottom bucket always non-zero
//
// Every value in lower is <= every value in upper. While the count is odd the
// median is held by the tracker itself and both histograms have equal size.
// Min/max lookups are O(1); the cost moves to reallocation when a value lands
// far outside the range observed so far.
//
// The package also owns the rounding rules used when a median falls between
// two integers.
package median
