package median

// lowerHistogram counts values in [0, top]. counts[v] is the number of
// inserted values equal to v.
type lowerHistogram struct {
	counts   []int64
	size     int64
	reallocs int
}

// top returns the largest value held, or -1 when empty.
func (h *lowerHistogram) top() int64 {
	return int64(len(h.counts)) - 1
}

// add inserts v, growing the array so that v becomes the top index.
func (h *lowerHistogram) add(v int64) {
	if v > h.top() {
		grown := make([]int64, v+1)
		copy(grown, h.counts)
		h.counts = grown
		h.reallocs++
	}
	h.counts[v]++
	h.size++
}

// popTop removes one occurrence of the top value and returns it.
// Must not be called on an empty histogram.
func (h *lowerHistogram) popTop() int64 {
	t := h.top()
	h.counts[t]--
	h.size--
	h.trim()
	return t
}

// trim drops empty trailing buckets until the top bucket is non-zero.
func (h *lowerHistogram) trim() {
	n := len(h.counts)
	for n > 0 && h.counts[n-1] == 0 {
		n--
	}
	h.counts = h.counts[:n]
}

// upperHistogram counts values in [min, min+len-1]. counts[i] is the number
// of inserted values equal to min+i.
type upperHistogram struct {
	counts   []int64
	min      int64
	size     int64
	reallocs int
}

// bottom returns the smallest value held. Only meaningful when size > 0.
func (h *upperHistogram) bottom() int64 {
	return h.min
}

// last returns the largest value the array covers.
func (h *upperHistogram) last() int64 {
	return h.min + int64(len(h.counts)) - 1
}

// add inserts v. Values past either end reallocate the array; values below
// min shift the existing buckets and move min down to v.
func (h *upperHistogram) add(v int64) {
	switch {
	case len(h.counts) == 0:
		h.counts = []int64{0}
		h.min = v
		h.reallocs++
	case v < h.min:
		shift := h.min - v
		grown := make([]int64, shift+int64(len(h.counts)))
		copy(grown[shift:], h.counts)
		h.counts = grown
		h.min = v
		h.reallocs++
	case v > h.last():
		grown := make([]int64, v-h.min+1)
		copy(grown, h.counts)
		h.counts = grown
		h.reallocs++
	}
	h.counts[v-h.min]++
	h.size++
}

// popBottom removes one occurrence of the smallest value and returns it.
// Must not be called on an empty histogram.
func (h *upperHistogram) popBottom() int64 {
	b := h.min
	h.counts[0]--
	h.size--
	h.trim()
	return b
}

// trim drops empty leading buckets, advancing min, until the bottom bucket
// is non-zero.
func (h *upperHistogram) trim() {
	for len(h.counts) > 0 && h.counts[0] == 0 {
		h.counts = h.counts[1:]
		h.min++
	}
}
