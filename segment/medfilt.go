package segment

import "sort"

// MedianFilter smooths xs with a sliding median of the given width. Samples
// beyond the edges count as zero. Even widths grow to the next odd width.
func MedianFilter(xs []float64, kernel int) []float64 {
	if kernel < 1 {
		kernel = 1
	}
	if kernel%2 == 0 {
		kernel++
	}
	half := kernel / 2

	res := make([]float64, len(xs))
	window := make([]float64, kernel)
	for i := range xs {
		for j := 0; j < kernel; j++ {
			idx := i - half + j
			if idx < 0 || idx >= len(xs) {
				window[j] = 0
			} else {
				window[j] = xs[idx]
			}
		}
		sort.Float64s(window)
		res[i] = window[half]
	}
	return res
}
