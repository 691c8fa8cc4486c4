package rowvec

import (
	"math"
	"unsafe"

	"golang.org/x/sys/cpu"
)

// minDefaultWidth is the smallest width New picks for any element type.
const minDefaultWidth = 16

// WidthFor returns the row width that balances row count against row length
// for n elements: floor(sqrt(n)), never less than 1.
func WidthFor(n int) int {
	if n <= 1 {
		return 1
	}
	w := int(math.Sqrt(float64(n)))
	// correct float rounding at perfect squares
	for w*w > n {
		w--
	}
	for (w+1)*(w+1) <= n {
		w++
	}
	return w
}

// DefaultWidth returns the width used by New: at least one cache line worth of
// elements and never below minDefaultWidth.
func DefaultWidth[T any]() int {
	var zero T
	size := int(unsafe.Sizeof(zero))
	line := int(unsafe.Sizeof(cpu.CacheLinePad{}))
	w := minDefaultWidth
	if size > 0 && line/size > w {
		w = line / size
	}
	return w
}
