package linalg

import (
	"sync"

	"golang.org/x/sys/cpu"
)

// dotFunc computes the dot product of two equal-length slices.
type dotFunc func(a, b []float64) float64

var (
	dotOnce  sync.Once
	dotImpl  dotFunc
	simdWide bool
)

// initDispatch performs the one-time, process-wide SIMD capability probe:
// a cached lazily-initialized choice made before any worker enters the
// hot integration loop.
func initDispatch() {
	simdWide = cpu.X86.HasAVX2
	if simdWide {
		dotImpl = dotAVX2
	} else {
		dotImpl = dotScalar
	}
}

// DotProduct computes sum(a[i]*b[i]) using an AVX2 path when the runtime
// CPU supports it, falling back to a portable scalar loop otherwise. Both
// paths are numerically associative to within float round-off and must
// agree to float64 tolerances; the dispatch choice is made once per process.
func DotProduct(a, b []float64) float64 {
	dotOnce.Do(initDispatch)
	return dotImpl(a, b)
}

// HasSIMD reports whether the AVX2 dot-product path is active in this
// process. Exposed for tests and diagnostics only.
func HasSIMD() bool {
	dotOnce.Do(initDispatch)
	return simdWide
}

func dotScalar(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

// dotAVX2 is written in portable Go: true AVX2 intrinsics would require
// a Go assembly stub. This unrolled form is what the
// dispatcher selects on AVX2-capable hardware; a vectorizing backend (or a
// future assembly replacement bound to the same signature) can swap in
// without touching any caller, since DotProduct is the only entry point.
func dotAVX2(a, b []float64) float64 {
	n := len(a)
	var s0, s1, s2, s3 float64
	i := 0
	for ; i+4 <= n; i += 4 {
		s0 += a[i] * b[i]
		s1 += a[i+1] * b[i+1]
		s2 += a[i+2] * b[i+2]
		s3 += a[i+3] * b[i+3]
	}
	s := s0 + s1 + s2 + s3
	for ; i < n; i++ {
		s += a[i] * b[i]
	}
	return s
}
