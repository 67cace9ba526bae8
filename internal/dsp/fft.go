// Package dsp provides the pure, allocation-free-on-hot-path primitives the
// spectrogram, peak-picking, and feature pipelines are built from: an
// iterative Cooley-Tukey FFT, cached window functions, mel/chroma filter
// banks, and a DCT-II.
package dsp

import (
	"math"
	"math/cmplx"
)

// FFT computes the forward complex FFT of x in place using an iterative
// Cooley-Tukey radix-2 algorithm. len(x) must be a power of two; this is a
// precondition, not a runtime check, per the DSP contract of pure total
// functions over fixed-size buffers.
func FFT(x []complex128) {
	n := len(x)
	if n <= 1 {
		return
	}

	bits := bitLength(n) - 1
	for i := 0; i < n; i++ {
		j := reverseBits(i, bits)
		if j > i {
			x[i], x[j] = x[j], x[i]
		}
	}

	for size := 2; size <= n; size <<= 1 {
		half := size / 2
		angle := -2 * math.Pi / float64(size)
		wm := cmplx.Exp(complex(0, angle))
		for start := 0; start < n; start += size {
			w := complex(1, 0)
			for k := 0; k < half; k++ {
				t := w * x[start+k+half]
				u := x[start+k]
				x[start+k] = u + t
				x[start+k+half] = u - t
				w *= wm
			}
		}
	}
}

// Magnitude computes a real-to-complex forward FFT over the real-valued
// window-length buffer `signal` and writes the W/2+1 non-negative magnitudes
// into `out`. `scratch` must have the same length as `signal` and is
// clobbered; callers supply both buffers to keep the hot path allocation-free.
func Magnitude(signal []float64, scratch []complex128, out []float64) {
	n := len(signal)
	for i, s := range signal {
		scratch[i] = complex(s, 0)
	}
	FFT(scratch)
	bins := n/2 + 1
	for k := 0; k < bins; k++ {
		out[k] = cmplx.Abs(scratch[k])
	}
}

func bitLength(n int) int {
	bits := 0
	for n > 1 {
		n >>= 1
		bits++
	}
	return bits + 1
}

func reverseBits(num, bits int) int {
	result := 0
	for i := 0; i < bits; i++ {
		result = (result << 1) | (num & 1)
		num >>= 1
	}
	return result
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
