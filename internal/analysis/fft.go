package analysis

import (
	"math"
	"math/cmplx"
)

// FFT computes the discrete Fourier transform of a real series whose length
// is a power of two.
func FFT(data []float64) []complex128 {
	x := make([]complex128, len(data))
	for i, v := range data {
		x[i] = complex(v, 0)
	}
	return fft(x)
}

func fft(x []complex128) []complex128 {
	n := len(x)
	if n <= 1 {
		result := make([]complex128, n)
		copy(result, x)
		return result
	}

	if n%2 != 0 {
		panic("fft requires power of 2 length")
	}

	even := make([]complex128, n/2)
	odd := make([]complex128, n/2)

	for i := 0; i < n/2; i++ {
		even[i] = x[2*i]
		odd[i] = x[2*i+1]
	}

	feven := fft(even)
	fodd := fft(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}

	return result
}

// ifft inverts fft using the conjugation identity.
func ifft(x []complex128) []complex128 {
	n := len(x)
	conj := make([]complex128, n)
	for i, v := range x {
		conj[i] = cmplx.Conj(v)
	}
	y := fft(conj)
	for i, v := range y {
		y[i] = cmplx.Conj(v) / complex(float64(n), 0)
	}
	return y
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

// PowerSpectrum returns |X_k| for the lower half of the spectrum. The
// series is zero-padded to a power of two.
func PowerSpectrum(data []float64) []float64 {
	padded := make([]float64, nextPow2(len(data)))
	copy(padded, data)

	spec := FFT(padded)
	ps := make([]float64, len(spec)/2)

	for i := range ps {
		ps[i] = cmplx.Abs(spec[i])
	}

	return ps
}
