package analysis

import (
	"errors"
	"fmt"
	"math"
)

var ErrTooFewSamples = errors.New("analysis: not enough samples")

// Autocorrelation returns ρ(0..maxLag) of the mean-subtracted series,
// normalised so that ρ(0) = 1. maxLag is capped at len(data)-1. A constant
// series yields ρ(0) = 1 and zeros elsewhere.
func Autocorrelation(data []float64, maxLag int) []float64 {
	n := len(data)
	if n == 0 {
		return nil
	}
	if maxLag >= n {
		maxLag = n - 1
	}
	if maxLag < 0 {
		maxLag = 0
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)

	// zero padding to 2n avoids circular wraparound
	size := nextPow2(2 * n)
	x := make([]complex128, size)
	for i, v := range data {
		x[i] = complex(v-mean, 0)
	}

	spec := fft(x)
	for i, v := range spec {
		spec[i] = complex(real(v)*real(v)+imag(v)*imag(v), 0)
	}
	raw := ifft(spec)

	acf := make([]float64, maxLag+1)
	c0 := real(raw[0])
	acf[0] = 1
	if c0 <= 1e-12*float64(n) {
		return acf
	}
	for t := 1; t <= maxLag; t++ {
		acf[t] = real(raw[t]) / c0
	}
	return acf
}

// IntegratedTime returns τ = 1/2 + Σ ρ(t), summing until ρ first drops to
// zero or below.
func IntegratedTime(data []float64) float64 {
	acf := Autocorrelation(data, len(data)-1)
	tau := 0.5
	for t := 1; t < len(acf); t++ {
		if acf[t] <= 0 {
			break
		}
		tau += acf[t]
	}
	return tau
}

// BlockError splits data into equal blocks, discarding the remainder, and
// returns the overall mean and the standard error of the block means.
func BlockError(data []float64, blocks int) (mean, stderr float64, err error) {
	if blocks < 2 || len(data) < blocks {
		return 0, 0, fmt.Errorf("%w: %d samples for %d blocks", ErrTooFewSamples, len(data), blocks)
	}

	size := len(data) / blocks
	means := make([]float64, blocks)
	for b := 0; b < blocks; b++ {
		sum := 0.0
		for _, v := range data[b*size : (b+1)*size] {
			sum += v
		}
		means[b] = sum / float64(size)
		mean += means[b]
	}
	mean /= float64(blocks)

	ss := 0.0
	for _, m := range means {
		ss += (m - mean) * (m - mean)
	}
	stderr = math.Sqrt(ss/float64(blocks-1)) / math.Sqrt(float64(blocks))
	return mean, stderr, nil
}
