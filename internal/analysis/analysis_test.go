package analysis

import (
	"errors"
	"math"
	"testing"
)

func TestFFTImpulse(t *testing.T) {
	data := []float64{1, 0, 0, 0, 0, 0, 0, 0}
	for k, v := range FFT(data) {
		if math.Abs(real(v)-1) > 1e-12 || math.Abs(imag(v)) > 1e-12 {
			t.Errorf("FFT[%d] = %v, want 1", k, v)
		}
	}
}

func TestPowerSpectrumPeak(t *testing.T) {
	n := 64
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Cos(2 * math.Pi * 4 * float64(i) / float64(n))
	}

	ps := PowerSpectrum(data)
	if len(ps) != n/2 {
		t.Fatalf("expected %d bins, got %d", n/2, len(ps))
	}
	peak := 0
	for i := range ps {
		if ps[i] > ps[peak] {
			peak = i
		}
	}
	if peak != 4 {
		t.Errorf("expected peak at bin 4, got %d", peak)
	}
}

func TestAutocorrelationAlternating(t *testing.T) {
	n := 50
	data := make([]float64, n)
	for i := range data {
		data[i] = 1
		if i%2 == 1 {
			data[i] = -1
		}
	}

	acf := Autocorrelation(data, 3)
	if len(acf) != 4 {
		t.Fatalf("expected 4 lags, got %d", len(acf))
	}
	if math.Abs(acf[0]-1) > 1e-9 {
		t.Errorf("acf[0] = %f, want 1", acf[0])
	}
	want := -float64(n-1) / float64(n)
	if math.Abs(acf[1]-want) > 1e-9 {
		t.Errorf("acf[1] = %f, want %f", acf[1], want)
	}
	if IntegratedTime(data) != 0.5 {
		t.Errorf("IntegratedTime = %f, want 0.5", IntegratedTime(data))
	}
}

func TestAutocorrelationConstant(t *testing.T) {
	acf := Autocorrelation([]float64{3, 3, 3, 3}, 10)
	if len(acf) != 4 {
		t.Fatalf("expected maxLag capped to 3, got %d lags", len(acf)-1)
	}
	if acf[0] != 1 || acf[1] != 0 || acf[3] != 0 {
		t.Errorf("unexpected acf for constant series: %v", acf)
	}
	if Autocorrelation(nil, 5) != nil {
		t.Error("expected nil acf for empty series")
	}
}

func TestIntegratedTimeCorrelated(t *testing.T) {
	data := make([]float64, 200)
	for i := range data {
		if (i/10)%2 == 0 {
			data[i] = 1
		} else {
			data[i] = -1
		}
	}
	if tau := IntegratedTime(data); tau <= 1 {
		t.Errorf("expected τ > 1 for a slowly varying series, got %f", tau)
	}
}

func TestBlockError(t *testing.T) {
	mean, stderr, err := BlockError([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9}, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(mean-4.5) > 1e-12 {
		t.Errorf("mean = %f, want 4.5", mean)
	}
	want := math.Sqrt(20.0/3.0) / 2
	if math.Abs(stderr-want) > 1e-12 {
		t.Errorf("stderr = %f, want %f", stderr, want)
	}

	if _, _, err := BlockError([]float64{1, 2}, 4); !errors.Is(err, ErrTooFewSamples) {
		t.Errorf("expected ErrTooFewSamples, got %v", err)
	}
}
