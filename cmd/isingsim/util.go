package main

import "sort"

func scale(data []float64, by float64) []float64 {
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = v / by
	}
	return out
}

// downsample keeps at most n evenly strided points.
func downsample(data []float64, n int) []float64 {
	if len(data) <= n || n <= 0 {
		return data
	}
	stride := (len(data) + n - 1) / n
	out := make([]float64, 0, n)
	for i := 0; i < len(data); i += stride {
		out = append(out, data[i])
	}
	return out
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
