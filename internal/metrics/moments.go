package metrics

// moments accumulates the first, second and fourth raw moments of a sample.
type moments struct {
	n    int
	sum  float64
	sum2 float64
	sum4 float64
}

func (m *moments) add(x float64) {
	x2 := x * x
	m.n++
	m.sum += x
	m.sum2 += x2
	m.sum4 += x2 * x2
}

func (m *moments) mean() float64 {
	if m.n == 0 {
		return 0
	}
	return m.sum / float64(m.n)
}

func (m *moments) meanSq() float64 {
	if m.n == 0 {
		return 0
	}
	return m.sum2 / float64(m.n)
}

func (m *moments) meanQuad() float64 {
	if m.n == 0 {
		return 0
	}
	return m.sum4 / float64(m.n)
}

func (m *moments) variance() float64 {
	mu := m.mean()
	v := m.meanSq() - mu*mu
	if v < 0 {
		return 0
	}
	return v
}

func (m *moments) reset() { *m = moments{} }
