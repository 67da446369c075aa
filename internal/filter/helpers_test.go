package filter

import "strconv"

// Test helper functions shared across filter tests.

// createTestPlane creates a plane filled with v.
func createTestPlane(w, h int, v float32) *Plane {
	p := NewPlane(w, h)
	p.Fill(v)
	return p
}

// absf32 returns the absolute value of a float32.
func absf32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// planeSum returns the sum of all samples.
func planeSum(p *Plane) float64 {
	var s float64
	for _, v := range p.Pix {
		s += float64(v)
	}
	return s
}

// fmtRadius formats a radius for benchmark names.
func fmtRadius(r float64) string {
	return "r=" + strconv.FormatFloat(r, 'g', -1, 64)
}
