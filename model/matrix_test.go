package model

import (
	"math"
	"testing"
)

func TestComplement(t *testing.T) {
	w := [][]float64{{0., 1.}, {0., 0.}}
	a, err := complement(w, []float64{1000., 500.})
	if err != nil {
		t.Fatal(err)
	}
	want := [][]float64{{-1., 0.}, {2., -1.}}
	for i := range want {
		for j := range want[i] {
			if math.Abs(a[i][j]-want[i][j]) > 1e-12 {
				t.Errorf("a[%d][%d] = %v, want %v", i, j, a[i][j], want[i][j])
			}
		}
	}
}

func TestComplementConserves(t *testing.T) {
	// with rows summing to one, area-weighted net exchange sums to zero
	w := [][]float64{{0., .6, .4}, {0., 0., 1.}, {0., 0., 1.}}
	area := []float64{1200., 800., 400.}
	a, err := complement(w, area)
	if err != nil {
		t.Fatal(err)
	}
	q := []float64{3e-4, 1e-4, 2e-4}
	s := 0.
	for i := range a {
		qn := 0.
		for j := range a[i] {
			qn += a[i][j] * q[j]
		}
		s += qn * area[i]
	}
	if math.Abs(s) > 1e-12 {
		t.Errorf("net exchange volume = %v, want 0", s)
	}
}

func TestComplementDimensions(t *testing.T) {
	if _, err := complement([][]float64{{0., 1.}}, []float64{1., 1.}); err == nil {
		t.Error("non-square matrix accepted")
	}
	if _, err := complement([][]float64{{0., 1.}, {1., 0.}}, []float64{1.}); err == nil {
		t.Error("area-length mismatch accepted")
	}
	if _, err := complement([][]float64{{0., -1.}, {0., 0.}}, []float64{1., 1.}); err == nil {
		t.Error("negative weight accepted")
	}
}

func TestExportFrac(t *testing.T) {
	e := exportFrac([][]float64{{0., .7}, {0., 1.}})
	if math.Abs(e[0]-.3) > 1e-12 || e[1] != 0. {
		t.Errorf("export fractions = %v, want [0.3 0]", e)
	}
}
