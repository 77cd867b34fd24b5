package signal

import (
	"math"
	"testing"
)

func TestNormalizeL2_UnitNorm(t *testing.T) {
	vectors := [][]float64{
		{1, 0, 0},
		{3, 4},
		{0.2, 0.9, 0.1, 0.5},
		{-2, 7, 0.001},
		{1e6, 1e6},
	}

	for _, v := range vectors {
		out := NormalizeL2(v)

		var sumSq float64
		for _, x := range out {
			sumSq += x * x
		}
		if math.Abs(math.Sqrt(sumSq)-1) > 1e-9 {
			t.Errorf("NormalizeL2(%v): norm = %f, want 1", v, math.Sqrt(sumSq))
		}
	}
}

func TestNormalizeL2_AllZero(t *testing.T) {
	out := NormalizeL2([]float64{0, 0, 0})
	for i, x := range out {
		if x != 0 {
			t.Errorf("Expected zero vector, got %f at index %d", x, i)
		}
	}

	if len(NormalizeL2(nil)) != 0 {
		t.Error("Expected empty output for nil input")
	}
}

func TestNormalizeL2_NonFinite(t *testing.T) {
	out := NormalizeL2([]float64{math.NaN(), math.Inf(1), 3, 4})

	for i, x := range out {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			t.Fatalf("Non-finite output %f at index %d", x, i)
		}
	}
	if math.Abs(out[2]-0.6) > 1e-9 || math.Abs(out[3]-0.8) > 1e-9 {
		t.Errorf("Expected (0.6, 0.8) for finite components, got (%f, %f)", out[2], out[3])
	}
}

func TestClamp01(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.42, 0.42},
		{1, 1},
		{7.3, 1},
		{math.NaN(), 0},
	}

	for _, c := range cases {
		if got := Clamp01(c.in); got != c.want {
			t.Errorf("Clamp01(%f) = %f, want %f", c.in, got, c.want)
		}
	}
}
