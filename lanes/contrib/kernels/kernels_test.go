package kernels

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanesim/go-lanes/lanes"
)

var (
	testWidths = []int{1, 2, 4, 8, 16, 32}
	testSizes  = []int{0, 1, 3, 4, 7, 8, 15, 16, 17, 63, 64, 100, 257}
)

func randomFloats(rng *rand.Rand, n int, lo, hi float32) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = lo + rng.Float32()*(hi-lo)
	}
	return out
}

func randomExponents(rng *rand.Rand, n int, hi int32) []int32 {
	out := make([]int32, n)
	for i := range out {
		out[i] = rng.Int32N(hi + 1)
	}
	return out
}

func filled(n int, v float32) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestAbsVectorExample(t *testing.T) {
	u := lanes.MustNew(4)
	output := make([]float32, 4)

	AbsVector(u, []float32{-1, 2, -3, 4}, output)

	assert.Equal(t, []float32{1, 2, 3, 4}, output)
}

func TestAbsVectorMatchesSerial(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for _, w := range testWidths {
		u := lanes.MustNew(w)
		for _, n := range testSizes {
			values := randomFloats(rng, n, -10, 10)
			got := make([]float32, n)
			want := make([]float32, n)

			AbsVector(u, values, got)
			AbsSerial(values, want)

			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("W=%d N=%d: AbsVector mismatch (-want +got):\n%s", w, n, diff)
			}
			for i, v := range values {
				require.Equal(t, float32(math.Abs(float64(v))), got[i], "W=%d N=%d i=%d", w, n, i)
			}
		}
	}
}

func TestClampedExpVectorExample(t *testing.T) {
	u := lanes.MustNew(4)
	output := make([]float32, 4)

	ClampedExpVector(u, []float32{2, 2, 2, 2}, []int32{0, 1, 2, 20}, output)

	assert.Equal(t, []float32{1, 2, 4, 9.999999}, output)
	// count = y - 1 is 19 for the last lane, so the tile runs 19 rounds.
	assert.Equal(t, 19, u.Stats().PerOp[lanes.OpMul])
}

func TestClampedExpVectorZeroExponent(t *testing.T) {
	u := lanes.MustNew(4)
	values := []float32{0, -3, float32(math.Inf(1)), 1e30, 0.5}
	output := make([]float32, len(values))

	ClampedExpVector(u, values, make([]int32, len(values)), output)

	for i, got := range output {
		assert.Equal(t, float32(1), got, "lane %d", i)
	}
}

func TestClampedExpVectorMatchesSerial(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for _, w := range testWidths {
		u := lanes.MustNew(w)
		for _, n := range testSizes {
			values := randomFloats(rng, n, -2, 2)
			exponents := randomExponents(rng, n, 10)
			got := make([]float32, n)
			want := make([]float32, n)

			ClampedExpVector(u, values, exponents, got)
			ClampedExpSerial(values, exponents, want)

			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("W=%d N=%d: ClampedExpVector mismatch (-want +got):\n%s", w, n, diff)
			}
			for i, v := range got {
				assert.LessOrEqual(t, v, float32(ClampLimit), "W=%d N=%d i=%d", w, n, i)
			}
		}
	}
}

func TestClampedExpVectorNegativeExponent(t *testing.T) {
	u := lanes.MustNew(2)
	got := make([]float32, 2)
	want := make([]float32, 2)

	ClampedExpVector(u, []float32{3, 20}, []int32{-2, -1}, got)
	ClampedExpSerial([]float32{3, 20}, []int32{-2, -1}, want)

	assert.Equal(t, want, got)
	assert.Equal(t, []float32{3, ClampLimit}, got)
}

func TestArraySumVectorExample(t *testing.T) {
	u := lanes.MustNew(4)

	got := ArraySumVector(u, []float32{1, 1, 1, 1, 1, 1, 1, 1})

	assert.Equal(t, float32(8), got)
}

func TestArraySumVectorExact(t *testing.T) {
	// Small integers sum exactly in float32, so every width must agree.
	rng := rand.New(rand.NewPCG(5, 6))
	for _, w := range testWidths {
		u := lanes.MustNew(w)
		for _, n := range testSizes {
			values := make([]float32, n)
			for i := range values {
				values[i] = float32(rng.IntN(201) - 100)
			}
			assert.Equal(t, ArraySumSerial(values), ArraySumVector(u, values), "W=%d N=%d", w, n)
		}
	}
}

func TestArraySumVectorTolerance(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 8))
	for _, w := range testWidths {
		u := lanes.MustNew(w)
		values := make([]float64, 4096)
		for i := range values {
			values[i] = rng.Float64()
		}
		want := ArraySumSerial(values)
		got := ArraySumVector(u, values)
		assert.InEpsilon(t, want, got, 1e-5, "W=%d", w)
	}
}

func TestArraySumVectorIgnoresStaleTailLanes(t *testing.T) {
	u := lanes.MustNew(8)
	// The first tile leaves 1000s in the temp register; the 3-element tail
	// must not pick them up.
	values := append(filled(8, 1000), 1, 2, 3)

	assert.Equal(t, float32(8006), ArraySumVector(u, values))
}

func TestMaskedStoreKeepsSentinels(t *testing.T) {
	const sentinel = float32(-12345)
	for _, w := range testWidths {
		u := lanes.MustNew(w)
		for _, n := range []int{1, 5, 13, 30} {
			values := filled(n, -2)
			exponents := make([]int32, n)
			for i := range exponents {
				exponents[i] = 3
			}

			absOut := filled(n+w, sentinel)
			AbsVector(u, values, absOut)
			expOut := filled(n+w, sentinel)
			ClampedExpVector(u, values, exponents, expOut)

			for i := n; i < n+w; i++ {
				require.Equal(t, sentinel, absOut[i], "AbsVector W=%d N=%d wrote index %d", w, n, i)
				require.Equal(t, sentinel, expOut[i], "ClampedExpVector W=%d N=%d wrote index %d", w, n, i)
			}
			assert.Equal(t, filled(n, 2), absOut[:n])
			assert.Equal(t, filled(n, -8), expOut[:n])
		}
	}
}

func TestKernelsAreIdempotent(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 10))
	u := lanes.MustNew(8)
	values := randomFloats(rng, 37, -3, 3)
	exponents := randomExponents(rng, 37, 6)

	run := func() ([]float32, []float32, float32) {
		abs := make([]float32, len(values))
		exp := make([]float32, len(values))
		AbsVector(u, values, abs)
		ClampedExpVector(u, values, exponents, exp)
		return abs, exp, ArraySumVector(u, values)
	}

	abs1, exp1, sum1 := run()
	abs2, exp2, sum2 := run()
	assert.Equal(t, abs1, abs2)
	assert.Equal(t, exp1, exp2)
	assert.Equal(t, sum1, sum2)
}

func TestKernelsRejectShortBuffers(t *testing.T) {
	u := lanes.MustNew(4)
	assert.Panics(t, func() { AbsVector(u, make([]float32, 5), make([]float32, 4)) })
	assert.Panics(t, func() {
		ClampedExpVector(u, make([]float32, 5), make([]int32, 4), make([]float32, 5))
	})
	assert.Panics(t, func() {
		ClampedExpVector(u, make([]float32, 5), make([]int32, 5), make([]float32, 3))
	})
}

func TestUtilization(t *testing.T) {
	u := lanes.MustNew(4)

	AbsVector(u, []float32{1, 2, 3, 4, 5, 6, 7, 8}, make([]float32, 8))
	s := u.Stats()
	// Per tile: load, lt, sub, load, store.
	assert.Equal(t, 10, s.Instructions)
	// No element is negative, so the sub runs on zero lanes.
	assert.InDelta(t, 32.0/40.0, s.Utilization(), 1e-12)

	u.ResetStats()
	AbsVector(u, []float32{-1}, make([]float32, 1))
	s = u.Stats()
	assert.Equal(t, 5, s.Instructions)
	assert.Equal(t, 4, s.ActiveLanes)
}
