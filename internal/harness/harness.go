// Package harness checks the vector kernels against their scalar references
// and collects lane utilization for each run.
package harness

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/samber/lo"

	"github.com/lanesim/go-lanes/lanes"
	"github.com/lanesim/go-lanes/lanes/contrib/kernels"
)

// Kernel names as they appear in results and reports.
const (
	KernelAbs        = "abs"
	KernelClampedExp = "clampedExp"
	KernelArraySum   = "arraySum"
)

// SumTolerance bounds the array-sum error relative to the sum of absolute
// values, which stays meaningful when the sum itself cancels to near zero.
const SumTolerance = 1e-5

// Inputs are the arrays every kernel run reads.
type Inputs struct {
	Values    []float32
	Exponents []int32
}

// Generate builds size values in [-10, 10) and exponents in [0, 10] from a
// deterministic generator seeded with seed.
func Generate(size int, seed uint64) Inputs {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return Inputs{
		Values: lo.Times(size, func(int) float32 {
			return -10 + 20*rng.Float32()
		}),
		Exponents: lo.Times(size, func(int) int32 {
			return rng.Int32N(11)
		}),
	}
}

// Result is the outcome of one kernel on one unit.
type Result struct {
	Kernel string
	Width  int
	Size   int
	// Err is a *MismatchError when the kernel disagreed with its reference.
	Err   error
	Stats lanes.Stats
}

// Passed reports whether the kernel matched its reference.
func (r Result) Passed() bool {
	return r.Err == nil
}

// MismatchError reports the first element where a kernel disagreed with
// its scalar reference.
type MismatchError struct {
	Kernel string
	Width  int
	Index  int
	Got    float64
	Want   float64
}

func (e *MismatchError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s (W=%d): got %v, want %v", e.Kernel, e.Width, e.Got, e.Want)
	}
	return fmt.Sprintf("%s (W=%d): index %d: got %v, want %v", e.Kernel, e.Width, e.Index, e.Got, e.Want)
}

// Runner executes kernels and logs their outcome.
type Runner struct {
	logger *slog.Logger
}

// NewRunner returns a Runner logging to logger, or to lanes.Logger() if nil.
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = lanes.Logger()
	}
	return &Runner{logger: logger}
}

// Run executes every kernel on u, one after the other, resetting u's
// statistics before each so that every Result carries only its own counts.
// It stops early and returns ctx.Err() if ctx is cancelled between kernels.
func (r *Runner) Run(ctx context.Context, u *lanes.Unit, in Inputs) ([]Result, error) {
	steps := []struct {
		name string
		run  func() error
	}{
		{KernelAbs, func() error { return checkAbs(u, in) }},
		{KernelClampedExp, func() error { return checkClampedExp(u, in) }},
		{KernelArraySum, func() error { return checkArraySum(u, in) }},
	}

	results := make([]Result, 0, len(steps))
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		u.ResetStats()
		err := step.run()
		res := Result{
			Kernel: step.name,
			Width:  u.Width(),
			Size:   len(in.Values),
			Err:    err,
			Stats:  u.Stats(),
		}
		r.log(ctx, res)
		results = append(results, res)
	}
	return results, nil
}

func (r *Runner) log(ctx context.Context, res Result) {
	attrs := []any{
		"kernel", res.Kernel,
		"width", res.Width,
		"size", res.Size,
		"instructions", res.Stats.Instructions,
		"utilization", res.Stats.Utilization(),
	}
	if res.Err != nil {
		r.logger.WarnContext(ctx, "kernel mismatch", append(attrs, "err", res.Err)...)
		return
	}
	r.logger.InfoContext(ctx, "kernel passed", attrs...)
}

func checkAbs(u *lanes.Unit, in Inputs) error {
	got := make([]float32, len(in.Values))
	want := make([]float32, len(in.Values))
	kernels.AbsVector(u, in.Values, got)
	kernels.AbsSerial(in.Values, want)
	return firstMismatch(KernelAbs, u.Width(), got, want)
}

func checkClampedExp(u *lanes.Unit, in Inputs) error {
	got := make([]float32, len(in.Values))
	want := make([]float32, len(in.Values))
	kernels.ClampedExpVector(u, in.Values, in.Exponents, got)
	kernels.ClampedExpSerial(in.Values, in.Exponents, want)
	return firstMismatch(KernelClampedExp, u.Width(), got, want)
}

func checkArraySum(u *lanes.Unit, in Inputs) error {
	got := kernels.ArraySumVector(u, in.Values)
	want := kernels.ArraySumSerial(in.Values)

	scale := lo.SumBy(in.Values, func(v float32) float64 {
		return math.Abs(float64(v))
	})
	if math.Abs(float64(got)-float64(want)) > SumTolerance*max(1, scale) {
		return &MismatchError{Kernel: KernelArraySum, Width: u.Width(), Index: -1, Got: float64(got), Want: float64(want)}
	}
	return nil
}

func firstMismatch(kernel string, width int, got, want []float32) error {
	for i := range want {
		if got[i] != want[i] {
			return &MismatchError{Kernel: kernel, Width: width, Index: i, Got: float64(got[i]), Want: float64(want[i])}
		}
	}
	return nil
}
