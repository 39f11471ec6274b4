// Copyright 2026 go-lanes Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command vectorop runs the vector kernels against their scalar references
// and prints lane utilization.
//
// Usage:
//
//	vectorop -s 10000                  # all kernels at the default width
//	vectorop run -w 8 -l               # width 8 with a per-instruction trace
//	vectorop sweep --widths 2,4,8,16   # one unit per width, run in parallel
//
// The default width comes from the host SIMD registers and can be
// overridden with LANES_WIDTH. Exit status is 1 if any kernel disagrees
// with its reference.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lanesim/go-lanes/internal/harness"
	"github.com/lanesim/go-lanes/lanes"
	"github.com/lanesim/go-lanes/lanes/contrib/workerpool"
)

var errMismatch = errors.New("kernel output differs from the scalar reference")

type options struct {
	size    int
	seed    uint64
	verbose bool
	trace   bool
	width   int
	widths  []int
	workers int
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "vectorop",
		Short:         "Check emulated vector kernels and report lane utilization",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runKernels(cmd.Context(), stdout, stderr, opts)
		},
	}
	pf := root.PersistentFlags()
	pf.IntVarP(&opts.size, "size", "s", 10000, "number of elements per array")
	pf.Uint64Var(&opts.seed, "seed", 1, "seed for the generated inputs")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "log at debug level")
	pf.BoolVarP(&opts.trace, "log", "l", false, "log every vector instruction with its mask")
	root.Flags().IntVarP(&opts.width, "width", "w", 0, "vector width (0 = host default)")

	run := &cobra.Command{
		Use:   "run",
		Short: "Run all kernels on one unit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runKernels(cmd.Context(), stdout, stderr, opts)
		},
	}
	run.Flags().IntVarP(&opts.width, "width", "w", 0, "vector width (0 = host default)")

	sweep := &cobra.Command{
		Use:   "sweep",
		Short: "Run all kernels once per width in parallel",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return sweepKernels(cmd.Context(), stdout, stderr, opts)
		},
	}
	sweep.Flags().IntSliceVar(&opts.widths, "widths", []int{1, 2, 4, 8, 16, 32, 64}, "vector widths to run")
	sweep.Flags().IntVar(&opts.workers, "workers", 0, "worker goroutines (0 = GOMAXPROCS)")

	root.AddCommand(run, sweep)
	return root
}

func newLogger(stderr io.Writer, opts *options) *slog.Logger {
	level := slog.LevelInfo
	if opts.verbose || opts.trace {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}

func unitOptions(logger *slog.Logger, opts *options) []lanes.Option {
	if !opts.trace {
		// Keep the instruction trace out of --verbose output.
		return []lanes.Option{lanes.WithLogger(slog.New(slog.DiscardHandler))}
	}
	return []lanes.Option{lanes.WithLogger(logger)}
}

func runKernels(ctx context.Context, stdout, stderr io.Writer, opts *options) error {
	if opts.size < 0 {
		return fmt.Errorf("--size must not be negative, got %d", opts.size)
	}
	logger := newLogger(stderr, opts)
	lanes.SetLogger(logger)

	width := opts.width
	if width == 0 {
		width = lanes.DefaultWidth[float32]()
	}
	u, err := lanes.New(width, unitOptions(logger, opts)...)
	if err != nil {
		return err
	}
	logger.Debug("vector unit", "width", u.Width(), "target", lanes.CurrentName(), "register_bytes", lanes.CurrentWidth())

	results, err := harness.NewRunner(logger).Run(ctx, u, harness.Generate(opts.size, opts.seed))
	if err != nil {
		return err
	}
	return report(stdout, results)
}

func sweepKernels(ctx context.Context, stdout, stderr io.Writer, opts *options) error {
	if opts.size < 0 {
		return fmt.Errorf("--size must not be negative, got %d", opts.size)
	}
	logger := newLogger(stderr, opts)
	lanes.SetLogger(logger)

	pool := workerpool.New(opts.workers)
	defer pool.Close()

	in := harness.Generate(opts.size, opts.seed)
	results, err := harness.NewRunner(logger).Sweep(ctx, pool, opts.widths, in, unitOptions(logger, opts)...)
	if err != nil {
		return err
	}
	return report(stdout, results)
}

func report(stdout io.Writer, results []harness.Result) error {
	if err := harness.WriteReport(stdout, results); err != nil {
		return err
	}
	if failed := harness.Failed(results); len(failed) > 0 {
		return fmt.Errorf("%d of %d runs failed: %w", len(failed), len(results), errMismatch)
	}
	return nil
}
