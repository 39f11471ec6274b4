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

package lanes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
)

// ErrInvalidWidth is returned by New when the width is not a positive power of two.
var ErrInvalidWidth = errors.New("width must be a positive power of two")

// Unit is an emulated vector unit of a fixed width.
//
// A Unit accumulates utilization statistics for every primitive executed on
// its vectors. It is not safe for concurrent use; give each goroutine its
// own Unit.
type Unit struct {
	width  int
	ones   Mask
	logger *slog.Logger
	stats  Stats
}

// Option configures a Unit.
type Option func(*Unit)

// WithLogger sets the logger used for per-instruction tracing.
// Without it the unit uses the package logger (see SetLogger).
func WithLogger(l *slog.Logger) Option {
	return func(u *Unit) {
		u.logger = l
	}
}

// New creates a vector unit with the given number of lanes.
func New(width int, opts ...Option) (*Unit, error) {
	if !isPowerOfTwo(width) {
		return nil, fmt.Errorf("lanes: width %d: %w", width, ErrInvalidWidth)
	}
	u := &Unit{
		width: width,
		stats: Stats{PerOp: make(map[string]int)},
	}
	u.ones = u.MaskAll(width)
	for _, opt := range opts {
		opt(u)
	}
	return u, nil
}

// MustNew is like New but panics on an invalid width.
func MustNew(width int, opts ...Option) *Unit {
	u, err := New(width, opts...)
	if err != nil {
		panic(err)
	}
	return u
}

// NewDefault creates a unit as wide as the host SIMD registers for float32,
// honoring the LANES_WIDTH and LANES_NO_SIMD environment variables.
func NewDefault(opts ...Option) *Unit {
	return MustNew(DefaultWidth[float32](), opts...)
}

// Width returns the number of lanes of the unit.
func (u *Unit) Width() int {
	return u.width
}

// Stats returns a snapshot of the utilization counters.
func (u *Unit) Stats() Stats {
	s := u.stats
	s.PerOp = maps.Clone(u.stats.PerOp)
	return s
}

// ResetStats clears the utilization counters.
func (u *Unit) ResetStats() {
	u.stats = Stats{PerOp: make(map[string]int)}
}

func (u *Unit) log() *slog.Logger {
	if u.logger != nil {
		return u.logger
	}
	return Logger()
}

// record accounts one vector instruction with the given number of active lanes.
func (u *Unit) record(op string, active int, m Mask) {
	u.stats.Instructions++
	u.stats.TotalLanes += u.width
	u.stats.ActiveLanes += active
	u.stats.PerOp[op]++

	l := u.log()
	if l.Enabled(context.Background(), slog.LevelDebug) {
		l.Debug("vector instruction", "op", op, "width", u.width, "mask", m.String())
	}
}

func (u *Unit) recordMasked(op string, m Mask) {
	u.record(op, m.CountTrue(), m)
}

func (u *Unit) recordFull(op string) {
	u.record(op, u.width, u.ones)
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
