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

// Package kernels provides numeric kernels written purely in terms of the
// lanes vector unit primitives.
//
// Each kernel walks its input in tiles of u.Width() elements. Inside a tile
// there is no per-lane branching: conditionals are masks built with
// comparisons and applied with lanes.IfThenElse, and data-dependent loops
// run under lanes.While until every lane has converged. All kernels accept
// any input length; the last tile uses a partial mask so that nothing past
// the end of the input is read or written.
//
// # Kernels
//
//   - AbsVector(u, values, output): output[i] = |values[i]|
//   - ClampedExpVector(u, values, exponents, output):
//     output[i] = min(values[i]^exponents[i], ClampLimit)
//   - ArraySumVector(u, values): sum of all values
//
// Each kernel has a scalar reference (AbsSerial, ClampedExpSerial,
// ArraySumSerial) with the same semantics.
//
// # Example Usage
//
//	import (
//	    "github.com/lanesim/go-lanes/lanes"
//	    "github.com/lanesim/go-lanes/lanes/contrib/kernels"
//	)
//
//	u := lanes.MustNew(8)
//	kernels.AbsVector(u, values, output)
//	fmt.Println(u.Stats().Utilization())
//
// Kernels keep no state between calls. The buffers belong to the caller and
// must not alias between input and output.
package kernels
