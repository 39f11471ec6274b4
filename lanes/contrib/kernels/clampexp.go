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

package kernels

import "github.com/lanesim/go-lanes/lanes"

// ClampLimit is the upper bound applied by ClampedExpVector.
const ClampLimit = 9.999999

// ClampedExpVector writes min(values[i]^exponents[i], ClampLimit) to output.
//
// Exponents are expected to be non-negative. A zero exponent always yields
// exactly 1. A negative exponent performs no multiplication and yields the
// base (clamped), the same as ClampedExpSerial.
//
// Per tile the power is computed by repeated multiplication: result starts
// at x with count = y - 1 remaining factors, and every round multiplies the
// lanes whose count is still positive. The number of rounds in a tile is
// the largest exponent in it minus one.
//
// Panics if exponents or output is shorter than values.
func ClampedExpVector[T lanes.Floats](u *lanes.Unit, values []T, exponents []int32, output []T) {
	checkLen("ClampedExpVector", "exponents", len(exponents), len(values))
	checkLen("ClampedExpVector", "output", len(output), len(values))

	ones := u.MaskOnes()
	x := lanes.NewVec[T](u)
	result := lanes.NewVec[T](u)
	limit := lanes.NewVec[T](u)
	lanes.Set(limit, T(ClampLimit), ones)

	y := lanes.NewVec[int32](u)
	count := lanes.NewVec[int32](u)
	zero := lanes.NewVec[int32](u)
	one := lanes.NewVec[int32](u)
	lanes.Set(one, 1, ones)

	lanes.ForEachTile(u, len(values), func(offset, active int) {
		all := u.MaskAll(active)

		lanes.Load(x, values[offset:], all)
		lanes.Load(y, exponents[offset:], all)

		var isZero lanes.Mask
		lanes.Equal(&isZero, y, zero, all)
		lanes.IfThenElse(isZero, all,
			func(m lanes.Mask) {
				lanes.Set(result, 1, m)
				lanes.Set(count, 0, m)
			},
			func(m lanes.Mask) {
				lanes.Move(result, x, m)
				lanes.Sub(count, y, one, m)
			},
		)

		lanes.While(func() lanes.Mask {
			var pending lanes.Mask
			lanes.Greater(&pending, count, zero, all)
			return pending
		}, func(m lanes.Mask) {
			lanes.Mul(result, result, x, m)
			lanes.Sub(count, count, one, m)
		})

		var clamps lanes.Mask
		lanes.Greater(&clamps, result, limit, all)
		lanes.Set(result, T(ClampLimit), clamps)

		lanes.Store(output[offset:], result, all)
	})
}

// ClampedExpSerial is the scalar reference for ClampedExpVector.
func ClampedExpSerial[T lanes.Floats](values []T, exponents []int32, output []T) {
	checkLen("ClampedExpSerial", "exponents", len(exponents), len(values))
	checkLen("ClampedExpSerial", "output", len(output), len(values))
	for i, x := range values {
		y := exponents[i]
		if y == 0 {
			output[i] = 1
			continue
		}
		result := x
		for count := y - 1; count > 0; count-- {
			result *= x
		}
		if result > T(ClampLimit) {
			result = T(ClampLimit)
		}
		output[i] = result
	}
}
