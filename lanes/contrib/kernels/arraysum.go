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

// ArraySumVector returns the sum of all elements of values.
//
// Tiles are added into a zeroed accumulator (the tail tile under its
// partial mask, so stale lanes never contribute). The accumulator is then
// folded with log2(Width) rounds of HorizontalAdd and Interleave, which
// leaves the total in lane 0.
//
// The vector sum adds in a different order than ArraySumSerial, so float
// results agree within rounding error, not bit for bit.
func ArraySumVector[T lanes.Floats](u *lanes.Unit, values []T) T {
	ones := u.MaskOnes()
	acc := lanes.NewVec[T](u)
	tmp := lanes.NewVec[T](u)
	lanes.Set(acc, 0, ones)

	lanes.ForEachTile(u, len(values), func(offset, active int) {
		all := u.MaskAll(active)
		lanes.Load(tmp, values[offset:], all)
		lanes.Add(acc, acc, tmp, all)
	})

	for width := u.Width(); width > 1; width /= 2 {
		lanes.HorizontalAdd(acc, acc)
		lanes.Interleave(acc, acc)
	}

	scratch := make([]T, u.Width())
	lanes.Store(scratch, acc, ones)
	return scratch[0]
}

// ArraySumSerial is the scalar reference for ArraySumVector.
func ArraySumSerial[T lanes.Floats](values []T) T {
	var sum T
	for _, v := range values {
		sum += v
	}
	return sum
}
