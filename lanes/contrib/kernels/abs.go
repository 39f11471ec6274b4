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

import (
	"fmt"

	"github.com/lanesim/go-lanes/lanes"
)

// AbsVector writes the absolute value of every element of values to output.
//
// Per tile: load x, take the lanes where x < 0, write 0 - x there and reload
// x into the remaining lanes, then store the merged result.
//
// Panics if output is shorter than values.
func AbsVector[T lanes.Floats](u *lanes.Unit, values, output []T) {
	checkLen("AbsVector", "output", len(output), len(values))

	x := lanes.NewVec[T](u)
	result := lanes.NewVec[T](u)
	zero := lanes.NewVec[T](u)

	lanes.ForEachTile(u, len(values), func(offset, active int) {
		all := u.MaskAll(active)
		src := values[offset:]

		lanes.Load(x, src, all)

		var negative lanes.Mask
		lanes.Less(&negative, x, zero, all)
		lanes.IfThenElse(negative, all,
			func(m lanes.Mask) { lanes.Sub(result, zero, x, m) },
			func(m lanes.Mask) { lanes.Load(result, src, m) },
		)

		lanes.Store(output[offset:], result, all)
	})
}

// AbsSerial is the scalar reference for AbsVector.
func AbsSerial[T lanes.Floats](values, output []T) {
	checkLen("AbsSerial", "output", len(output), len(values))
	for i, x := range values {
		if x < 0 {
			output[i] = -x
		} else {
			output[i] = x
		}
	}
}

func checkLen(kernel, name string, got, want int) {
	if got < want {
		panic(fmt.Sprintf("kernels: %s: %s has %d elements, need %d", kernel, name, got, want))
	}
}
