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

import "fmt"

// Instruction names used in Stats.PerOp and in trace logs.
const (
	OpLoad       = "vload"
	OpStore      = "vstore"
	OpSet        = "vset"
	OpMove       = "vmove"
	OpAdd        = "vadd"
	OpSub        = "vsub"
	OpMul        = "vmult"
	OpLess       = "vlt"
	OpGreater    = "vgt"
	OpEqual      = "veq"
	OpHAdd       = "hadd"
	OpInterleave = "interleave"
)

// All primitives below follow merge semantics: lanes where the mask is false
// keep their previous value in the destination vector, mask or memory.

// Load copies src[i] into dst lane i for every active lane.
// src only needs to cover the active lanes.
func Load[T Lanes](dst Vec[T], src []T, m Mask) {
	u := unitOf(OpLoad, m, dst)
	for i, on := range m.bits {
		if on {
			dst.data[i] = src[i]
		}
	}
	u.recordMasked(OpLoad, m)
}

// Store copies lane i of src into dst[i] for every active lane. Memory at
// inactive lanes is never written, so dst only needs to cover the active lanes.
func Store[T Lanes](dst []T, src Vec[T], m Mask) {
	u := unitOf(OpStore, m, src)
	for i, on := range m.bits {
		if on {
			dst[i] = src.data[i]
		}
	}
	u.recordMasked(OpStore, m)
}

// Set broadcasts value into the active lanes of dst.
func Set[T Lanes](dst Vec[T], value T, m Mask) {
	u := unitOf(OpSet, m, dst)
	for i, on := range m.bits {
		if on {
			dst.data[i] = value
		}
	}
	u.recordMasked(OpSet, m)
}

// Move copies the active lanes of src into dst.
func Move[T Lanes](dst, src Vec[T], m Mask) {
	u := unitOf(OpMove, m, dst, src)
	for i, on := range m.bits {
		if on {
			dst.data[i] = src.data[i]
		}
	}
	u.recordMasked(OpMove, m)
}

// Add computes dst = a + b on the active lanes.
func Add[T Lanes](dst, a, b Vec[T], m Mask) {
	u := unitOf(OpAdd, m, dst, a, b)
	for i, on := range m.bits {
		if on {
			dst.data[i] = a.data[i] + b.data[i]
		}
	}
	u.recordMasked(OpAdd, m)
}

// Sub computes dst = a - b on the active lanes.
func Sub[T Lanes](dst, a, b Vec[T], m Mask) {
	u := unitOf(OpSub, m, dst, a, b)
	for i, on := range m.bits {
		if on {
			dst.data[i] = a.data[i] - b.data[i]
		}
	}
	u.recordMasked(OpSub, m)
}

// Mul computes dst = a * b on the active lanes.
func Mul[T Lanes](dst, a, b Vec[T], m Mask) {
	u := unitOf(OpMul, m, dst, a, b)
	for i, on := range m.bits {
		if on {
			dst.data[i] = a.data[i] * b.data[i]
		}
	}
	u.recordMasked(OpMul, m)
}

// Less sets dst lane i to a[i] < b[i] for every active lane.
// A zero Mask is accepted as dst and starts out all false.
func Less[T Lanes](dst *Mask, a, b Vec[T], m Mask) {
	compare(OpLess, dst, a, b, m, func(x, y T) bool { return x < y })
}

// Greater sets dst lane i to a[i] > b[i] for every active lane.
func Greater[T Lanes](dst *Mask, a, b Vec[T], m Mask) {
	compare(OpGreater, dst, a, b, m, func(x, y T) bool { return x > y })
}

// Equal sets dst lane i to a[i] == b[i] for every active lane.
func Equal[T Lanes](dst *Mask, a, b Vec[T], m Mask) {
	compare(OpEqual, dst, a, b, m, func(x, y T) bool { return x == y })
}

func compare[T Lanes](op string, dst *Mask, a, b Vec[T], m Mask, pred func(x, y T) bool) {
	u := unitOf(op, m, a, b)
	if dst.bits != nil && len(dst.bits) != u.width {
		panic(fmt.Sprintf("lanes: %s: destination mask has %d lanes on a %d-wide unit", op, len(dst.bits), u.width))
	}

	bits := make([]bool, u.width)
	copy(bits, dst.bits)
	for i, on := range m.bits {
		if on {
			bits[i] = pred(a.data[i], b.data[i])
		}
	}
	*dst = Mask{unit: u, bits: bits}
	u.recordMasked(op, m)
}

// unitOf returns the unit owning vs[0] after checking that every operand
// and the mask have the unit's width.
func unitOf[T Lanes](op string, m Mask, vs ...Vec[T]) *Unit {
	u := vs[0].unit
	if u == nil {
		panic("lanes: " + op + ": vector was not created with NewVec")
	}
	if len(m.bits) != u.width {
		panic(fmt.Sprintf("lanes: %s: mask has %d lanes on a %d-wide unit", op, len(m.bits), u.width))
	}
	for _, v := range vs {
		if len(v.data) != u.width {
			panic(fmt.Sprintf("lanes: %s: vector has %d lanes on a %d-wide unit", op, len(v.data), u.width))
		}
	}
	return u
}
