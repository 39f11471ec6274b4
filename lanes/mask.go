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

// MaskAll creates a mask with the first 'active' lanes true and the rest
// false. This is the only source of partial masks: the tail tile of an
// array uses MaskAll(n - offset).
//
// Panics if active is outside [0, Width()].
func (u *Unit) MaskAll(active int) Mask {
	if active < 0 || active > u.width {
		panic(fmt.Sprintf("lanes: MaskAll: active %d outside [0, %d]", active, u.width))
	}
	bits := make([]bool, u.width)
	for i := range active {
		bits[i] = true
	}
	return Mask{unit: u, bits: bits}
}

// MaskOnes returns the all-true mask of the unit.
func (u *Unit) MaskOnes() Mask {
	return u.ones
}

// MaskNot returns the lane-wise complement of m.
func MaskNot(m Mask) Mask {
	bits := make([]bool, len(m.bits))
	for i, bit := range m.bits {
		bits[i] = !bit
	}
	return Mask{unit: m.unit, bits: bits}
}

// MaskAnd returns the lane-wise conjunction of a and b.
func MaskAnd(a, b Mask) Mask {
	checkMasks("MaskAnd", a, b)
	bits := make([]bool, len(a.bits))
	for i := range bits {
		bits[i] = a.bits[i] && b.bits[i]
	}
	return Mask{unit: a.unit, bits: bits}
}

// MaskOr returns the lane-wise disjunction of a and b.
func MaskOr(a, b Mask) Mask {
	checkMasks("MaskOr", a, b)
	bits := make([]bool, len(a.bits))
	for i := range bits {
		bits[i] = a.bits[i] || b.bits[i]
	}
	return Mask{unit: a.unit, bits: bits}
}

func checkMasks(op string, a, b Mask) {
	if len(a.bits) != len(b.bits) {
		panic(fmt.Sprintf("lanes: %s: mask widths differ (%d vs %d)", op, len(a.bits), len(b.bits)))
	}
}
