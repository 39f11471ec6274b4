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

// HorizontalAdd sums adjacent lane pairs of src and writes each pair sum to
// both lanes of the pair in dst:
//
//	dst[2k] = dst[2k+1] = src[2k] + src[2k+1]
//
// It always operates on the full width. On a 1-wide unit it is a copy.
func HorizontalAdd[T Lanes](dst, src Vec[T]) {
	u := unitOf(OpHAdd, onesOf(OpHAdd, dst), dst, src)
	snap := make([]T, u.width)
	copy(snap, src.data)

	if u.width == 1 {
		dst.data[0] = snap[0]
	}
	for k := 0; k+1 < u.width; k += 2 {
		s := snap[k] + snap[k+1]
		dst.data[k] = s
		dst.data[k+1] = s
	}
	u.recordFull(OpHAdd)
}

// Interleave moves the even lanes of src to the first half of dst and the
// odd lanes to the second half:
//
//	dst[k] = src[2k], dst[W/2+k] = src[2k+1]
//
// After HorizontalAdd, both halves hold the W/2 pair sums in order, so
// repeating HorizontalAdd+Interleave log2(W) times leaves the full sum in
// lane 0.
func Interleave[T Lanes](dst, src Vec[T]) {
	u := unitOf(OpInterleave, onesOf(OpInterleave, dst), dst, src)
	snap := make([]T, u.width)
	copy(snap, src.data)

	half := u.width / 2
	if half == 0 {
		dst.data[0] = snap[0]
	}
	for k := range half {
		dst.data[k] = snap[2*k]
		dst.data[half+k] = snap[2*k+1]
	}
	u.recordFull(OpInterleave)
}

func onesOf[T Lanes](op string, v Vec[T]) Mask {
	if v.unit == nil {
		panic("lanes: " + op + ": vector was not created with NewVec")
	}
	return v.unit.ones
}
