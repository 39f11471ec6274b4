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

// ForEachTile splits an array of n elements into tiles of Width() elements
// and calls fn once per tile with the tile's starting offset and the number
// of valid elements in it. Every tile but the last has active == Width();
// the tail tile has active = n - offset. Kernels build the tile mask with
// MaskAll(active) so that the tail never reads or writes past n.
//
// Example:
//
//	lanes.ForEachTile(u, len(data), func(offset, active int) {
//	    all := u.MaskAll(active)
//	    lanes.Load(x, data[offset:], all)
//	    lanes.Add(x, x, x, all)
//	    lanes.Store(output[offset:], x, all)
//	})
func ForEachTile(u *Unit, n int, fn func(offset, active int)) {
	for offset := 0; offset < n; offset += u.width {
		fn(offset, min(u.width, n-offset))
	}
}

// NumTiles returns the number of tiles ForEachTile visits for n elements.
func (u *Unit) NumTiles(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + u.width - 1) / u.width
}

// IsAligned returns true if n is a multiple of the vector width,
// i.e. the last tile is full.
func (u *Unit) IsAligned(n int) bool {
	return n%u.width == 0
}
