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

// IfThenElse is the masked form of an if/else statement. It runs then with
// the lanes of scope where cond holds and otherwise with the remaining lanes
// of scope. Because every primitive merges into its destination, the two
// branches compose into one result without per-lane branching.
//
// otherwise may be nil for an if without else.
func IfThenElse(cond, scope Mask, then, otherwise func(m Mask)) {
	then(MaskAnd(cond, scope))
	if otherwise != nil {
		otherwise(MaskAnd(MaskNot(cond), scope))
	}
}

// While is the masked form of a loop whose trip count differs per lane.
// It evaluates cond, runs body under the resulting mask, and repeats until
// no lane is active. It returns the number of rounds, which equals the
// largest per-lane trip count.
//
// body must make progress on every active lane or While never returns.
func While(cond func() Mask, body func(m Mask)) int {
	rounds := 0
	for m := cond(); m.CountTrue() > 0; m = cond() {
		body(m)
		rounds++
	}
	return rounds
}
