// Package lanes provides a software-emulated fixed-width vector unit.
//
// A Unit has a width W (a power of two). Vectors hold exactly W lanes of
// floating-point or integer values and masks hold exactly W booleans. Every
// primitive takes a mask and only touches lanes where the mask is true; the
// other lanes of the destination keep their previous value. Conditionals are
// written as "compute a predicate mask, apply the operation under it, then
// apply the other branch under the complement" instead of per-lane branches.
//
// Basic usage:
//
//	u := lanes.MustNew(8)
//	all := u.MaskAll(len(data))
//	x := lanes.NewVec[float32](u)
//	lanes.Load(x, data, all)
//	lanes.Mul(x, x, x, all)
//	lanes.Store(out, x, all)
package lanes

// Floats is a constraint for floating-point types.
type Floats interface {
	~float32 | ~float64
}

// SignedInts is a constraint for signed integer types.
type SignedInts interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// UnsignedInts is a constraint for unsigned integer types.
type UnsignedInts interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Integers is a constraint for all integer types.
type Integers interface {
	SignedInts | UnsignedInts
}

// Lanes is a constraint for all types that can be stored in vector lanes.
type Lanes interface {
	Floats | Integers
}

// Vec is a vector register of a Unit. It wraps a slice of exactly Width
// lanes, so copies of a Vec share storage the way a register name does.
//
// Vec instances should not be created directly; use NewVec.
type Vec[T Lanes] struct {
	unit *Unit
	data []T
}

// NewVec returns a zeroed vector with u.Width() lanes.
func NewVec[T Lanes](u *Unit) Vec[T] {
	return Vec[T]{unit: u, data: make([]T, u.width)}
}

// NumLanes returns the number of lanes (elements) in this vector.
func (v Vec[T]) NumLanes() int {
	return len(v.data)
}

// Lane returns the value held in lane i.
func (v Vec[T]) Lane(i int) T {
	return v.data[i]
}

// Data returns the underlying slice representation of the vector.
// This is primarily for testing and should not be used in kernels.
func (v Vec[T]) Data() []T {
	return v.data
}

// Mask selects which lanes a primitive may read or write.
//
// Masks are immutable once built: combinators and comparisons always
// produce fresh storage, so copying a Mask value is safe.
type Mask struct {
	unit *Unit
	bits []bool
}

// NumLanes returns the number of lanes in this mask.
func (m Mask) NumLanes() int {
	return len(m.bits)
}

// CountTrue returns the number of active lanes in the mask.
func (m Mask) CountTrue() int {
	count := 0
	for _, bit := range m.bits {
		if bit {
			count++
		}
	}
	return count
}

// AllTrue returns true if all lanes in the mask are active.
func (m Mask) AllTrue() bool {
	for _, bit := range m.bits {
		if !bit {
			return false
		}
	}
	return true
}

// AnyTrue returns true if at least one lane in the mask is active.
func (m Mask) AnyTrue() bool {
	for _, bit := range m.bits {
		if bit {
			return true
		}
	}
	return false
}

// GetBit returns whether lane i is active.
func (m Mask) GetBit(i int) bool {
	if i < 0 || i >= len(m.bits) {
		return false
	}
	return m.bits[i]
}

// String renders the mask as one character per lane: '*' active, '_' not.
func (m Mask) String() string {
	b := make([]byte, len(m.bits))
	for i, bit := range m.bits {
		if bit {
			b[i] = '*'
		} else {
			b[i] = '_'
		}
	}
	return string(b)
}
