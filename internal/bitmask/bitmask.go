// Package bitmask provides immutable fixed-universe bitsets. Bit i denotes
// membership of the individual with index i.
//
// Every operation returns a new Mask and leaves its operands untouched, so
// masks can be stored in caches and shared between results. Operands are
// expected to have the same universe size.
package bitmask

import (
	"iter"

	"github.com/bits-and-blooms/bitset"
)

// Mask is an immutable set of bit positions over a universe of Len() bits.
// The zero Mask is the empty set over an empty universe.
type Mask struct {
	bs *bitset.BitSet
}

// Empty returns the empty mask over n bits.
func Empty(n int) Mask {
	return Mask{bs: bitset.New(uint(n))}
}

// Full returns the mask with all n bits set.
func Full(n int) Mask {
	bs := bitset.New(uint(n))
	bs.FlipRange(0, uint(n))
	return Mask{bs: bs}
}

// Of returns the mask over n bits with the given positions set. Positions
// outside [0, n) are ignored.
func Of(n int, positions ...int) Mask {
	b := NewBuilder(n)
	for _, p := range positions {
		b.Set(p)
	}
	return b.Mask()
}

func (m Mask) set() *bitset.BitSet {
	if m.bs == nil {
		return bitset.New(0)
	}
	return m.bs
}

// Len returns the universe size.
func (m Mask) Len() int {
	return int(m.set().Len())
}

// Count returns the number of set bits.
func (m Mask) Count() int {
	return int(m.set().Count())
}

// IsEmpty reports whether no bit is set.
func (m Mask) IsEmpty() bool {
	return m.set().None()
}

// Test reports whether bit i is set.
func (m Mask) Test(i int) bool {
	if i < 0 {
		return false
	}
	return m.set().Test(uint(i))
}

// Or returns m ∪ o.
func (m Mask) Or(o Mask) Mask {
	return Mask{bs: m.set().Union(o.set())}
}

// And returns m ∩ o.
func (m Mask) And(o Mask) Mask {
	return Mask{bs: m.set().Intersection(o.set())}
}

// Xor returns the symmetric difference of m and o.
func (m Mask) Xor(o Mask) Mask {
	return Mask{bs: m.set().SymmetricDifference(o.set())}
}

// AndNot returns m \ o.
func (m Mask) AndNot(o Mask) Mask {
	return Mask{bs: m.set().Difference(o.set())}
}

// Complement returns the bits of the universe that are not in m.
func (m Mask) Complement() Mask {
	return Mask{bs: m.set().Complement()}
}

// SubsetOf reports whether every bit of m is set in o.
func (m Mask) SubsetOf(o Mask) bool {
	return o.set().IsSuperSet(m.set())
}

// Equal reports whether m and o have the same universe and the same bits.
func (m Mask) Equal(o Mask) bool {
	return m.set().Equal(o.set())
}

// Bits yields the set positions in ascending order.
func (m Mask) Bits() iter.Seq[int] {
	return func(yield func(int) bool) {
		bs := m.set()
		for i, ok := bs.NextSet(0); ok; i, ok = bs.NextSet(i + 1) {
			if !yield(int(i)) {
				return
			}
		}
	}
}

// String renders the mask as a bit string, lowest position first.
func (m Mask) String() string {
	n := m.Len()
	buf := make([]byte, n)
	for i := range n {
		if m.Test(i) {
			buf[i] = '1'
		} else {
			buf[i] = '0'
		}
	}
	return string(buf)
}

// Builder accumulates bits before freezing them into a Mask.
// A Builder must not be used after Mask has been called.
type Builder struct {
	n  int
	bs *bitset.BitSet
}

// NewBuilder returns a builder over n bits.
func NewBuilder(n int) *Builder {
	return &Builder{n: n, bs: bitset.New(uint(n))}
}

// Set sets bit i. Positions outside [0, n) are ignored.
func (b *Builder) Set(i int) *Builder {
	if i >= 0 && i < b.n {
		b.bs.Set(uint(i))
	}
	return b
}

// Or adds every bit of m.
func (b *Builder) Or(m Mask) *Builder {
	b.bs.InPlaceUnion(m.set())
	return b
}

// Mask freezes the builder.
func (b *Builder) Mask() Mask {
	m := Mask{bs: b.bs}
	b.bs = nil
	return m
}
