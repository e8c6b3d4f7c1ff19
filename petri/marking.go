package petri

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Marking is a total function from place id to {0,1}: the state of a
// 1-safe Petri net. An absent id is defined to be 0. Markings are
// value-equal and hashable; firing never mutates a Marking in place, it
// always returns a fresh one.
type Marking map[string]bool

// NewMarking builds a Marking from a plain token-count map, normalizing
// any non-zero count to 1 (mirrors the teacher's NewMarking rounding, but
// for the binary domain: the input is already 1-safe by construction).
func NewMarking(tokens map[string]int) Marking {
	m := make(Marking, len(tokens))
	for place, n := range tokens {
		if n != 0 {
			m[place] = true
		}
	}
	return m
}

// HasToken reports whether place is marked. Absent places are unmarked.
func (m Marking) HasToken(place string) bool {
	return bool(m[place])
}

// SetToken sets or clears the token on place.
func (m Marking) SetToken(place string, marked bool) {
	if marked {
		m[place] = true
		return
	}
	delete(m, place)
}

// Copy returns an independent copy of m.
func (m Marking) Copy() Marking {
	out := make(Marking, len(m))
	for p, v := range m {
		if v {
			out[p] = true
		}
	}
	return out
}

// Equals reports whether m and other agree on every place.
func (m Marking) Equals(other Marking) bool {
	if len(m) != len(other) {
		return false
	}
	for p, v := range m {
		if v != other[p] {
			return false
		}
	}
	return true
}

// SortedPlaces returns the marked place ids of m in sorted order.
func (m Marking) SortedPlaces() []string {
	out := make([]string, 0, len(m))
	for p, v := range m {
		if v {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

// TotalTokens returns the number of marked places.
func (m Marking) TotalTokens() int {
	n := 0
	for _, v := range m {
		if v {
			n++
		}
	}
	return n
}

// IsZero reports whether no place is marked.
func (m Marking) IsZero() bool {
	return m.TotalTokens() == 0
}

// ToVector encodes m as a bitset over the given place order: bit i is set
// iff order[i] is marked. order is typically the net's sorted place list,
// the same order used to declare BDD variables (spec.md §3).
func (m Marking) ToVector(order []string) *bitset.BitSet {
	bs := bitset.New(uint(len(order)))
	for i, p := range order {
		if m[p] {
			bs.Set(uint(i))
		}
	}
	return bs
}

// FromVector decodes a bitset produced by ToVector back into a Marking,
// given the same place order. from_vector(to_vector(M, order), order) == M.
func FromVector(bs *bitset.BitSet, order []string) Marking {
	m := make(Marking, bs.Count())
	for i, p := range order {
		if bs.Test(uint(i)) {
			m[p] = true
		}
	}
	return m
}

// Hash returns a deterministic, value-equal hash of m: two markings with
// the same sorted marked-place set hash identically regardless of
// construction order.
func (m Marking) Hash() string {
	keys := m.SortedPlaces()
	h := sha256.New()
	for _, k := range keys {
		h.Write([]byte(k))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%x", h.Sum(nil))[:16]
}

// String renders the marked places, comma-separated, for diagnostics.
func (m Marking) String() string {
	keys := m.SortedPlaces()
	if len(keys) == 0 {
		return "(empty)"
	}
	return strings.Join(keys, ", ")
}
