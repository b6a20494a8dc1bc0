package zplane

import (
	"errors"
	"math"
	"math/cmplx"
)

var (
	// ErrNotFound is returned by Nearest when no root lies within the threshold.
	ErrNotFound = errors.New("zplane: no root within threshold")
	// ErrInvalidHandle is returned for handles that were never issued or
	// whose root has been removed.
	ErrInvalidHandle = errors.New("zplane: invalid root handle")
)

// Kind distinguishes numerator roots (zeros) from denominator roots (poles).
type Kind int

const (
	// Zero is a root of the transfer function numerator.
	Zero Kind = iota
	// Pole is a root of the transfer function denominator.
	Pole
)

func (k Kind) valid() bool { return k == Zero || k == Pole }

// String returns "zero" or "pole".
func (k Kind) String() string {
	switch k {
	case Zero:
		return "zero"
	case Pole:
		return "pole"
	default:
		return "unknown"
	}
}

// Handle is a stable reference to a root inside a [RootSet]. Handles stay
// valid until the root is removed and are never reused by the same set.
type Handle int

// NoHandle marks the absence of a root, e.g. an unlinked root's mirror.
const NoHandle Handle = -1

// Root is a snapshot of one zero or pole.
type Root struct {
	Handle   Handle
	Kind     Kind
	Position complex128
	// Mirror is the linked conjugate root, or NoHandle.
	Mirror Handle
}

// IsMirrored reports whether the root is one endpoint of a reflection link.
func (r Root) IsMirrored() bool { return r.Mirror != NoHandle }

type slot struct {
	kind  Kind
	pos   complex128
	link  Handle
	alive bool
}

// RootSet is an ordered, mutable collection of zeros and poles. Roots are
// stored in an arena indexed by [Handle]; removal leaves a tombstone so that
// surviving handles keep their meaning and insertion order is preserved.
//
// A root added with reflection gets a mirror at its complex conjugate. The
// two are linked: moving either endpoint moves the other to the conjugate
// position, and removing either removes both.
//
// RootSet is not safe for concurrent use.
type RootSet struct {
	slots []slot
	live  [2]int
}

// NewRootSet returns an empty set.
func NewRootSet() *RootSet {
	return &RootSet{}
}

// Add appends a root of the given kind at pos. With reflect set, a mirror
// root at conj(pos) is appended right after it and linked to it. The primary
// handle is returned.
func (s *RootSet) Add(kind Kind, pos complex128, reflect bool) Handle {
	if !kind.valid() {
		panic("zplane: invalid root kind")
	}

	h := s.push(kind, pos)
	if reflect {
		m := s.push(kind, cmplx.Conj(pos))
		s.slots[h].link = m
		s.slots[m].link = h
	}

	return h
}

// AddPair appends a linked pair of roots at pos and conj(pos) and returns both
// handles.
func (s *RootSet) AddPair(kind Kind, pos complex128) (primary, mirror Handle) {
	primary = s.Add(kind, pos, true)
	return primary, s.slots[primary].link
}

func (s *RootSet) push(kind Kind, pos complex128) Handle {
	s.slots = append(s.slots, slot{kind: kind, pos: pos, link: NoHandle, alive: true})
	s.live[kind]++

	return Handle(len(s.slots) - 1)
}

func (s *RootSet) lookup(h Handle) (*slot, error) {
	if h < 0 || int(h) >= len(s.slots) || !s.slots[h].alive {
		return nil, ErrInvalidHandle
	}

	return &s.slots[h], nil
}

// Move sets the position of the root behind h. A linked partner is moved to
// conj(pos) in the same call; an invalid handle leaves the set unchanged.
func (s *RootSet) Move(h Handle, pos complex128) error {
	r, err := s.lookup(h)
	if err != nil {
		return err
	}

	r.pos = pos
	if r.link != NoHandle {
		s.slots[r.link].pos = cmplx.Conj(pos)
	}

	return nil
}

// Remove deletes the root behind h together with its linked partner.
func (s *RootSet) Remove(h Handle) error {
	r, err := s.lookup(h)
	if err != nil {
		return err
	}

	if r.link != NoHandle {
		s.kill(r.link)
	}

	s.kill(h)

	return nil
}

func (s *RootSet) kill(h Handle) {
	r := &s.slots[h]
	r.alive = false
	r.link = NoHandle
	s.live[r.kind]--
}

// Nearest returns the live root of the given kind closest to target whose
// distance is strictly below threshold. Mirrors are candidates too.
func (s *RootSet) Nearest(kind Kind, target complex128, threshold float64) (Handle, error) {
	best := NoHandle
	bestDist := math.Inf(1)

	for i := range s.slots {
		r := &s.slots[i]
		if !r.alive || r.kind != kind {
			continue
		}

		if d := cmplx.Abs(r.pos - target); d < threshold && d < bestDist {
			best = Handle(i)
			bestDist = d
		}
	}

	if best == NoHandle {
		return NoHandle, ErrNotFound
	}

	return best, nil
}

// List returns the positions of all live roots of kind in insertion order,
// mirrors included.
func (s *RootSet) List(kind Kind) []complex128 {
	if !kind.valid() {
		return nil
	}

	out := make([]complex128, 0, s.live[kind])
	for i := range s.slots {
		if r := &s.slots[i]; r.alive && r.kind == kind {
			out = append(out, r.pos)
		}
	}

	return out
}

// Roots returns snapshots of all live roots of kind in insertion order.
func (s *RootSet) Roots(kind Kind) []Root {
	if !kind.valid() {
		return nil
	}

	out := make([]Root, 0, s.live[kind])
	for i := range s.slots {
		if r := &s.slots[i]; r.alive && r.kind == kind {
			out = append(out, Root{Handle: Handle(i), Kind: r.kind, Position: r.pos, Mirror: r.link})
		}
	}

	return out
}

// Root returns a snapshot of the root behind h.
func (s *RootSet) Root(h Handle) (Root, error) {
	r, err := s.lookup(h)
	if err != nil {
		return Root{Handle: NoHandle, Mirror: NoHandle}, err
	}

	return Root{Handle: h, Kind: r.kind, Position: r.pos, Mirror: r.link}, nil
}

// Len returns the number of live roots of kind, mirrors included.
func (s *RootSet) Len(kind Kind) int {
	if !kind.valid() {
		return 0
	}

	return s.live[kind]
}

// Clear removes every root of kind. Links never cross kinds, so roots of the
// other kind are untouched.
func (s *RootSet) Clear(kind Kind) {
	for i := range s.slots {
		if r := &s.slots[i]; r.alive && r.kind == kind {
			s.kill(Handle(i))
		}
	}
}

// Reset removes all roots. Previously issued handles become invalid.
func (s *RootSet) Reset() {
	s.Clear(Zero)
	s.Clear(Pole)
}

// Clone returns a deep copy of the set. Handles issued by s are valid in the
// copy and refer to the same roots.
func (s *RootSet) Clone() *RootSet {
	return &RootSet{
		slots: append([]slot(nil), s.slots...),
		live:  s.live,
	}
}
