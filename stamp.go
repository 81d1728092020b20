package treeclock

// Stamp pairs an id tree with an event tree: the unit of causal identity.
//
// Stamps are immutable values. Every operation returns fresh trees and
// never mutates its receiver, so two goroutines operating on distinct
// Stamps never race. Sharing one Stamp variable across goroutines still
// requires external synchronization around reassignment, as with any Go
// value.
//
// The zero Stamp behaves as a non-owning stamp with empty history: it can
// be compared and joined, but Event on it fails with KindInvalidState.
type Stamp struct {
	id *idTree
	ev *eventTree
}

// NewSeed returns the seed stamp: full ownership of the identity space
// and empty causal history. A system starts from exactly one seed; all
// other stamps descend from it via Fork.
func NewSeed() Stamp {
	return Stamp{id: idLeaf(true), ev: evLeaf(0)}
}

func (s Stamp) idTree() *idTree {
	if s.id == nil {
		return zeroID()
	}
	return s.id
}

func (s Stamp) evTree() *eventTree {
	if s.ev == nil {
		return zeroEvent()
	}
	return s.ev
}

// Fork splits the stamp's identity into two disjoint-ownership stamps
// sharing the same causal history. The split is deterministic: the first
// result receives the left half of each divided scope.
//
// Forking a non-owning stamp is permitted and yields two non-owning
// stamps; neither can record events until rejoined with an owning stamp.
func (s Stamp) Fork() (Stamp, Stamp) {
	l, r := splitID(s.idTree())
	return Stamp{id: l, ev: s.evTree().clone()},
		Stamp{id: r, ev: s.evTree().clone()}
}

// Event records a new causal step, advancing counters strictly within the
// scope the stamp owns and nowhere else. It first fills the owned scope
// up to its reachable maximum; when the owned scope is already flat it
// grows the tree at the cheapest owned point and increments there.
//
// Fails with KindInvalidState if the stamp owns no part of the identity
// space (for example a Peek result), or if a counter would overflow.
// On failure the receiver is unchanged and remains valid.
func (s Stamp) Event() (Stamp, error) {
	id := s.idTree()
	if !id.hasOwnership() {
		return Stamp{}, errorf(KindInvalidState, "Event",
			"stamp owns no interval: peeked or zero stamps cannot record events")
	}
	ev := s.evTree()
	filled := fillEvent(id, ev)
	if !filled.equal(ev) {
		return Stamp{id: id.clone(), ev: normalizeEvent(filled)}, nil
	}
	grown, _, err := growEvent(id, ev)
	if err != nil {
		return Stamp{}, err
	}
	return Stamp{id: id.clone(), ev: normalizeEvent(grown)}, nil
}

// Join merges two stamps into one: ownership is reunified and histories
// are merged into their pointwise maximum, losing nothing from either
// side. After a successful join the inputs should no longer be used as
// independent authorities, though reading them remains safe.
//
// Fails with KindInvalidArgument if the two ids claim overlapping
// ownership; joinable stamps originate from a common fork lineage.
func (s Stamp) Join(o Stamp) (Stamp, error) {
	id, err := sumID(s.idTree(), o.idTree())
	if err != nil {
		return Stamp{}, err
	}
	ev, err := joinEvents(s.evTree(), o.evTree())
	if err != nil {
		return Stamp{}, err
	}
	return Stamp{id: id, ev: ev}, nil
}

// Peek returns a non-owning snapshot of the stamp: same history, no
// identity. Peek results can be compared and joined but never record
// events themselves.
func (s Stamp) Peek() Stamp {
	return Stamp{id: zeroID(), ev: s.evTree().clone()}
}

// Leq reports whether s's history is entirely dominated by o's: s
// happened before o or they are causally equal.
func (s Stamp) Leq(o Stamp) bool {
	return leqEvents(s.evTree(), o.evTree())
}

// Ordering is the result of comparing two stamps.
type Ordering int

const (
	// Less: the receiver causally precedes the argument.
	Less Ordering = iota
	// Greater: the argument causally precedes the receiver.
	Greater
	// Equal: both stamps carry identical causal history.
	Equal
	// Concurrent: neither history dominates the other.
	Concurrent
)

// String returns the lower-case name of the ordering.
func (o Ordering) String() string {
	switch o {
	case Less:
		return "less"
	case Greater:
		return "greater"
	case Equal:
		return "equal"
	case Concurrent:
		return "concurrent"
	default:
		return "unknown"
	}
}

// Compare determines the causal ordering between two stamps from Leq in
// both directions. Compare(a, b) and Compare(b, a) are always inverse:
// Less maps to Greater and Equal and Concurrent map to themselves.
func (s Stamp) Compare(o Stamp) Ordering {
	sLeq := s.Leq(o)
	oLeq := o.Leq(s)
	switch {
	case sLeq && oLeq:
		return Equal
	case sLeq:
		return Less
	case oLeq:
		return Greater
	default:
		return Concurrent
	}
}

// IsValid reports whether both trees are in normalized canonical form.
// Stamps produced by this package are always valid; IsValid exists for
// checking stamps reconstructed by external collaborators.
func (s Stamp) IsValid() bool {
	return s.idTree().isNormalized() && s.evTree().isNormalized()
}
