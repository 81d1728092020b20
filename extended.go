package treeclock

// Extended component API: standalone ID and Event values for callers that
// manipulate the two halves of a stamp directly (interoperability shims,
// debugging front-ends). Regular causality tracking needs only Stamp.

// ID is a standalone identity tree: which share of the replica-identity
// space its holder owns. Immutable; operations return new values.
//
// The zero ID owns nothing.
type ID struct {
	tree *idTree
}

// NewID returns the seed id, owning the whole identity space.
func NewID() ID {
	return ID{tree: idLeaf(true)}
}

func (i ID) idTree() *idTree {
	if i.tree == nil {
		return zeroID()
	}
	return i.tree
}

// Split partitions the id into two disjoint halves that sum back to the
// original. Deterministic; see Stamp.Fork for the policy.
func (i ID) Split() (ID, ID) {
	l, r := splitID(i.idTree())
	return ID{tree: l}, ID{tree: r}
}

// Sum reunifies two disjoint ids. Fails with KindInvalidArgument if the
// ownership intervals overlap.
func (i ID) Sum(o ID) (ID, error) {
	t, err := sumID(i.idTree(), o.idTree())
	if err != nil {
		return ID{}, err
	}
	return ID{tree: t}, nil
}

// IsValid reports whether the id is in normalized canonical form.
func (i ID) IsValid() bool {
	return i.idTree().isNormalized()
}

// Event is a standalone causal-history tree.
//
// The zero Event is the empty history.
type Event struct {
	tree *eventTree
}

// NewEvent returns the empty history.
func NewEvent() Event {
	return Event{tree: evLeaf(0)}
}

func (e Event) evTree() *eventTree {
	if e.tree == nil {
		return zeroEvent()
	}
	return e.tree
}

// Join merges two histories into their pointwise maximum. Fails only on
// counter overflow.
func (e Event) Join(o Event) (Event, error) {
	t, err := joinEvents(e.evTree(), o.evTree())
	if err != nil {
		return Event{}, err
	}
	return Event{tree: t}, nil
}

// Leq reports whether e's history is entirely dominated by o's.
func (e Event) Leq(o Event) bool {
	return leqEvents(e.evTree(), o.evTree())
}

// IsValid reports whether the event tree is in normalized canonical form.
func (e Event) IsValid() bool {
	return e.evTree().isNormalized()
}

// ID returns a copy of the stamp's identity component.
func (s Stamp) ID() ID {
	return ID{tree: s.idTree().clone()}
}

// History returns a copy of the stamp's event component.
func (s Stamp) History() Event {
	return Event{tree: s.evTree().clone()}
}

// NewStampFrom assembles a stamp from explicit components. Both trees are
// normalized and copied, so the inputs stay independent of the result.
func NewStampFrom(id ID, ev Event) Stamp {
	return Stamp{
		id: normalizeID(id.idTree()),
		ev: normalizeEvent(ev.evTree()),
	}
}
