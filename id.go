package treeclock

// idTree is the recursive ownership descriptor: which share of the
// replica-identity space a stamp owns.
//
// A node with nil children is a leaf; owns is meaningful only on leaves.
// Internal nodes split their scope in half between left and right.
//
// Normalized form never contains a node whose children are both owning
// leaves or both non-owning leaves; those collapse to a single leaf.
// All constructors and operations in this package produce normalized,
// freshly allocated trees, so no two stamps ever share a mutable subtree.
type idTree struct {
	owns        bool
	left, right *idTree
}

func idLeaf(owns bool) *idTree {
	return &idTree{owns: owns}
}

func idNode(left, right *idTree) *idTree {
	return &idTree{left: left, right: right}
}

func (t *idTree) isLeaf() bool { return t.left == nil }

// zeroID is the non-owning leaf used when a Stamp carries no id tree
// (the zero Stamp value and peeked stamps behave as non-owning).
func zeroID() *idTree { return idLeaf(false) }

func (t *idTree) clone() *idTree {
	if t.isLeaf() {
		return idLeaf(t.owns)
	}
	return idNode(t.left.clone(), t.right.clone())
}

func (t *idTree) equal(o *idTree) bool {
	if t.isLeaf() != o.isLeaf() {
		return false
	}
	if t.isLeaf() {
		return t.owns == o.owns
	}
	return t.left.equal(o.left) && t.right.equal(o.right)
}

// hasOwnership reports whether any leaf of the tree owns its scope.
// A stamp whose id has no ownership anywhere cannot record events.
func (t *idTree) hasOwnership() bool {
	if t.isLeaf() {
		return t.owns
	}
	return t.left.hasOwnership() || t.right.hasOwnership()
}

func (t *idTree) depth() int {
	if t.isLeaf() {
		return 1
	}
	l, r := t.left.depth(), t.right.depth()
	if l > r {
		return 1 + l
	}
	return 1 + r
}

// normalizeID returns the minimal equivalent tree: (0,0) collapses to 0
// and (1,1) collapses to 1, applied bottom-up. Idempotent. The result is
// freshly allocated and shares no nodes with the input.
func normalizeID(t *idTree) *idTree {
	if t.isLeaf() {
		return idLeaf(t.owns)
	}
	l := normalizeID(t.left)
	r := normalizeID(t.right)
	if l.isLeaf() && r.isLeaf() && l.owns == r.owns {
		return idLeaf(l.owns)
	}
	return idNode(l, r)
}

func (t *idTree) isNormalized() bool {
	if t.isLeaf() {
		return true
	}
	if t.left.isLeaf() && t.right.isLeaf() && t.left.owns == t.right.owns {
		return false
	}
	return t.left.isNormalized() && t.right.isNormalized()
}

// splitID partitions ownership into two disjoint halves that sum back to
// the original tree:
//
//	split(0)      = (0, 0)
//	split(1)      = ((1, 0), (0, 1))
//	split((0, i)) = ((0, i1), (0, i2))  where (i1, i2) = split(i)
//	split((i, 0)) = ((i1, 0), (i2, 0))  where (i1, i2) = split(i)
//	split((l, r)) = ((l, 0), (0, r))
//
// The policy is deterministic: a full leaf splits asymmetrically (left
// half to the first result), a node with one vacant side descends into
// the occupied side, and a node occupied on both sides hands one side to
// each result.
func splitID(t *idTree) (*idTree, *idTree) {
	if t.isLeaf() {
		if !t.owns {
			return idLeaf(false), idLeaf(false)
		}
		return idNode(idLeaf(true), idLeaf(false)), idNode(idLeaf(false), idLeaf(true))
	}
	leftVacant := t.left.isLeaf() && !t.left.owns
	rightVacant := t.right.isLeaf() && !t.right.owns
	switch {
	case leftVacant:
		r1, r2 := splitID(t.right)
		return idNode(idLeaf(false), r1), idNode(idLeaf(false), r2)
	case rightVacant:
		l1, l2 := splitID(t.left)
		return idNode(l1, idLeaf(false)), idNode(l2, idLeaf(false))
	default:
		return idNode(t.left.clone(), idLeaf(false)), idNode(idLeaf(false), t.right.clone())
	}
}

// sumID reunifies two disjoint ownership trees:
//
//	sum(0, x) = x
//	sum(x, 0) = x
//	sum((l1, r1), (l2, r2)) = norm((sum(l1, l2), sum(r1, r2)))
//
// Any other combination means both trees claim the same scope; summing
// overlapping ownership loses information, so it fails instead.
func sumID(a, b *idTree) (*idTree, error) {
	if a.isLeaf() && !a.owns {
		return b.clone(), nil
	}
	if b.isLeaf() && !b.owns {
		return a.clone(), nil
	}
	if a.isLeaf() || b.isLeaf() {
		return nil, errorf(KindInvalidArgument, "Join",
			"overlapping id intervals: both stamps own the same scope")
	}
	l, err := sumID(a.left, b.left)
	if err != nil {
		return nil, err
	}
	r, err := sumID(a.right, b.right)
	if err != nil {
		return nil, err
	}
	if l.isLeaf() && r.isLeaf() && l.owns == r.owns {
		return idLeaf(l.owns), nil
	}
	return idNode(l, r), nil
}
