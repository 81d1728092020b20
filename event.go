package treeclock

import "math"

// eventTree is the recursive causal-history descriptor. A node with nil
// children is a leaf carrying a uniform counter over its whole scope; an
// internal node carries a base counter n plus two children whose counters
// are relative to n (a child position's effective value is n + the
// child's local value).
//
// Normalized form keeps the base counter maximal at every level: children
// never share a common liftable minimum, and two equal leaf children
// collapse into their parent. Counters are monotonic; no operation in
// this package ever decreases one.
type eventTree struct {
	n           uint64
	left, right *eventTree
}

func evLeaf(n uint64) *eventTree {
	return &eventTree{n: n}
}

func evNode(n uint64, left, right *eventTree) *eventTree {
	return &eventTree{n: n, left: left, right: right}
}

func (t *eventTree) isLeaf() bool { return t.left == nil }

// zeroEvent is the empty history used when a Stamp carries no event tree.
func zeroEvent() *eventTree { return evLeaf(0) }

func (t *eventTree) clone() *eventTree {
	if t.isLeaf() {
		return evLeaf(t.n)
	}
	return evNode(t.n, t.left.clone(), t.right.clone())
}

func (t *eventTree) equal(o *eventTree) bool {
	if t.isLeaf() != o.isLeaf() || t.n != o.n {
		return false
	}
	if t.isLeaf() {
		return true
	}
	return t.left.equal(o.left) && t.right.equal(o.right)
}

func (t *eventTree) depth() int {
	if t.isLeaf() {
		return 1
	}
	l, r := t.left.depth(), t.right.depth()
	if l > r {
		return 1 + l
	}
	return 1 + r
}

// maxVal is the maximum effective counter anywhere in the tree.
func (t *eventTree) maxVal() uint64 {
	if t.isLeaf() {
		return t.n
	}
	l, r := t.left.maxVal(), t.right.maxVal()
	if l < r {
		l = r
	}
	return satAdd(t.n, l)
}

// minVal is the minimum effective counter anywhere in the tree. For a
// normalized tree this is simply the base counter.
func (t *eventTree) minVal() uint64 {
	if t.isLeaf() {
		return t.n
	}
	l, r := t.left.minVal(), t.right.minVal()
	if l > r {
		l = r
	}
	return satAdd(t.n, l)
}

// normalizeEvent returns the minimal equivalent tree: equal leaf children
// collapse into the parent, and the common minimum of a node's children
// lifts into the node's base counter. Applied bottom-up; idempotent. The
// result is freshly allocated.
func normalizeEvent(t *eventTree) *eventTree {
	if t.isLeaf() {
		return evLeaf(t.n)
	}
	l := normalizeEvent(t.left)
	r := normalizeEvent(t.right)
	if l.isLeaf() && r.isLeaf() && l.n == r.n {
		return evLeaf(t.n + l.n)
	}
	m := l.n
	if r.n < m {
		m = r.n
	}
	return evNode(t.n+m, sink(l, m), sink(r, m))
}

// sink subtracts m from the tree's base counter. m never exceeds the base
// (it is the minimum of sibling bases computed by the caller), so the
// subtraction cannot underflow.
func sink(t *eventTree, m uint64) *eventTree {
	if t.isLeaf() {
		return evLeaf(t.n - m)
	}
	return evNode(t.n-m, t.left, t.right)
}

func (t *eventTree) isNormalized() bool {
	if t.isLeaf() {
		return true
	}
	if t.left.isLeaf() && t.right.isLeaf() && t.left.n == t.right.n {
		return false
	}
	if t.left.n > 0 && t.right.n > 0 {
		return false
	}
	return t.left.isNormalized() && t.right.isNormalized()
}

// joinEvents merges two histories into their pointwise maximum: for every
// scope position the merged counter is the larger of the two inputs'
// effective counters there. Mismatched shapes are handled by treating a
// leaf as a uniform node of its own value at every depth. The result is
// normalized.
//
// Fails only if an effective counter overflows the 64-bit counter width.
func joinEvents(a, b *eventTree) (*eventTree, error) {
	merged, err := joinAt(a, 0, b, 0)
	if err != nil {
		return nil, err
	}
	return normalizeEvent(merged), nil
}

// joinAt merges subtrees whose counters are relative to the accumulated
// offsets ao and bo. It produces a tree with absolute counters (zero
// bases on internal nodes) which the caller normalizes.
func joinAt(a *eventTree, ao uint64, b *eventTree, bo uint64) (*eventTree, error) {
	av, err := addCounters(ao, a.n, "Join")
	if err != nil {
		return nil, err
	}
	bv, err := addCounters(bo, b.n, "Join")
	if err != nil {
		return nil, err
	}
	if a.isLeaf() && b.isLeaf() {
		return evLeaf(maxU64(av, bv)), nil
	}
	al, ar := a.left, a.right
	if a.isLeaf() {
		al, ar = evLeaf(0), evLeaf(0)
	}
	bl, br := b.left, b.right
	if b.isLeaf() {
		bl, br = evLeaf(0), evLeaf(0)
	}
	l, err := joinAt(al, av, bl, bv)
	if err != nil {
		return nil, err
	}
	r, err := joinAt(ar, av, br, bv)
	if err != nil {
		return nil, err
	}
	return evNode(0, l, r), nil
}

// leqEvents reports whether a's history is entirely dominated by b's:
// at every scope position a's effective counter is <= b's.
//
// The recursion threads accumulated offsets instead of subtracting bases,
// so counter underflow is impossible by construction; the offsets make
// the leaf-versus-node shape mismatch cases uniform.
func leqEvents(a, b *eventTree) bool {
	return leqAt(a, 0, b, 0)
}

func leqAt(a *eventTree, ao uint64, b *eventTree, bo uint64) bool {
	av := satAdd(ao, a.n)
	bv := satAdd(bo, b.n)
	switch {
	case a.isLeaf() && b.isLeaf():
		return av <= bv
	case a.isLeaf():
		// Uniform value must be dominated across both halves of b.
		return leqAt(a, ao, b.left, bv) && leqAt(a, ao, b.right, bv)
	case b.isLeaf():
		return leqAt(a.left, av, b, bo) && leqAt(a.right, av, b, bo)
	default:
		return leqAt(a.left, av, b.left, bv) && leqAt(a.right, av, b.right, bv)
	}
}

func addCounters(a, b uint64, op string) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, errorf(KindInvalidState, op, "event counter overflow")
	}
	return a + b, nil
}

// satAdd saturates instead of failing; used only by comparisons, which
// return plain booleans. A saturated counter compares correctly because
// both sides saturate at the same ceiling.
func satAdd(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}

func maxU64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}
