package treeclock

// fillEvent raises counters within the scope owned by id up to the
// maximum counter reachable in that scope, never lowering a value
// anywhere:
//
//	fill(0, e)             = e
//	fill(1, e)             = leaf(max(e))
//	fill(i, leaf n)        = leaf n
//	fill((1, ir), (n, el, er)) = norm((n, leaf(max(max(el), min(er'))), er'))
//	                             where er' = fill(ir, er)
//	fill((il, 1), (n, el, er)) = symmetric
//	fill((il, ir), (n, el, er)) = norm((n, fill(il, el), fill(ir, er)))
//
// A changed result constitutes a causal advance: some counter inside the
// owned scope strictly increased. If the result equals the input, the
// owned scope was already flat and the caller must grow instead.
func fillEvent(id *idTree, ev *eventTree) *eventTree {
	if id.isLeaf() {
		if !id.owns {
			return ev.clone()
		}
		return evLeaf(ev.maxVal())
	}
	if ev.isLeaf() {
		return ev.clone()
	}
	leftFull := id.left.isLeaf() && id.left.owns
	rightFull := id.right.isLeaf() && id.right.owns
	switch {
	case leftFull:
		r := fillEvent(id.right, ev.right)
		l := evLeaf(maxU64(ev.left.maxVal(), r.minVal()))
		return normalizeEvent(evNode(ev.n, l, r))
	case rightFull:
		l := fillEvent(id.left, ev.left)
		r := evLeaf(maxU64(ev.right.maxVal(), l.minVal()))
		return normalizeEvent(evNode(ev.n, l, r))
	default:
		return normalizeEvent(evNode(ev.n, fillEvent(id.left, ev.left), fillEvent(id.right, ev.right)))
	}
}

// growExpandCost is charged when growth must split a leaf into a node.
// It exceeds any realistic descent cost, so candidate expansions deeper
// in an existing structure always win over creating new structure.
const growExpandCost = 1 << 20

// growEvent structurally grows the tree at a point owned by id so that an
// increment becomes possible, choosing the globally minimal-cost growth
// across the recursion:
//
//	grow(1, leaf n)             = (leaf n+1, 0)
//	grow(i, leaf n)             = grow(i, (n, 0, 0)) plus the expand cost
//	grow((0, ir), (n, el, er))  = descend right, cost+1
//	grow((il, 0), (n, el, er))  = descend left, cost+1
//	grow((il, ir), (n, el, er)) = cheaper of descending left or right,
//	                              left on ties, cost+1
//
// Fails if the id owns nothing in the region being grown or if the
// incremented counter would overflow.
func growEvent(id *idTree, ev *eventTree) (*eventTree, int, error) {
	if id.isLeaf() && !id.owns {
		return nil, 0, errorf(KindInvalidState, "Event",
			"cannot grow event tree: stamp owns no interval")
	}
	if ev.isLeaf() {
		if id.isLeaf() { // id owns, checked above
			n, err := addCounters(ev.n, 1, "Event")
			if err != nil {
				return nil, 0, err
			}
			return evLeaf(n), 0, nil
		}
		grown, cost, err := growEvent(id, evNode(ev.n, evLeaf(0), evLeaf(0)))
		if err != nil {
			return nil, 0, err
		}
		return grown, cost + growExpandCost, nil
	}
	// ev is a node. A full-leaf id may grow either half; a split id may
	// grow only within the halves it owns.
	var leftID, rightID *idTree
	if id.isLeaf() {
		leftID, rightID = idLeaf(true), idLeaf(true)
	} else {
		leftID, rightID = id.left, id.right
	}
	leftVacant := leftID.isLeaf() && !leftID.owns
	rightVacant := rightID.isLeaf() && !rightID.owns
	switch {
	case leftVacant && rightVacant:
		return nil, 0, errorf(KindInvalidState, "Event",
			"cannot grow event tree: stamp owns no interval")
	case leftVacant:
		r, cost, err := growEvent(rightID, ev.right)
		if err != nil {
			return nil, 0, err
		}
		return evNode(ev.n, ev.left.clone(), r), cost + 1, nil
	case rightVacant:
		l, cost, err := growEvent(leftID, ev.left)
		if err != nil {
			return nil, 0, err
		}
		return evNode(ev.n, l, ev.right.clone()), cost + 1, nil
	default:
		l, lCost, lErr := growEvent(leftID, ev.left)
		r, rCost, rErr := growEvent(rightID, ev.right)
		switch {
		case lErr != nil && rErr != nil:
			return nil, 0, lErr
		case lErr != nil:
			return evNode(ev.n, ev.left.clone(), r), rCost + 1, nil
		case rErr != nil:
			return evNode(ev.n, l, ev.right.clone()), lCost + 1, nil
		case lCost <= rCost:
			return evNode(ev.n, l, ev.right.clone()), lCost + 1, nil
		default:
			return evNode(ev.n, ev.left.clone(), r), rCost + 1, nil
		}
	}
}
