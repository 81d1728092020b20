package treeclock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeed(t *testing.T) {
	s := NewSeed()
	assert.Equal(t, "{1; 0}", s.String())
	assert.True(t, s.IsValid())
}

// The canonical lifecycle: the seed advances, forks into two halves that
// advance independently and become concurrent, and a join flattens both
// histories back into a single counter.
func TestStamp_SeedForkEventJoin(t *testing.T) {
	s := NewSeed()

	s, err := s.Event()
	require.NoError(t, err)
	assert.Equal(t, "{1; 1}", s.String())

	a, b := s.Fork()
	assert.Equal(t, "{(1, 0); 1}", a.String())
	assert.Equal(t, "{(0, 1); 1}", b.String())

	a2, err := a.Event()
	require.NoError(t, err)
	assert.Equal(t, "{(1, 0); (1, 1, 0)}", a2.String(),
		"event must advance only the owned half")

	b2, err := b.Event()
	require.NoError(t, err)
	assert.Equal(t, "{(0, 1); (1, 0, 1)}", b2.String())

	assert.Equal(t, Concurrent, a2.Compare(b2))
	assert.Equal(t, Concurrent, b2.Compare(a2))

	m, err := a2.Join(b2)
	require.NoError(t, err)
	assert.Equal(t, "{1; 2}", m.String())
	assert.Equal(t, Less, a2.Compare(m))
	assert.Equal(t, Less, b2.Compare(m))
}

func TestFork_JoinIdentity(t *testing.T) {
	// Stamps at several points of a fork/event lineage.
	stamps := []Stamp{NewSeed()}
	s := NewSeed()
	for i := 0; i < 4; i++ {
		var err error
		s, err = s.Event()
		require.NoError(t, err)
		a, b := s.Fork()
		stamps = append(stamps, s, a, b)
		s = a
	}

	for i, st := range stamps {
		a, b := st.Fork()
		joined, err := a.Join(b)
		require.NoError(t, err, "stamp %d", i)

		assert.Equal(t, Equal, joined.Compare(st), "stamp %d: join(fork(s)) != s", i)
		assert.True(t, joined.idTree().equal(st.idTree()),
			"stamp %d: id must normalize back to the original", i)
	}
}

func TestEvent_StrictlyMonotonic(t *testing.T) {
	s := NewSeed()
	for i := 0; i < 8; i++ {
		next, err := s.Event()
		require.NoError(t, err)

		assert.True(t, s.Leq(next), "step %d", i)
		assert.Equal(t, Less, s.Compare(next), "step %d: event must strictly advance", i)
		assert.Equal(t, Greater, next.Compare(s), "step %d", i)

		// Alternate halves to exercise fill and grow paths.
		if i%2 == 0 {
			next, _ = next.Fork()
		} else {
			_, next = next.Fork()
		}
		s = next
	}
}

func TestEvent_FillPathAdvancesWithoutGrowth(t *testing.T) {
	s, err := NewSeed().Event()
	require.NoError(t, err)
	a, b := s.Fork()

	a, err = a.Event()
	require.NoError(t, err)

	// Joining the advanced half back with the idle peer gives ownership
	// headroom: the next event flattens via fill instead of growing.
	m, err := a.Join(b)
	require.NoError(t, err)
	assert.Equal(t, "{1; (1, 1, 0)}", m.String())

	m, err = m.Event()
	require.NoError(t, err)
	assert.Equal(t, "{1; 2}", m.String())
}

func TestEvent_FailsWithoutOwnership(t *testing.T) {
	s, err := NewSeed().Event()
	require.NoError(t, err)

	_, err = s.Peek().Event()
	require.Error(t, err)
	assert.True(t, IsInvalidState(err), "want InvalidState, got %v", err)

	var zero Stamp
	_, err = zero.Event()
	require.Error(t, err)
	assert.True(t, IsInvalidState(err), "want InvalidState, got %v", err)
}

func TestEvent_LeavesInputUntouchedOnFailure(t *testing.T) {
	s := NewSeed()
	p := s.Peek()
	before := p.String()

	_, err := p.Event()
	require.Error(t, err)
	assert.Equal(t, before, p.String())
	assert.True(t, p.IsValid())
}

func TestJoin_OverlappingOwnershipFails(t *testing.T) {
	a := NewSeed()
	b := NewSeed()

	_, err := a.Join(b)
	require.Error(t, err)
	assert.True(t, IsInvalidArgument(err), "want InvalidArgument, got %v", err)

	// Partial overlap: two left halves of independent fork steps.
	l1, _ := a.Fork()
	l2, _ := b.Fork()
	_, err = l1.Join(l2)
	require.Error(t, err)
	assert.True(t, IsInvalidArgument(err), "want InvalidArgument, got %v", err)
}

func TestJoin_CommutativeAndIdempotent(t *testing.T) {
	s, err := NewSeed().Event()
	require.NoError(t, err)
	a, b := s.Fork()
	a, err = a.Event()
	require.NoError(t, err)
	b, err = b.Event()
	require.NoError(t, err)

	ab, err := a.Join(b)
	require.NoError(t, err)
	ba, err := b.Join(a)
	require.NoError(t, err)
	assert.Equal(t, Equal, ab.Compare(ba), "join must be commutative")
	assert.True(t, ab.idTree().equal(ba.idTree()))

	// Re-joining a non-owning view of one input changes nothing causally.
	again, err := a.Peek().Join(ab)
	require.NoError(t, err)
	assert.Equal(t, Equal, again.Compare(ab), "join must be idempotent")
}

func TestJoin_WithPeekAdoptsHistoryOnly(t *testing.T) {
	s, err := NewSeed().Event()
	require.NoError(t, err)
	a, b := s.Fork()

	b2, err := b.Event()
	require.NoError(t, err)

	m, err := a.Join(b2.Peek())
	require.NoError(t, err)
	assert.True(t, m.idTree().equal(a.idTree()),
		"joining a peek must not transfer ownership")
	assert.Equal(t, Equal, m.Compare(mustJoin(t, b2.Peek(), a)),
		"history adoption must not depend on join direction")
}

func mustJoin(t *testing.T, a, b Stamp) Stamp {
	t.Helper()
	m, err := a.Join(b)
	require.NoError(t, err)
	return m
}

func TestPeek(t *testing.T) {
	s, err := NewSeed().Event()
	require.NoError(t, err)

	p := s.Peek()
	assert.Equal(t, "{0; 1}", p.String())
	assert.Equal(t, Equal, p.Compare(s), "peek shares the full history")
	assert.True(t, p.IsValid())
}

func TestCompare_Antisymmetry(t *testing.T) {
	seed := NewSeed()
	advanced, err := seed.Event()
	require.NoError(t, err)
	a, b := advanced.Fork()
	a, err = a.Event()
	require.NoError(t, err)
	b, err = b.Event()
	require.NoError(t, err)

	inverse := map[Ordering]Ordering{
		Less:       Greater,
		Greater:    Less,
		Equal:      Equal,
		Concurrent: Concurrent,
	}

	pairs := []struct {
		name string
		x, y Stamp
	}{
		{"seed vs advanced", seed, advanced},
		{"advanced vs seed", advanced, seed},
		{"concurrent halves", a, b},
		{"identical histories", advanced.Peek(), advanced},
		{"self", a, a},
	}
	for _, p := range pairs {
		t.Run(p.name, func(t *testing.T) {
			xy := p.x.Compare(p.y)
			yx := p.y.Compare(p.x)
			assert.Equal(t, inverse[xy], yx, "Compare(%s, %s)=%s but Compare(%s, %s)=%s",
				p.x, p.y, xy, p.y, p.x, yx)
		})
	}
}

func TestCompare_AllOrderings(t *testing.T) {
	s, err := NewSeed().Event()
	require.NoError(t, err)
	a, b := s.Fork()
	a2, err := a.Event()
	require.NoError(t, err)

	assert.Equal(t, Equal, a.Compare(b))
	assert.Equal(t, Less, a.Compare(a2))
	assert.Equal(t, Greater, a2.Compare(a))
	assert.Equal(t, Concurrent, func() Ordering {
		b2, err := b.Event()
		require.NoError(t, err)
		return a2.Compare(b2)
	}())
}

func TestOrdering_String(t *testing.T) {
	assert.Equal(t, "less", Less.String())
	assert.Equal(t, "greater", Greater.String())
	assert.Equal(t, "equal", Equal.String())
	assert.Equal(t, "concurrent", Concurrent.String())
	assert.Equal(t, "unknown", Ordering(99).String())
}

func TestFork_NoAliasingBetweenChildren(t *testing.T) {
	s, err := NewSeed().Event()
	require.NoError(t, err)
	a, b := s.Fork()

	// Advancing one child must not disturb the other or the parent.
	before := b.String()
	parentBefore := s.String()
	_, err = a.Event()
	require.NoError(t, err)

	assert.Equal(t, before, b.String())
	assert.Equal(t, parentBefore, s.String())
}

func TestZeroStamp(t *testing.T) {
	var zero Stamp
	assert.Equal(t, "{0; 0}", zero.String())
	assert.True(t, zero.IsValid())
	assert.Equal(t, Less, zero.Compare(mustEvent(t, NewSeed())))

	// A zero stamp can adopt ownership via join.
	m, err := zero.Join(NewSeed())
	require.NoError(t, err)
	assert.Equal(t, "{1; 0}", m.String())
}

func mustEvent(t *testing.T, s Stamp) Stamp {
	t.Helper()
	next, err := s.Event()
	require.NoError(t, err)
	return next
}
