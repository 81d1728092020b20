package treeclock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_SplitAndSum(t *testing.T) {
	id := NewID()
	assert.Equal(t, "1", id.String())
	assert.True(t, id.IsValid())

	l, r := id.Split()
	assert.Equal(t, "(1, 0)", l.String())
	assert.Equal(t, "(0, 1)", r.String())

	sum, err := l.Sum(r)
	require.NoError(t, err)
	assert.Equal(t, "1", sum.String())

	_, err = l.Sum(l)
	require.Error(t, err)
	assert.True(t, IsInvalidArgument(err), "want InvalidArgument, got %v", err)
}

func TestID_ZeroValueOwnsNothing(t *testing.T) {
	var id ID
	assert.Equal(t, "0", id.String())
	assert.True(t, id.IsValid())

	l, r := id.Split()
	assert.Equal(t, "0", l.String())
	assert.Equal(t, "0", r.String())

	sum, err := id.Sum(NewID())
	require.NoError(t, err)
	assert.Equal(t, "1", sum.String())
}

func TestEvent_JoinAndLeq(t *testing.T) {
	s := mustEvent(t, NewSeed())
	a, b := s.Fork()
	a = mustEvent(t, a)
	b = mustEvent(t, b)

	ha, hb := a.History(), b.History()
	assert.False(t, ha.Leq(hb))
	assert.False(t, hb.Leq(ha))

	merged, err := ha.Join(hb)
	require.NoError(t, err)
	assert.Equal(t, "2", merged.String())
	assert.True(t, ha.Leq(merged))
	assert.True(t, hb.Leq(merged))
	assert.True(t, merged.IsValid())
}

func TestEvent_ZeroValueIsEmptyHistory(t *testing.T) {
	var e Event
	assert.Equal(t, "0", e.String())
	assert.True(t, e.IsValid())
	assert.True(t, e.Leq(NewEvent()))
}

func TestStamp_ComponentsAreCopies(t *testing.T) {
	s := mustEvent(t, NewSeed())

	id := s.ID()
	ev := s.History()
	assert.Equal(t, "1", id.String())
	assert.Equal(t, "1", ev.String())

	// Splitting the extracted id must not disturb the stamp.
	id.Split()
	assert.Equal(t, "{1; 1}", s.String())
}

func TestNewStampFrom(t *testing.T) {
	s := mustEvent(t, NewSeed())
	a, b := s.Fork()

	rebuilt := NewStampFrom(a.ID(), a.History())
	assert.Equal(t, Equal, rebuilt.Compare(a))
	assert.True(t, rebuilt.idTree().equal(a.idTree()))

	// Components survive a wire trip through the extended codec.
	rawID, err := b.ID().MarshalBinary()
	require.NoError(t, err)
	rawEv, err := b.History().MarshalBinary()
	require.NoError(t, err)

	id, err := UnmarshalID(rawID)
	require.NoError(t, err)
	ev, err := UnmarshalEvent(rawEv)
	require.NoError(t, err)

	restored := NewStampFrom(id, ev)
	assert.Equal(t, Equal, restored.Compare(b))
	assert.True(t, restored.idTree().equal(b.idTree()))
}

func TestNewStampFrom_Normalizes(t *testing.T) {
	id := ID{tree: idNode(idLeaf(true), idLeaf(true))}
	ev := Event{tree: evNode(0, evLeaf(1), evLeaf(1))}
	assert.False(t, id.IsValid())
	assert.False(t, ev.IsValid())

	s := NewStampFrom(id, ev)
	assert.Equal(t, "{1; 1}", s.String())
	assert.True(t, s.IsValid())
}
