package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInboxDrainRequiresSeal(t *testing.T) {
	in := NewInbox()
	in.Push(Insert(1, testPink, unitRect))

	assert.Nil(t, in.Drain(), "registry must not consume before producers are done")
	assert.Equal(t, 1, in.Len())

	in.Seal()
	events := in.Drain()
	require.Len(t, events, 1)
	assert.Equal(t, EventInsert, events[0].Kind)
	assert.False(t, in.IsSealed(), "drain reopens the inbox for the next frame")
	assert.Equal(t, 0, in.Len())
}

func TestInboxPreservesArrivalOrder(t *testing.T) {
	in := NewInbox()
	in.Push(Insert(2, testPink, unitRect))
	in.Push(Remove(1))
	in.Push(Insert(1, testGreen, unitRect))
	in.Seal()

	events := in.Drain()
	require.Len(t, events, 3)
	assert.Equal(t, Insert(2, testPink, unitRect), events[0])
	assert.Equal(t, Remove(1), events[1])
	assert.Equal(t, Insert(1, testGreen, unitRect), events[2])
}

func TestInboxDefersLateEvents(t *testing.T) {
	in := NewInbox()
	in.Push(Insert(1, testPink, unitRect))
	in.Seal()
	in.Push(Insert(2, testPink, unitRect))
	assert.Equal(t, 1, in.Deferred())

	first := in.Drain()
	require.Len(t, first, 1)
	assert.Equal(t, Insert(1, testPink, unitRect), first[0])

	in.Seal()
	second := in.Drain()
	require.Len(t, second, 1)
	assert.Equal(t, Insert(2, testPink, unitRect), second[0])
}

func TestInboxReset(t *testing.T) {
	in := NewInbox()
	in.Push(Remove(1))
	in.Seal()
	in.Push(Remove(2))

	in.Reset()
	assert.Equal(t, 0, in.Len())
	assert.Equal(t, 0, in.Deferred())
	assert.False(t, in.IsSealed())
}
