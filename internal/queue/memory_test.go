package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_Publish(t *testing.T) {
	q := NewMemory()
	sub := q.Subscribe(4)

	event := &EntityChanged{Kind: "service", RootID: "r1", Operation: "publish", Time: time.Now()}
	require.NoError(t, q.Publish(context.TODO(), event))

	assert.Equal(t, []*EntityChanged{event}, q.Events())
	select {
	case got := <-sub:
		assert.Equal(t, "r1", got.RootID)
	default:
		t.Fatal("subscriber did not receive the event")
	}

	require.NoError(t, q.Close())
	_, open := <-sub
	assert.False(t, open)
}

func TestMemory_Bounded(t *testing.T) {
	q := NewBoundedMemory(2)
	for _, id := range []string{"r1", "r2", "r3"} {
		require.NoError(t, q.Publish(context.TODO(), &EntityChanged{Kind: "service", RootID: id, Operation: "create"}))
	}

	events := q.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "r2", events[0].RootID)
	assert.Equal(t, "r3", events[1].RootID)
}
