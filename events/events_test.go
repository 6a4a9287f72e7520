package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/clone-chaos/constants"
)

func TestQueueFIFO(t *testing.T) {
	q := NewEventQueue()
	assert.Nil(t, q.Consume())

	now := time.Now()
	q.Push(GameEvent{Type: EventCloneSpawned, Timestamp: now})
	q.Push(GameEvent{Type: EventCloneFinished, Timestamp: now})
	require.Equal(t, 2, q.Len())

	got := q.Consume()
	require.Len(t, got, 2)
	assert.Equal(t, EventCloneSpawned, got[0].Type)
	assert.Equal(t, EventCloneFinished, got[1].Type)
	assert.Equal(t, 0, q.Len())
}

func TestQueueOverflowDropsOldest(t *testing.T) {
	q := NewEventQueue()
	for i := 0; i < constants.EventQueueSize+10; i++ {
		q.Push(GameEvent{Type: EventTimerWarning, Payload: &TimerWarningPayload{Seconds: i}})
	}

	assert.Equal(t, uint64(10), q.Dropped())
	got := q.Consume()
	require.Len(t, got, constants.EventQueueSize)
	assert.Equal(t, 10, got[0].Payload.(*TimerWarningPayload).Seconds)
}

func TestRouterDispatch(t *testing.T) {
	q := NewEventQueue()
	r := NewRouter(q)

	var order []string
	r.Register(HandlerFunc{
		Types: []EventType{EventCloneSpawned},
		Fn:    func(GameEvent) { order = append(order, "first") },
	})
	r.Register(HandlerFunc{
		Types: []EventType{EventCloneSpawned, EventTimeUp},
		Fn: func(ev GameEvent) {
			order = append(order, "second:"+ev.Type.String())
			if ev.Type == EventCloneSpawned {
				q.Push(GameEvent{Type: EventTimeUp})
			}
		},
	})

	assert.True(t, r.HasHandlers(EventCloneSpawned))
	assert.Equal(t, 2, r.HandlerCount(EventCloneSpawned))
	assert.False(t, r.HasHandlers(EventGameReset))

	q.Push(GameEvent{Type: EventCloneSpawned})
	n := r.DispatchAll()

	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"first", "second:EventCloneSpawned", "second:EventTimeUp"}, order)
}

func TestRegistryNames(t *testing.T) {
	et, ok := GetEventType("EventCloneInteraction")
	require.True(t, ok)
	assert.Equal(t, EventCloneInteraction, et)
	assert.Equal(t, "EventDangerLevelChange", EventDangerLevelChange.String())
	assert.Equal(t, "EventUnknown", EventType(999).String())
}
