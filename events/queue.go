package events

import (
	"github.com/lixenwraith/clone-chaos/constants"
)

// Sink accepts events; producers (clones, manager, timer, puzzle) depend on this only
type Sink interface {
	Push(event GameEvent)
}

// EventQueue is a fixed ring buffer of game events
// Single-threaded: producers and the consumer all run inside the game tick
//
// Overflow: oldest events are overwritten and counted in Dropped
type EventQueue struct {
	events  [constants.EventQueueSize]GameEvent
	head    uint64 // Read index
	tail    uint64 // Write index
	dropped uint64
}

func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push appends an event, overwriting the oldest when full
func (eq *EventQueue) Push(event GameEvent) {
	eq.events[eq.tail&constants.EventBufferMask] = event
	eq.tail++
	if eq.tail-eq.head > constants.EventQueueSize {
		eq.head = eq.tail - constants.EventQueueSize
		eq.dropped++
	}
}

// Consume returns all pending events in FIFO order and empties the queue
func (eq *EventQueue) Consume() []GameEvent {
	n := eq.tail - eq.head
	if n == 0 {
		return nil
	}
	result := make([]GameEvent, 0, n)
	for i := eq.head; i < eq.tail; i++ {
		idx := i & constants.EventBufferMask
		result = append(result, eq.events[idx])
		eq.events[idx] = GameEvent{}
	}
	eq.head = eq.tail
	return result
}

// Len returns the number of pending events
func (eq *EventQueue) Len() int {
	return int(eq.tail - eq.head)
}

// Dropped returns how many events were lost to overflow
func (eq *EventQueue) Dropped() uint64 {
	return eq.dropped
}
