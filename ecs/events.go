package ecs

// EventType names an event pushed by a system for the simulation driver.
type EventType string

const (
	// EventLevelComplete fires when the player touches an unlocked goal.
	EventLevelComplete EventType = "level_complete"
	// EventPlayerRespawned fires after a fall resets the player to the checkpoint.
	EventPlayerRespawned EventType = "player_respawned"
	// EventEnemyDefeated fires when an enemy is removed by combat.
	EventEnemyDefeated EventType = "enemy_defeated"
	// EventPlayerDamaged fires when the damage rule costs the player a life.
	EventPlayerDamaged EventType = "player_damaged"
)

// Event is a generic ECS event payload.
type Event struct {
	Type EventType
	Data any
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
