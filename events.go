package stride

import (
	"github.com/akmonengine/stride/actor"
	"github.com/akmonengine/stride/collider"
	"github.com/akmonengine/stride/resolve"
)

const (
	LAND EventType = iota
	LEAVE_GROUND
	COLLISION_ENTER
	COLLISION_STAY
	COLLISION_EXIT
)

// pairKey identifies a character touching a collider
type pairKey struct {
	character *actor.Character
	collider  collider.Collider
}

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// Ground events
type LandEvent struct {
	Character *actor.Character
	Ground    collider.Collider
}

func (e LandEvent) Type() EventType { return LAND }

type LeaveGroundEvent struct {
	Character *actor.Character
}

func (e LeaveGroundEvent) Type() EventType { return LEAVE_GROUND }

// Collision events
type CollisionEnterEvent struct {
	Character *actor.Character
	Collider  collider.Collider
}

func (e CollisionEnterEvent) Type() EventType { return COLLISION_ENTER }

type CollisionStayEvent struct {
	Character *actor.Character
	Collider  collider.Collider
}

func (e CollisionStayEvent) Type() EventType { return COLLISION_STAY }

type CollisionExitEvent struct {
	Character *actor.Character
	Collider  collider.Collider
}

func (e CollisionExitEvent) Type() EventType { return COLLISION_EXIT }

// EventListener - callback for events
type EventListener func(event Event)

// Events manager
type Events struct {
	// Listeners by event type
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event

	// Collision tracking for Enter/Stay/Exit detection. The order slices
	// keep the pairs in recording order so events come out deterministic.
	previousActivePairs map[pairKey]bool
	currentActivePairs  map[pairKey]bool
	previousOrder       []pairKey
	currentOrder        []pairKey

	groundStates map[*actor.Character]bool
}

func NewEvents() Events {
	return Events{
		listeners:           make(map[EventType][]EventListener),
		buffer:              make([]Event, 0, 256),
		previousActivePairs: make(map[pairKey]bool),
		currentActivePairs:  make(map[pairKey]bool),
		groundStates:        make(map[*actor.Character]bool),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	e.init()
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// init makes a zero Events usable
func (e *Events) init() {
	if e.listeners == nil {
		*e = NewEvents()
	}
}

// recordResult is called once per character and step, in character order
func (e *Events) recordResult(character *actor.Character, result resolve.Result) {
	e.init()

	for _, blocker := range result.Blockers {
		e.activate(pairKey{character: character, collider: blocker})
	}
	if result.Collided && result.CollidedWith != nil {
		e.activate(pairKey{character: character, collider: result.CollidedWith})
	}

	wasGrounded, exists := e.groundStates[character]
	e.groundStates[character] = result.OnGround
	if !exists {
		return
	}

	if !wasGrounded && result.OnGround {
		e.buffer = append(e.buffer, LandEvent{Character: character, Ground: result.GroundCollider})
	} else if wasGrounded && !result.OnGround {
		e.buffer = append(e.buffer, LeaveGroundEvent{Character: character})
	}
}

func (e *Events) activate(pair pairKey) {
	if e.currentActivePairs[pair] {
		return
	}
	e.currentActivePairs[pair] = true
	e.currentOrder = append(e.currentOrder, pair)
}

// forget drops every tracked state of a removed character
func (e *Events) forget(character *actor.Character) {
	delete(e.groundStates, character)
	e.dropPrevious(func(pair pairKey) bool { return pair.character == character })
}

// forgetCollider drops the contacts with a removed collider, without Exit events
func (e *Events) forgetCollider(c collider.Collider) {
	e.dropPrevious(func(pair pairKey) bool { return pair.collider == c })
}

func (e *Events) dropPrevious(match func(pair pairKey) bool) {
	kept := e.previousOrder[:0]
	for _, pair := range e.previousOrder {
		if match(pair) {
			delete(e.previousActivePairs, pair)
			continue
		}
		kept = append(kept, pair)
	}
	e.previousOrder = kept
}

// processCollisionEvents compares current and previous pairs to detect Enter/Stay/Exit.
// Characters are visited in order, and each character's pairs in the order
// they were recorded.
func (e *Events) processCollisionEvents(characters []*actor.Character) {
	// Detect Enter and Stay events
	for _, character := range characters {
		for _, pair := range e.currentOrder {
			if pair.character != character {
				continue
			}

			if e.previousActivePairs[pair] {
				// Pair was active before and still is, Stay
				e.buffer = append(e.buffer, CollisionStayEvent{
					Character: pair.character,
					Collider:  pair.collider,
				})
			} else {
				// New pair, Enter
				e.buffer = append(e.buffer, CollisionEnterEvent{
					Character: pair.character,
					Collider:  pair.collider,
				})
			}
		}
	}

	// Detect Exit events
	for _, character := range characters {
		for _, pair := range e.previousOrder {
			if pair.character == character && !e.currentActivePairs[pair] {
				// Pair was active but is no longer, Exit
				e.buffer = append(e.buffer, CollisionExitEvent{
					Character: pair.character,
					Collider:  pair.collider,
				})
			}
		}
	}

	// Swap for next step and clear current
	e.previousActivePairs, e.currentActivePairs = e.currentActivePairs, e.previousActivePairs
	e.previousOrder, e.currentOrder = e.currentOrder, e.previousOrder[:0]
	clear(e.currentActivePairs)
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush(characters []*actor.Character) {
	e.init()
	e.processCollisionEvents(characters)

	for _, event := range e.buffer {
		if listeners, ok := e.listeners[event.Type()]; ok {
			for _, listener := range listeners {
				listener(event)
			}
		}
	}
	e.buffer = e.buffer[:0]
}
