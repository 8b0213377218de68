// Package events carries combat and perk notifications to observers such as
// the HUD or the balance recorder. Publishing never blocks the tick on a
// consumer: handlers run inline and must return quickly.
package events

import "sync"

// Kind identifies an event type
type Kind int

const (
	KindPerkAdded Kind = iota
	KindPerkLeveledUp
	KindWeaponFired
	KindTargetHit
	KindTargetKilled
)

func (k Kind) String() string {
	switch k {
	case KindPerkAdded:
		return "perk_added"
	case KindPerkLeveledUp:
		return "perk_leveled_up"
	case KindWeaponFired:
		return "weapon_fired"
	case KindTargetHit:
		return "target_hit"
	case KindTargetKilled:
		return "target_killed"
	default:
		return "unknown"
	}
}

// Event is implemented by every payload published on the bus
type Event interface {
	Kind() Kind
}

type PerkAdded struct {
	PerkKey string
	Level   int
}

type PerkLeveledUp struct {
	PerkKey string
	Level   int
}

type WeaponFired struct {
	WeaponKey string
	Time      float64
	Crit      bool
}

type TargetHit struct {
	Target uint64
	Source string
	Amount float64
	Crit   bool
}

type TargetKilled struct {
	Target uint64
	Source string
}

func (PerkAdded) Kind() Kind     { return KindPerkAdded }
func (PerkLeveledUp) Kind() Kind { return KindPerkLeveledUp }
func (WeaponFired) Kind() Kind   { return KindWeaponFired }
func (TargetHit) Kind() Kind     { return KindTargetHit }
func (TargetKilled) Kind() Kind  { return KindTargetKilled }

// Handler receives published events
type Handler func(Event)

// Bus is a synchronous fan-out of events by kind
type Bus struct {
	mu       sync.RWMutex
	handlers map[Kind][]Handler
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[Kind][]Handler)}
}

// Subscribe registers h for events of kind k
func (b *Bus) Subscribe(k Kind, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[k] = append(b.handlers[k], h)
}

// Publish delivers e to every handler of its kind. A nil bus drops the event.
func (b *Bus) Publish(e Event) {
	if b == nil {
		return
	}
	b.mu.RLock()
	hs := b.handlers[e.Kind()]
	b.mu.RUnlock()
	for _, h := range hs {
		h(e)
	}
}
