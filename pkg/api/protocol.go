package api

import (
	"github.com/google/uuid"
)

// ProtocolVersion - версия формата Snapshot/Event.
// Каждая запись несет ее явно, чтобы потребитель мог обнаружить несовместимость.
const ProtocolVersion = "1.0"

// --- МИР -> АКТОР (PULL) ---

// Snapshot это неизменяемый слепок мира, видимый одному актору в момент запроса.
// Собирается заново на каждый запрос и не кэшируется шиной.
type Snapshot struct {
	// Version версия протокола (ProtocolVersion).
	Version string `json:"version"`

	// SimTime время симуляции в секундах.
	SimTime float64 `json:"sim_time"`

	// Sequence номер из общего счетчика шины на момент запроса.
	// Позволяет сравнить снапшот с уже полученными событиями.
	Sequence uint64 `json:"sequence"`

	ActorID string `json:"actor_id"`

	// Cell текущая клетка актора [x, y].
	Cell Cell `json:"cell"`

	// Nearby объекты и акторы в радиусе видимости.
	Nearby []NearbyView `json:"nearby"`

	// Areas известные зоны мира.
	Areas []AreaView `json:"areas"`

	// LastEvents краткие описания последних событий актора.
	LastEvents []string `json:"last_events"`
}

// Cell - клетка на проводе, сериализуется как [x, y]
type Cell [2]int

// NewCell собирает клетку
func NewCell(x, y int) Cell { return Cell{x, y} }

func (c Cell) X() int { return c[0] }
func (c Cell) Y() int { return c[1] }

// NearbyView - дескриптор соседнего объекта
type NearbyView struct {
	Kind string         `json:"kind"`
	ID   string         `json:"id"`
	Cell Cell           `json:"cell"`
	Meta map[string]any `json:"meta,omitempty"`
}

// AreaView - дескриптор зоны. Rect: [x1, y1, x2, y2] включительно.
type AreaView struct {
	Name     string `json:"name"`
	Rect     [4]int `json:"rect"`
	Walkable *bool  `json:"walkable,omitempty"`
}

// --- МИР -> АКТОР (PUSH) ---

// EventKind - тип события
type EventKind string

const (
	EventTimeTick         EventKind = "time_tick"
	EventZoneAlert        EventKind = "zone_alert"
	EventActorInteraction EventKind = "actor_interaction"
	EventWorldChange      EventKind = "world_change"
)

// Valid - true для известных типов событий
func (k EventKind) Valid() bool {
	switch k {
	case EventTimeTick, EventZoneAlert, EventActorInteraction, EventWorldChange:
		return true
	}
	return false
}

// Priority - уровень срочности события (0 обычный, 1 высокий, 2 критический)
type Priority uint8

const (
	PriorityNormal   Priority = 0
	PriorityHigh     Priority = 1
	PriorityCritical Priority = 2
)

// Valid - true, если приоритет в диапазоне 0..2
func (p Priority) Valid() bool {
	return p <= PriorityCritical
}

// Event это неизменяемое push-прерывание для одного актора.
// Sequence назначается шиной в момент публикации, а не при создании.
type Event struct {
	Version  string         `json:"version"`
	SimTime  float64        `json:"sim_time"`
	Sequence uint64         `json:"sequence"`
	EventID  string         `json:"event_id"`
	Kind     EventKind      `json:"kind" jsonschema:"enum=time_tick,enum=zone_alert,enum=actor_interaction,enum=world_change"`
	Payload  map[string]any `json:"payload"`
	Priority Priority       `json:"priority" jsonschema:"minimum=0,maximum=2"`
}

// NewEventID создает уникальный event_id
func NewEventID() string {
	return uuid.NewString()
}

// NewEvent собирает событие с новым event_id и текущей версией протокола.
// Sequence остается нулевым до публикации.
func NewEvent(kind EventKind, simTime float64, priority Priority, payload map[string]any) (Event, error) {
	ev := Event{
		Version:  ProtocolVersion,
		SimTime:  simTime,
		EventID:  NewEventID(),
		Kind:     kind,
		Payload:  payload,
		Priority: priority,
	}
	if err := ev.Validate(); err != nil {
		return Event{}, err
	}
	if ev.Payload == nil {
		ev.Payload = map[string]any{}
	}
	return ev, nil
}
