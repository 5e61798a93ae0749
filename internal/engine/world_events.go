package engine

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"worldbridge/internal/domain"
	"worldbridge/pkg/api"
	"worldbridge/pkg/logger"
)

// Действия в payload события zone_alert
const (
	ZoneEnter = "enter"
	ZoneExit  = "exit"
)

// publish собирает событие, кладет его на шину и запоминает краткое описание для снапшота.
func (w *World) publish(a *Actor, kind api.EventKind, priority api.Priority, summary string, payload map[string]any) {
	ev, err := api.NewEvent(kind, w.SimTime().Seconds(), priority, payload)
	if err != nil {
		logger.Log.WithError(err).WithField("actor_id", a.ID).Warn("Failed to build event")
		return
	}

	w.Bus.PublishEvent(a.ID, ev)
	a.remember(summary)

	logger.Log.WithFields(logrus.Fields{
		"actor_id": a.ID,
		"kind":     kind,
		"priority": priority,
	}).Debug(summary)
}

// onStepDone вызывается Stepper'ом после снапа в новую клетку
func (w *World) onStepDone(a *Actor, c domain.Cell) {
	now := w.zonesAt(c)

	// Выход из зон
	for name := range a.zones {
		if !now[name] {
			w.publish(a, api.EventZoneAlert, api.PriorityHigh,
				fmt.Sprintf("left %s", name),
				map[string]any{"area": name, "action": ZoneExit, "cell": toCell(c)})
		}
	}
	// Вход в зоны
	for name := range now {
		if !a.zones[name] {
			w.publish(a, api.EventZoneAlert, api.PriorityHigh,
				fmt.Sprintf("entered %s", name),
				map[string]any{"area": name, "action": ZoneEnter, "cell": toCell(c)})
		}
	}
	a.zones = now
}

// detectInteractions публикует actor_interaction обоим акторам, когда они становятся соседями.
func (w *World) detectInteractions(actors []*Actor) {
	for i, a := range actors {
		for _, b := range actors[i+1:] {
			ac, bc := a.Body.Cell(), b.Body.Cell()
			adjacent := ac.IsAdjacent(bc) || ac == bc
			was := a.near[b.ID]

			switch {
			case adjacent && !was:
				a.near[b.ID] = true
				b.near[a.ID] = true
				w.publishMeeting(a, b)
				w.publishMeeting(b, a)
			case !adjacent && was:
				delete(a.near, b.ID)
				delete(b.near, a.ID)
			}
		}
	}

	// Забываем ушедших из мира
	for _, a := range actors {
		for id := range a.near {
			if _, ok := w.Actor(id); !ok {
				delete(a.near, id)
			}
		}
	}
}

func (w *World) publishMeeting(to, other *Actor) {
	w.publish(to, api.EventActorInteraction, api.PriorityNormal,
		fmt.Sprintf("met %s", other.ID),
		map[string]any{"other": string(other.ID), "cell": toCell(other.Body.Cell())})
}

func (w *World) publishTimeTick(a *Actor, tick int64) {
	w.publish(a, api.EventTimeTick, api.PriorityNormal,
		fmt.Sprintf("tick %d", tick),
		map[string]any{"tick": tick, "sim_time": w.SimTime().Seconds()})
}

// Announce публикует world_change всем акторам мира. Потокобезопасен.
func (w *World) Announce(change string, priority api.Priority, payload map[string]any) error {
	if !priority.Valid() {
		return fmt.Errorf("announce %q: %w: %d", change, domain.ErrInvalidPriority, priority)
	}

	for _, a := range w.Actors() {
		// У каждого события своя копия payload
		data := map[string]any{"change": change}
		for k, v := range payload {
			data[k] = v
		}
		w.publish(a, api.EventWorldChange, priority, "world: "+change, data)
	}
	return nil
}
