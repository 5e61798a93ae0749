package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"worldbridge/internal/bus"
	"worldbridge/internal/config"
	"worldbridge/internal/domain"
	"worldbridge/pkg/api"
)

const (
	testStep = 100 * time.Millisecond
	testTick = 25 * time.Millisecond
)

// Helper: мир без часов, с быстрым шагом
func setupWorld(t *testing.T) *World {
	t.Helper()
	cfg := config.Default()
	cfg.StepDuration = testStep
	cfg.TimeTickEvery = 0
	return NewWorld(cfg, bus.New(), domain.DefaultAreas())
}

func runTicks(w *World, n int) {
	for i := 0; i < n; i++ {
		w.Tick(testTick)
	}
}

func drain(b *bus.Bus, id domain.ActorID) []api.Event {
	var out []api.Event
	for {
		ev, ok := b.TryGetEvent(id, 0)
		if !ok {
			return out
		}
		out = append(out, ev)
	}
}

func TestWorld_SnapshotThroughBus(t *testing.T) {
	w := setupWorld(t)
	w.AddActor("a", domain.Cell{X: 10, Y: 10})
	w.AddActor("b", domain.Cell{X: 12, Y: 10})
	w.AddActor("far", domain.Cell{X: 150, Y: 150})

	snap, err := w.Bus.RequestSnapshot("a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if snap.Version != api.ProtocolVersion {
		t.Errorf("version = %q", snap.Version)
	}
	if snap.ActorID != "a" || snap.Cell != api.NewCell(10, 10) {
		t.Errorf("unexpected identity: %s %v", snap.ActorID, snap.Cell)
	}
	if len(snap.Nearby) != 1 || snap.Nearby[0].ID != "b" {
		t.Errorf("expected only b nearby, got %+v", snap.Nearby)
	}
	if len(snap.Areas) != 1 || snap.Areas[0].Name != "Bakery" || snap.Areas[0].Rect != [4]int{50, 50, 60, 60} {
		t.Errorf("unexpected areas %+v", snap.Areas)
	}
	if snap.Sequence == 0 {
		t.Error("sequence must be stamped by the bus")
	}
}

func TestWorld_MoveAndConsume(t *testing.T) {
	w := setupWorld(t)
	a := w.AddActor("a", domain.Cell{X: 0, Y: 0})

	n, err := a.Planner.MoveTo(domain.Cell{X: 3, Y: -2})
	if err != nil || n != 5 {
		t.Fatalf("MoveTo: n=%d err=%v", n, err)
	}
	if !a.Busy() {
		t.Error("actor with queued steps must be busy")
	}

	before, _ := w.Bus.RequestSnapshot("a")
	runTicks(w, 5*int(testStep/testTick)+2)
	after, _ := w.Bus.RequestSnapshot("a")

	if a.Body.Cell() != (domain.Cell{X: 3, Y: -2}) {
		t.Errorf("final cell = %v", a.Body.Cell())
	}
	if a.Busy() {
		t.Error("actor should be idle after consuming all steps")
	}
	if before.Cell == after.Cell || after.Sequence <= before.Sequence {
		t.Errorf("stale snapshot: %v/%d -> %v/%d", before.Cell, before.Sequence, after.Cell, after.Sequence)
	}

	select {
	case <-a.Idle():
	default:
		t.Error("idle signal expected after the route is done")
	}
}

func TestWorld_ZoneAlerts(t *testing.T) {
	w := setupWorld(t)
	a := w.AddActor("a", domain.Cell{X: 49, Y: 55})

	_, _ = a.Planner.MoveTo(domain.Cell{X: 50, Y: 55})
	runTicks(w, 5)

	events := drain(w.Bus, "a")
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d: %+v", len(events), events)
	}
	ev := events[0]
	if ev.Kind != api.EventZoneAlert || ev.Priority != api.PriorityHigh {
		t.Errorf("unexpected event %+v", ev)
	}
	if ev.Payload["area"] != "Bakery" || ev.Payload["action"] != ZoneEnter {
		t.Errorf("unexpected payload %+v", ev.Payload)
	}

	_, _ = a.Planner.MoveTo(domain.Cell{X: 49, Y: 55})
	runTicks(w, 5)

	events = drain(w.Bus, "a")
	if len(events) != 1 || events[0].Payload["action"] != ZoneExit {
		t.Fatalf("expected exit alert, got %+v", events)
	}

	recent := a.RecentEvents()
	if len(recent) != 2 || recent[0] != "entered Bakery" || recent[1] != "left Bakery" {
		t.Errorf("unexpected recent events %v", recent)
	}
}

func TestWorld_ActorInteraction(t *testing.T) {
	w := setupWorld(t)
	a := w.AddActor("a", domain.Cell{X: 0, Y: 0})
	w.AddActor("b", domain.Cell{X: 3, Y: 0})

	runTicks(w, 1)
	if n := w.Bus.Pending("a") + w.Bus.Pending("b"); n != 0 {
		t.Fatalf("no interaction expected yet, got %d events", n)
	}

	_, _ = a.Planner.MoveTo(domain.Cell{X: 2, Y: 0})
	runTicks(w, 10)

	for _, id := range []domain.ActorID{"a", "b"} {
		events := drain(w.Bus, id)
		if len(events) != 1 || events[0].Kind != api.EventActorInteraction {
			t.Errorf("%s: expected one interaction, got %+v", id, events)
		}
	}

	// Стоят рядом - повторного события нет
	runTicks(w, 10)
	if n := w.Bus.Pending("a"); n != 0 {
		t.Errorf("interaction must fire once per meeting, got %d", n)
	}
}

func TestWorld_TimeTick(t *testing.T) {
	cfg := config.Default()
	cfg.TimeTickEvery = 2
	w := NewWorld(cfg, nil, nil)
	w.AddActor("a", domain.Cell{})

	runTicks(w, 5)

	events := drain(w.Bus, "a")
	if len(events) != 2 {
		t.Fatalf("expected 2 time ticks, got %d", len(events))
	}
	for _, ev := range events {
		if ev.Kind != api.EventTimeTick {
			t.Errorf("unexpected kind %s", ev.Kind)
		}
	}
	if events[0].Payload["tick"] != int64(2) || events[1].Payload["tick"] != int64(4) {
		t.Errorf("unexpected ticks %v, %v", events[0].Payload["tick"], events[1].Payload["tick"])
	}
}

func TestWorld_AnnouncePriority(t *testing.T) {
	w := setupWorld(t)
	w.AddActor("a", domain.Cell{})
	w.AddActor("b", domain.Cell{X: 20})

	if err := w.Announce("storm", 5, nil); !errors.Is(err, domain.ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got %v", err)
	}

	w.Bus.PublishEvent("a", mustEvent(t, api.EventTimeTick, api.PriorityNormal))
	if err := w.Announce("storm", api.PriorityCritical, map[string]any{"severity": "high"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Критическое событие обгоняет ранее опубликованное обычное
	ev, ok := w.Bus.TryGetEvent("a", 0)
	if !ok || ev.Kind != api.EventWorldChange || ev.Payload["change"] != "storm" {
		t.Fatalf("expected world_change first, got %+v", ev)
	}
	if ev.Payload["severity"] != "high" {
		t.Errorf("payload not merged: %+v", ev.Payload)
	}
	if w.Bus.Pending("b") != 1 {
		t.Errorf("b must receive the announcement")
	}
}

func TestWorld_RemoveActor(t *testing.T) {
	w := setupWorld(t)
	w.AddActor("a", domain.Cell{})
	w.RemoveActor("a")
	w.RemoveActor("a")

	if _, err := w.Bus.RequestSnapshot("a"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, ok := w.Actor("a"); ok {
		t.Error("actor still present")
	}
	runTicks(w, 3)
}

func TestWorld_RunStopsOnCancel(t *testing.T) {
	cfg := config.Default()
	cfg.TickRate = time.Millisecond
	w := NewWorld(cfg, nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	if err := w.Run(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.CurrentTick() == 0 {
		t.Error("loop did not tick")
	}
}

func TestBuildWorld(t *testing.T) {
	cfg := config.Default()
	cfg.Bots = 3
	w := BuildWorld(cfg, bus.New())

	ids := w.Bus.Actors()
	if len(ids) != 3 || ids[0] != "npc_2" || ids[2] != PrimaryActorID {
		t.Errorf("unexpected actors %v", ids)
	}
}

func mustEvent(t *testing.T, kind api.EventKind, p api.Priority) api.Event {
	t.Helper()
	ev, err := api.NewEvent(kind, 0, p, nil)
	if err != nil {
		t.Fatalf("NewEvent: %v", err)
	}
	return ev
}

func TestWorld_Frame(t *testing.T) {
	w := setupWorld(t)
	a := w.AddActor("a", domain.Cell{X: 1, Y: 1})
	w.AddActor("b", domain.Cell{X: 30, Y: 30})

	if _, err := a.Planner.MoveTo(domain.Cell{X: 3, Y: 1}); err != nil {
		t.Fatalf("move: %v", err)
	}
	runTicks(w, 1)

	frame := w.Frame()
	if frame.Tick != 1 || len(frame.Actors) != 2 {
		t.Fatalf("unexpected frame %+v", frame)
	}

	fa := frame.Actors[0]
	if fa.ID != "a" || fa.State != "STEPPING" || fa.PendingSteps != 1 {
		t.Errorf("unexpected actor frame %+v", fa)
	}
	if fa.Render[0] <= 1 || fa.Render[0] >= 2 {
		t.Errorf("render x = %v, want between cells", fa.Render[0])
	}
	if frame.Actors[1].State != "IDLE" {
		t.Errorf("b state = %q", frame.Actors[1].State)
	}
}
