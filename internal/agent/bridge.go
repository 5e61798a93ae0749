package agent

import (
	"context"
	"fmt"
	"time"

	"worldbridge/internal/bus"
	"worldbridge/internal/domain"
	"worldbridge/internal/engine"
	"worldbridge/pkg/api"
)

// Bridge - фасад, через который логика принятия решений говорит с миром.
// Один Bridge обслуживает одного актора и вызывается из его горутины.
type Bridge struct {
	id    domain.ActorID
	bus   *bus.Bus
	actor *engine.Actor
	done  <-chan struct{}
}

// NewBridge создает мост для актора, уже добавленного в мир.
func NewBridge(w *engine.World, id domain.ActorID) (*Bridge, error) {
	a, ok := w.Actor(id)
	if !ok {
		return nil, fmt.Errorf("bridge for %q: %w", id, domain.ErrNotFound)
	}
	return &Bridge{id: id, bus: w.Bus, actor: a, done: w.Bus.Done(id)}, nil
}

func (b *Bridge) ID() domain.ActorID { return b.id }

// MoveToCell раскладывает цель на шаги и ставит их в очередь.
// Шаги считаются от текущей клетки в момент вызова, уже стоящие в очереди шаги не учитываются.
func (b *Bridge) MoveToCell(x, y int) (int, error) {
	return b.actor.Planner.MoveTo(domain.Cell{X: x, Y: y})
}

// MoveToCellFor - MoveToCell, адресованный конкретному актору.
// Намерение для чужого актора игнорируется.
func (b *Bridge) MoveToCellFor(id domain.ActorID, x, y int) (int, error) {
	if id != "" && id != b.id {
		return 0, nil
	}
	return b.MoveToCell(x, y)
}

// CancelMovement сбрасывает еще не начатые шаги. Текущий шаг доигрывается.
func (b *Bridge) CancelMovement() int {
	return b.actor.Steps.Clear()
}

// PendingSteps - число шагов в очереди
func (b *Bridge) PendingSteps() int {
	return b.actor.Steps.Len()
}

// Busy - true, пока актор исполняет или ждет шаги
func (b *Bridge) Busy() bool {
	return b.actor.Busy()
}

// Idle - сигнал простоя от цикла симуляции
func (b *Bridge) Idle() <-chan struct{} {
	return b.actor.Idle()
}

// Removed закрывается, когда актора сняли с шины. После этого мост больше не нужен.
func (b *Bridge) Removed() <-chan struct{} {
	return b.done
}

// RequestSnapshot - pull текущего состояния
func (b *Bridge) RequestSnapshot() (api.Snapshot, error) {
	return b.bus.RequestSnapshot(b.id)
}

// TryGetEvent - poll событий с таймаутом (0 - без ожидания)
func (b *Bridge) TryGetEvent(timeout time.Duration) (api.Event, bool) {
	return b.bus.TryGetEvent(b.id, timeout)
}

// NextEvent ждет событие до отмены ctx
func (b *Bridge) NextEvent(ctx context.Context) (api.Event, bool) {
	return b.bus.NextEvent(ctx, b.id)
}

// PublishEvent позволяет миру (или тесту) отправить событие этому актору
func (b *Bridge) PublishEvent(ev api.Event) {
	b.bus.PublishEvent(b.id, ev)
}
