package bus

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"worldbridge/internal/domain"
	"worldbridge/pkg/api"
	"worldbridge/pkg/logger"
)

// SnapshotBuilder - источник текущего состояния мира для одного актора.
// Вызывается синхронно на каждый pull, результат не кэшируется.
type SnapshotBuilder interface {
	BuildSnapshot() api.Snapshot
}

// SnapshotFunc позволяет использовать обычную функцию как SnapshotBuilder
type SnapshotFunc func() api.Snapshot

func (f SnapshotFunc) BuildSnapshot() api.Snapshot { return f() }

type entry struct {
	builder SnapshotBuilder
	queue   *EventQueue
}

// Bus - потокобезопасный посредник между миром и акторами.
//
// Pull: актор запрашивает снапшот (RequestSnapshot), шина вызывает builder мира.
// Push: мир публикует события (PublishEvent), актор забирает их (TryGetEvent)
// в порядке приоритета, внутри приоритета - в порядке публикации.
type Bus struct {
	mu      sync.RWMutex
	entries map[domain.ActorID]*entry

	// seq - общий монотонный счетчик для событий и снапшотов
	seq atomic.Uint64
}

func New() *Bus {
	return &Bus{
		entries: make(map[domain.ActorID]*entry),
	}
}

// Register привязывает builder к актору и создает пустую очередь событий.
// Повторная регистрация перезаписывает builder; старая очередь закрывается,
// ее ожидающие потребители получают "ничего".
func (b *Bus) Register(id domain.ActorID, builder SnapshotBuilder) {
	b.mu.Lock()
	old, existed := b.entries[id]
	b.entries[id] = &entry{builder: builder, queue: newEventQueue()}
	b.mu.Unlock()

	if existed {
		old.queue.close()
	}

	logger.Log.WithFields(logrus.Fields{
		"actor_id":    id,
		"re_register": existed,
	}).Info("Actor registered on bus")
}

// Unregister удаляет builder и очередь актора. Неизвестный id - не ошибка.
func (b *Bus) Unregister(id domain.ActorID) {
	b.mu.Lock()
	old, existed := b.entries[id]
	delete(b.entries, id)
	b.mu.Unlock()

	if !existed {
		return
	}
	old.queue.close()
	logger.Log.WithField("actor_id", id).Info("Actor unregistered from bus")
}

// RequestSnapshot вызывает builder актора и возвращает свежий снапшот.
// Sequence снапшота берется из общего счетчика шины.
func (b *Bus) RequestSnapshot(id domain.ActorID) (api.Snapshot, error) {
	b.mu.RLock()
	e, ok := b.entries[id]
	b.mu.RUnlock()

	if !ok || e.builder == nil {
		return api.Snapshot{}, fmt.Errorf("request snapshot for %q: %w", id, domain.ErrNotFound)
	}

	// Builder вызывается вне замка реестра: он может быть медленным
	snap := e.builder.BuildSnapshot()
	snap.Sequence = b.seq.Add(1)
	return snap, nil
}

// PublishEvent назначает событию следующий номер и кладет его в очередь актора.
// Событие для незарегистрированного актора молча отбрасывается.
// Событие с недопустимым приоритетом не ставится в очередь.
func (b *Bus) PublishEvent(id domain.ActorID, ev api.Event) {
	if !ev.Priority.Valid() {
		logger.Log.WithFields(logrus.Fields{
			"actor_id": id,
			"priority": ev.Priority,
			"kind":     ev.Kind,
		}).Warn("Event with invalid priority dropped")
		return
	}

	b.mu.RLock()
	e, ok := b.entries[id]
	b.mu.RUnlock()

	if !ok || !e.queue.push(ev, b.nextSeq) {
		logger.Log.WithFields(logrus.Fields{
			"actor_id": id,
			"kind":     ev.Kind,
		}).Debug("Event for unregistered actor dropped")
	}
}

// TryGetEvent извлекает самое приоритетное событие актора.
// timeout == 0 - неблокирующий опрос. Истечение таймаута, отсутствие
// регистрации или разрегистрация во время ожидания дают false.
func (b *Bus) TryGetEvent(id domain.ActorID, timeout time.Duration) (api.Event, bool) {
	q := b.queue(id)
	if q == nil {
		return api.Event{}, false
	}
	if timeout <= 0 {
		return q.tryPop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return q.wait(ctx)
}

// NextEvent ждет событие, пока не отменен ctx.
func (b *Bus) NextEvent(ctx context.Context, id domain.ActorID) (api.Event, bool) {
	q := b.queue(id)
	if q == nil {
		return api.Event{}, false
	}
	return q.wait(ctx)
}

// Done закрывается, когда текущая регистрация актора снята (Unregister или повторный Register).
// Для незарегистрированного актора возвращается уже закрытый канал.
func (b *Bus) Done(id domain.ActorID) <-chan struct{} {
	if q := b.queue(id); q != nil {
		return q.closed
	}
	return closedChan
}

var closedChan = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// Pending - число ожидающих событий актора (0 для незарегистрированного)
func (b *Bus) Pending(id domain.ActorID) int {
	q := b.queue(id)
	if q == nil {
		return 0
	}
	return q.Len()
}

// IsRegistered проверяет наличие актора в реестре
func (b *Bus) IsRegistered(id domain.ActorID) bool {
	return b.queue(id) != nil
}

// Actors возвращает отсортированный список зарегистрированных акторов
func (b *Bus) Actors() []domain.ActorID {
	b.mu.RLock()
	ids := make([]domain.ActorID, 0, len(b.entries))
	for id := range b.entries {
		ids = append(ids, id)
	}
	b.mu.RUnlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Sequence - последний выданный номер
func (b *Bus) Sequence() uint64 {
	return b.seq.Load()
}

func (b *Bus) nextSeq() uint64 {
	return b.seq.Add(1)
}

func (b *Bus) queue(id domain.ActorID) *EventQueue {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if e, ok := b.entries[id]; ok {
		return e.queue
	}
	return nil
}
