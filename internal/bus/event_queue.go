package bus

import (
	"container/heap"
	"context"
	"sync"

	"worldbridge/pkg/api"
)

// eventItem обертка для элемента очереди приоритетов
type eventItem struct {
	Key   OrderKey
	Event api.Event
	Index int // Индекс в куче
}

// eventHeap реализует heap.Interface. Вершина - событие, которое извлекается первым.
type eventHeap []*eventItem

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	return h[i].Key.Before(h[j].Key)
}

func (h eventHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].Index = i
	h[j].Index = j
}

func (h *eventHeap) Push(x interface{}) {
	item := x.(*eventItem)
	item.Index = len(*h)
	*h = append(*h, item)
}

func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil  // избегаем утечки памяти
	item.Index = -1 // для безопасности
	*h = old[0 : n-1]
	return item
}

// EventQueue - очередь событий одного актора.
// Синхронизирована независимо от реестра и других очередей.
type EventQueue struct {
	mu    sync.Mutex
	items eventHeap

	// wake - сигнал ожидающим потребителям (буфер 1, отправка неблокирующая)
	wake chan struct{}
	// closed закрывается при разрегистрации актора
	closed    chan struct{}
	closeOnce sync.Once
}

func newEventQueue() *EventQueue {
	return &EventQueue{
		items:  make(eventHeap, 0),
		wake:   make(chan struct{}, 1),
		closed: make(chan struct{}),
	}
}

// push назначает событию следующий номер под замком очереди и кладет его в кучу.
// Номер берется под тем же замком, поэтому внутри одной очереди порядок вставки
// совпадает с порядком номеров.
func (q *EventQueue) push(ev api.Event, next func() uint64) bool {
	q.mu.Lock()
	if q.isClosed() {
		q.mu.Unlock()
		return false
	}
	ev.Sequence = next()
	heap.Push(&q.items, &eventItem{Key: KeyOf(ev), Event: ev})
	q.mu.Unlock()

	q.signal()
	return true
}

// tryPop извлекает вершину без ожидания
func (q *EventQueue) tryPop() (api.Event, bool) {
	q.mu.Lock()
	if q.items.Len() == 0 {
		q.mu.Unlock()
		return api.Event{}, false
	}
	item := heap.Pop(&q.items).(*eventItem)
	remaining := q.items.Len()
	q.mu.Unlock()

	// Будим следующего ожидающего, если осталось что забирать
	if remaining > 0 {
		q.signal()
	}
	return item.Event, true
}

// wait блокируется до появления события, закрытия очереди или отмены ctx.
func (q *EventQueue) wait(ctx context.Context) (api.Event, bool) {
	for {
		if ev, ok := q.tryPop(); ok {
			return ev, true
		}
		select {
		case <-q.wake:
		case <-q.closed:
			return api.Event{}, false
		case <-ctx.Done():
			return api.Event{}, false
		}
	}
}

// close отбрасывает ожидающие события и отпускает всех ждущих потребителей.
func (q *EventQueue) close() {
	q.closeOnce.Do(func() {
		q.mu.Lock()
		q.items = q.items[:0]
		close(q.closed)
		q.mu.Unlock()
	})
}

func (q *EventQueue) isClosed() bool {
	select {
	case <-q.closed:
		return true
	default:
		return false
	}
}

func (q *EventQueue) signal() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Len - число ожидающих событий
func (q *EventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Len()
}
