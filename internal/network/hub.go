package network

import (
	"sync"

	"worldbridge/pkg/api"
	"worldbridge/pkg/logger"
)

// FrameBuffer - размер личного канала зрителя
const FrameBuffer = 16

// Broadcaster занимается только рассылкой кадров зрителям
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: SessionID -> Личный канал
	subscribers map[string]chan api.WorldFrame
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan api.WorldFrame),
	}
}

// Register создает личный канал для сессии зрителя
func (b *Broadcaster) Register(sessionID string) chan api.WorldFrame {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Если канал был, закрываем
	if old, ok := b.subscribers[sessionID]; ok {
		close(old)
	}

	ch := make(chan api.WorldFrame, FrameBuffer)
	b.subscribers[sessionID] = ch
	return ch
}

// Unregister удаляет подписчика и закрывает его канал
func (b *Broadcaster) Unregister(sessionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[sessionID]; ok {
		close(ch)
		delete(b.subscribers, sessionID)
	}
}

// SendTo отправляет кадр конкретной сессии (Unicast)
func (b *Broadcaster) SendTo(sessionID string, frame api.WorldFrame) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ch, ok := b.subscribers[sessionID]
	if !ok {
		return false
	}
	select {
	case ch <- frame:
		return true
	default:
		logger.Log.WithField("session_id", sessionID).Debug("Hub: channel full, frame skipped")
		return false
	}
}

// Broadcast отправляет всем. Медленный зритель пропускает кадр, цикл не ждет.
func (b *Broadcaster) Broadcast(frame api.WorldFrame) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- frame:
		default:
		}
	}
}

// HasSubscriber проверяет, подключена ли сессия
func (b *Broadcaster) HasSubscriber(sessionID string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.subscribers[sessionID]
	return ok
}

// SubscriberCount возвращает количество активных подписчиков.
// Используется, чтобы не собирать кадры, когда смотреть некому.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
