package engine

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"worldbridge/internal/bus"
	"worldbridge/internal/config"
	"worldbridge/internal/domain"
	"worldbridge/internal/movement"
	"worldbridge/internal/view"
	"worldbridge/pkg/api"
	"worldbridge/pkg/logger"
)

// World - симуляция с фиксированным шагом.
// Владеет акторами, регистрирует их на шине и публикует события мира.
// Tick вызывается только из одного цикла (Run или тест), остальные методы потокобезопасны.
type World struct {
	Bus   *bus.Bus
	Areas []domain.Area

	cfg config.Config

	mu     sync.RWMutex
	actors map[domain.ActorID]*Actor

	tick    atomic.Int64
	simTime atomic.Int64 // time.Duration
}

func NewWorld(cfg config.Config, b *bus.Bus, areas []domain.Area) *World {
	if b == nil {
		b = bus.New()
	}
	return &World{
		Bus:    b,
		Areas:  areas,
		cfg:    cfg,
		actors: make(map[domain.ActorID]*Actor),
	}
}

// AddActor создает актора в клетке start и регистрирует его снапшот-билдер на шине.
// Актор с тем же id заменяется.
func (w *World) AddActor(id domain.ActorID, start domain.Cell) *Actor {
	a := &Actor{
		ID:          id,
		Body:        view.NewBody(start),
		Steps:       movement.NewStepQueue(),
		idle:        make(chan struct{}, 1),
		recentLimit: w.cfg.RecentEvents,
		zones:       w.zonesAt(start),
		near:        make(map[domain.ActorID]bool),
	}
	a.Planner = movement.NewPlanner(a.Body, a.Steps)
	a.Stepper = movement.NewStepper(a.Steps, a.Body, w.cfg.StepDuration, movement.Hooks{
		OnIdle: a.signalIdle,
		OnDequeue: func(s domain.Step) {
			logger.Log.WithFields(logrus.Fields{
				"actor_id": id,
				"step":     s.String(),
			}).Trace("Step dequeued")
		},
		OnStepDone: func(c domain.Cell) {
			w.onStepDone(a, c)
		},
	})

	w.mu.Lock()
	w.actors[id] = a
	w.mu.Unlock()

	w.Bus.Register(id, bus.SnapshotFunc(func() api.Snapshot {
		return w.BuildSnapshot(a)
	}))

	logger.Log.WithFields(logrus.Fields{
		"actor_id": id,
		"cell":     start,
	}).Info("Actor joined the world")
	return a
}

// RemoveActor убирает актора из мира и с шины. Неизвестный id - не ошибка.
func (w *World) RemoveActor(id domain.ActorID) {
	w.mu.Lock()
	_, ok := w.actors[id]
	delete(w.actors, id)
	w.mu.Unlock()

	w.Bus.Unregister(id)
	if ok {
		logger.Log.WithField("actor_id", id).Info("Actor left the world")
	}
}

// Actor возвращает актора по id
func (w *World) Actor(id domain.ActorID) (*Actor, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	a, ok := w.actors[id]
	return a, ok
}

// Actors возвращает акторов, отсортированных по id
func (w *World) Actors() []*Actor {
	w.mu.RLock()
	list := make([]*Actor, 0, len(w.actors))
	for _, a := range w.actors {
		list = append(list, a)
	}
	w.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

// CurrentTick - номер последнего обработанного тика
func (w *World) CurrentTick() int64 {
	return w.tick.Load()
}

// SimTime - накопленное время симуляции
func (w *World) SimTime() time.Duration {
	return time.Duration(w.simTime.Load())
}

// Tick продвигает мир на dt: шаги всех акторов, затем события.
func (w *World) Tick(dt time.Duration) {
	tick := w.tick.Add(1)
	w.simTime.Add(int64(dt))

	actors := w.Actors()

	// 1. Движение (хуки OnStepDone публикуют zone_alert)
	for _, a := range actors {
		a.Stepper.Tick(dt)
	}

	// 2. Встречи акторов
	w.detectInteractions(actors)

	// 3. Часы мира
	if every := int64(w.cfg.TimeTickEvery); every > 0 && tick%every == 0 {
		for _, a := range actors {
			w.publishTimeTick(a, tick)
		}
	}
}

// Run запускает цикл симуляции до отмены ctx.
func (w *World) Run(ctx context.Context) error {
	logger.Log.WithField("tick_rate", w.cfg.TickRate).Info("World loop started")

	ticker := time.NewTicker(w.cfg.TickRate)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			logger.Log.WithField("tick", w.CurrentTick()).Info("World loop stopped")
			return nil
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			w.Tick(dt)
		}
	}
}

func (w *World) zonesAt(c domain.Cell) map[string]bool {
	zones := make(map[string]bool)
	for _, area := range w.Areas {
		if area.Rect.Contains(c) {
			zones[area.Name] = true
		}
	}
	return zones
}
