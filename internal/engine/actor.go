package engine

import (
	"sync"

	"worldbridge/internal/domain"
	"worldbridge/internal/movement"
	"worldbridge/internal/view"
)

// Actor - состояние одного актора внутри мира.
//
// Body - позиция (владелец - слой отображения), Steps/Planner - очередь движения
// со стороны актора, Stepper - исполнение шагов циклом симуляции.
type Actor struct {
	ID      domain.ActorID
	Body    *view.Body
	Steps   *movement.StepQueue
	Planner *movement.Planner
	Stepper *movement.Stepper

	// idle получает сигнал на каждом тике простоя (буфер 1)
	idle chan struct{}

	mu          sync.Mutex
	recent      []string
	recentLimit int

	// Трогаются только циклом симуляции
	zones map[string]bool
	near  map[domain.ActorID]bool
}

// Idle - сигнал "актор стоит и может принимать новые намерения"
func (a *Actor) Idle() <-chan struct{} {
	return a.idle
}

// Busy - true, если есть шаги в очереди или шаг исполняется
func (a *Actor) Busy() bool {
	return a.Steps.HasSteps() || a.Stepper.State() == movement.StateStepping
}

// RecentEvents возвращает копию последних описаний событий (старые первыми)
func (a *Actor) RecentEvents() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, len(a.recent))
	copy(out, a.recent)
	return out
}

func (a *Actor) remember(summary string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.recent = append(a.recent, summary)
	if a.recentLimit > 0 && len(a.recent) > a.recentLimit {
		a.recent = a.recent[len(a.recent)-a.recentLimit:]
	}
}

func (a *Actor) signalIdle() {
	select {
	case a.idle <- struct{}{}:
	default:
	}
}
