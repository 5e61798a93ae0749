package movement

import (
	"sync/atomic"
	"time"

	"worldbridge/internal/domain"
)

// State - состояние потребителя шагов
type State uint32

const (
	StateIdle State = iota
	StateStepping
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateStepping:
		return "STEPPING"
	}
	return "UNKNOWN"
}

// Position - позиция актора, которую двигает Stepper.
// Реализуется слоем отображения (view.Body).
type Position interface {
	CellReader
	SetCell(domain.Cell)
	SetRenderPos(x, y float64)
}

// Hooks - уведомления для соавторов (агент, мир). Любой хук может быть nil.
type Hooks struct {
	// OnDequeue вызывается, когда шаг снят с очереди и начал исполняться
	OnDequeue func(domain.Step)
	// OnIdle вызывается на каждом тике простоя: актор может принимать новые намерения
	OnIdle func()
	// OnStepDone вызывается после снапа в целевую клетку
	OnStepDone func(domain.Cell)
}

// Stepper - конечный автомат исполнения шагов (Idle / Stepping).
// Tick вызывается только циклом симуляции; State можно читать из любого потока.
type Stepper struct {
	queue    *StepQueue
	pos      Position
	duration time.Duration
	hooks    Hooks

	state   atomic.Uint32
	from    domain.Cell
	target  domain.Cell
	elapsed time.Duration
}

func NewStepper(queue *StepQueue, pos Position, stepDuration time.Duration, hooks Hooks) *Stepper {
	return &Stepper{
		queue:    queue,
		pos:      pos,
		duration: stepDuration,
		hooks:    hooks,
	}
}

// State возвращает текущее состояние автомата
func (s *Stepper) State() State {
	return State(s.state.Load())
}

// Tick продвигает автомат на dt.
//
// Idle + есть шаги: снимаем шаг, цель = текущая клетка + шаг, переходим в Stepping
// и сразу продвигаемся на dt, чтобы темп был ровно один шаг за stepDuration.
// Idle + шагов нет: OnIdle.
// Stepping: интерполяция к цели; по истечении stepDuration - снап, OnStepDone, Idle.
//
// Stepping выставляется до Pop: снаружи нет момента, когда шаг уже снят с очереди,
// а автомат еще Idle.
func (s *Stepper) Tick(dt time.Duration) {
	if s.State() == StateIdle {
		s.state.Store(uint32(StateStepping))
		step, ok := s.queue.Pop()
		if !ok {
			s.state.Store(uint32(StateIdle))
			if s.hooks.OnIdle != nil {
				s.hooks.OnIdle()
			}
			return
		}
		s.begin(step)
	}
	s.advance(dt)
}

func (s *Stepper) begin(step domain.Step) {
	s.from = s.pos.Cell()
	s.target = s.from.Apply(step)
	s.elapsed = 0
	if s.hooks.OnDequeue != nil {
		s.hooks.OnDequeue(step)
	}
}

func (s *Stepper) advance(dt time.Duration) {
	s.elapsed += dt

	if s.elapsed >= s.duration {
		s.pos.SetCell(s.target)
		s.elapsed = 0
		s.state.Store(uint32(StateIdle))
		if s.hooks.OnStepDone != nil {
			s.hooks.OnStepDone(s.target)
		}
		return
	}

	alpha := float64(s.elapsed) / float64(s.duration)
	x := float64(s.from.X) + float64(s.target.X-s.from.X)*alpha
	y := float64(s.from.Y) + float64(s.target.Y-s.from.Y)*alpha
	s.pos.SetRenderPos(x, y)
}
