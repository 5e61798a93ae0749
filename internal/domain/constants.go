package domain

import "time"

// Параметры движения
const (
	// StepDuration - время на один шаг в одну клетку (STEP_TIME)
	StepDuration = 120 * time.Millisecond
	// TickRate - период симуляции (~60 FPS)
	TickRate = 16 * time.Millisecond
)

// Параметры мира
const (
	WorldWidth   = 200
	WorldHeight  = 200
	VisionRadius = 5
)

// RecentEventsLimit - сколько последних событий актора попадает в снапшот
const RecentEventsLimit = 8
