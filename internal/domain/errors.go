package domain

import "errors"

var (
	// ErrNotFound - операция над незарегистрированным актором (pull-запросы)
	ErrNotFound = errors.New("actor not registered")

	// ErrInvalidStep - вектор шага не является единичным кардинальным
	ErrInvalidStep = errors.New("invalid step: only unit cardinal moves are allowed")

	// ErrInvalidPriority - приоритет события вне диапазона 0..2
	ErrInvalidPriority = errors.New("invalid event priority")
)
