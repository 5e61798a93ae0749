package domain

// Rect - прямоугольник в клетках, обе границы включительно
type Rect struct {
	X1, Y1, X2, Y2 int
}

// Contains проверяет попадание клетки в прямоугольник
func (r Rect) Contains(c Cell) bool {
	minX, maxX := r.X1, r.X2
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minY, maxY := r.Y1, r.Y2
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	return c.X >= minX && c.X <= maxX && c.Y >= minY && c.Y <= maxY
}

// Area - именованная зона мира (например, пекарня)
type Area struct {
	Name     string
	Rect     Rect
	Walkable bool
}

// DefaultAreas - зоны стартового мира
func DefaultAreas() []Area {
	return []Area{
		{Name: "Bakery", Rect: Rect{X1: 50, Y1: 50, X2: 60, Y2: 60}, Walkable: true},
	}
}
