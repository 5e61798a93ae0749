package engine

import (
	"fmt"

	"worldbridge/internal/bus"
	"worldbridge/internal/config"
	"worldbridge/internal/domain"
)

// PrimaryActorID - id первого актора (пекарь Эльдрик)
const PrimaryActorID domain.ActorID = "npc_eldric"

// ActorIDFor возвращает id n-го актора: первый - PrimaryActorID, дальше npc_2, npc_3...
func ActorIDFor(n int) domain.ActorID {
	if n == 0 {
		return PrimaryActorID
	}
	return domain.ActorID(fmt.Sprintf("npc_%d", n+1))
}

// BuildWorld создает мир с зонами по умолчанию и cfg.Bots акторами.
// Акторы стоят в ряд от стартовой клетки, чтобы не пересекаться.
func BuildWorld(cfg config.Config, b *bus.Bus) *World {
	w := NewWorld(cfg, b, domain.DefaultAreas())

	start := cfg.StartCell()
	for n := 0; n < cfg.Bots; n++ {
		w.AddActor(ActorIDFor(n), start.Shift(n*2, 0))
	}
	return w
}
