package engine

import (
	"sort"

	"worldbridge/internal/domain"
	"worldbridge/pkg/api"
)

// Вид дескриптора соседнего объекта
const NearbyKindActor = "actor"

// BuildSnapshot создает персональный слепок мира для актора.
// Вызывается шиной синхронно на каждый pull, из потока актора.
// Sequence проставляет шина.
func (w *World) BuildSnapshot(a *Actor) api.Snapshot {
	cell := a.Body.Cell()

	return api.Snapshot{
		Version:    api.ProtocolVersion,
		SimTime:    w.SimTime().Seconds(),
		ActorID:    string(a.ID),
		Cell:       toCell(cell),
		Nearby:     w.nearbyFor(a, cell),
		Areas:      w.areaViews(),
		LastEvents: a.RecentEvents(),
	}
}

// nearbyFor - другие акторы в радиусе видимости
func (w *World) nearbyFor(observer *Actor, cell domain.Cell) []api.NearbyView {
	radius := w.cfg.VisionRadius
	nearby := make([]api.NearbyView, 0)

	w.mu.RLock()
	defer w.mu.RUnlock()

	for id, other := range w.actors {
		if id == observer.ID {
			continue
		}
		otherCell := other.Body.Cell()
		if cell.DistanceSquaredTo(otherCell) > radius*radius {
			continue
		}
		nearby = append(nearby, api.NearbyView{
			Kind: NearbyKindActor,
			ID:   string(id),
			Cell: toCell(otherCell),
			Meta: map[string]any{"state": other.Stepper.State().String()},
		})
	}

	sort.Slice(nearby, func(i, j int) bool { return nearby[i].ID < nearby[j].ID })
	return nearby
}

func (w *World) areaViews() []api.AreaView {
	views := make([]api.AreaView, 0, len(w.Areas))
	for _, area := range w.Areas {
		walkable := area.Walkable
		views = append(views, api.AreaView{
			Name:     area.Name,
			Rect:     [4]int{area.Rect.X1, area.Rect.Y1, area.Rect.X2, area.Rect.Y2},
			Walkable: &walkable,
		})
	}
	return views
}

func toCell(c domain.Cell) api.Cell {
	return api.NewCell(c.X, c.Y)
}
