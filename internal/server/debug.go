package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"worldbridge/internal/domain"
	"worldbridge/internal/engine"
	"worldbridge/pkg/api"
)

// DebugHandler предоставляет доступ к внутреннему состоянию мира и шины
type DebugHandler struct {
	World *engine.World
}

func NewDebugHandler(w *engine.World) *DebugHandler {
	return &DebugHandler{World: w}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/actors", h.handleActors)
	mux.HandleFunc("/debug/snapshot", h.handleSnapshot)
	mux.HandleFunc("/debug/announce", h.handleAnnounce)
}

// /debug/actors - акторы, их очереди шагов и событий
func (h *DebugHandler) handleActors(w http.ResponseWriter, r *http.Request) {
	type ActorView struct {
		ActorID       string   `json:"actor_id"`
		Cell          api.Cell `json:"cell"`
		State         string   `json:"state"`
		PendingSteps  int      `json:"pending_steps"`
		PendingEvents int      `json:"pending_events"`
		RecentEvents  []string `json:"recent_events"`
	}

	var views []ActorView
	for _, a := range h.World.Actors() {
		c := a.Body.Cell()
		views = append(views, ActorView{
			ActorID:       a.ID.String(),
			Cell:          api.NewCell(c.X, c.Y),
			State:         a.Stepper.State().String(),
			PendingSteps:  a.Steps.Len(),
			PendingEvents: h.World.Bus.Pending(a.ID),
			RecentEvents:  a.RecentEvents(),
		})
	}

	if views == nil {
		writeJSON(w, nil)
		return
	}
	writeJSON(w, views)
}

// /debug/snapshot?actor=npc_eldric - тот же снапшот, что получает актор
func (h *DebugHandler) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	id := domain.ActorID(r.URL.Query().Get("actor"))

	snap, err := h.World.Bus.RequestSnapshot(id)
	if errors.Is(err, domain.ErrNotFound) {
		http.Error(w, "Actor not registered", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, snap)
}

// POST /debug/announce?change=storm&priority=2 - world_change всем акторам
func (h *DebugHandler) handleAnnounce(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	change := q.Get("change")
	if change == "" {
		http.Error(w, "change is required", http.StatusBadRequest)
		return
	}

	priority := api.PriorityNormal
	if raw := q.Get("priority"); raw != "" {
		p, err := strconv.ParseUint(raw, 10, 8)
		if err != nil {
			http.Error(w, "bad priority", http.StatusBadRequest)
			return
		}
		priority = api.Priority(p)
	}

	if err := h.World.Announce(change, priority, nil); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]any{"change": change, "priority": priority, "actors": len(h.World.Actors())})
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	// Разрешаем запросы с любого источника (нужно для локального debug клиента)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	// Пустой список отдаем как [], а не null
	if data == nil {
		w.Write([]byte("[]"))
		return
	}

	json.NewEncoder(w).Encode(data)
}
