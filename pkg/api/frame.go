package api

// WorldFrame - кадр для зрителей: позиции всех акторов на момент тика.
// Только для чтения, на поведение акторов не влияет.
type WorldFrame struct {
	Version string       `json:"version"`
	Tick    int64        `json:"tick"`
	SimTime float64      `json:"sim_time"`
	Actors  []ActorFrame `json:"actors"`
}

type ActorFrame struct {
	ID            string     `json:"id"`
	Cell          Cell       `json:"cell"`
	Render        [2]float64 `json:"render"`
	State         string     `json:"state"`
	PendingSteps  int        `json:"pending_steps"`
	PendingEvents int        `json:"pending_events"`
}
