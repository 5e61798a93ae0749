package engine

import (
	"worldbridge/pkg/api"
)

// Frame собирает кадр для зрителей. Можно вызывать из любой горутины.
func (w *World) Frame() api.WorldFrame {
	actors := w.Actors()
	frame := api.WorldFrame{
		Version: api.ProtocolVersion,
		Tick:    w.CurrentTick(),
		SimTime: w.SimTime().Seconds(),
		Actors:  make([]api.ActorFrame, 0, len(actors)),
	}

	for _, a := range actors {
		rx, ry := a.Body.RenderPos()
		frame.Actors = append(frame.Actors, api.ActorFrame{
			ID:            a.ID.String(),
			Cell:          toCell(a.Body.Cell()),
			Render:        [2]float64{rx, ry},
			State:         a.Stepper.State().String(),
			PendingSteps:  a.Steps.Len(),
			PendingEvents: w.Bus.Pending(a.ID),
		})
	}
	return frame
}
