package network

import (
	"testing"

	"worldbridge/pkg/api"
)

func TestBroadcaster_RegisterAndBroadcast(t *testing.T) {
	hub := NewBroadcaster()
	a := hub.Register("a")
	b := hub.Register("b")

	if hub.SubscriberCount() != 2 {
		t.Fatalf("SubscriberCount = %d, want 2", hub.SubscriberCount())
	}

	hub.Broadcast(api.WorldFrame{Tick: 7})

	for name, ch := range map[string]chan api.WorldFrame{"a": a, "b": b} {
		select {
		case f := <-ch:
			if f.Tick != 7 {
				t.Errorf("%s got tick %d", name, f.Tick)
			}
		default:
			t.Errorf("%s got nothing", name)
		}
	}
}

func TestBroadcaster_SendToUnknown(t *testing.T) {
	hub := NewBroadcaster()
	if hub.SendTo("ghost", api.WorldFrame{}) {
		t.Error("SendTo unknown session should report false")
	}
}

func TestBroadcaster_SlowSubscriberSkipsFrames(t *testing.T) {
	hub := NewBroadcaster()
	ch := hub.Register("slow")

	for i := 0; i < FrameBuffer*2; i++ {
		hub.Broadcast(api.WorldFrame{Tick: int64(i)})
	}
	if len(ch) != FrameBuffer {
		t.Errorf("buffered %d frames, want %d", len(ch), FrameBuffer)
	}
	if hub.SendTo("slow", api.WorldFrame{}) {
		t.Error("SendTo into a full channel should report false")
	}
}

func TestBroadcaster_ReRegisterClosesOld(t *testing.T) {
	hub := NewBroadcaster()
	old := hub.Register("a")
	fresh := hub.Register("a")

	if _, ok := <-old; ok {
		t.Error("old channel should be closed")
	}
	if !hub.HasSubscriber("a") || hub.SubscriberCount() != 1 {
		t.Error("expected exactly one subscriber")
	}

	hub.Unregister("a")
	if _, ok := <-fresh; ok {
		t.Error("channel should be closed after Unregister")
	}
	if hub.HasSubscriber("a") {
		t.Error("subscriber should be gone")
	}
	// Повторный Unregister - no-op
	hub.Unregister("a")
}
