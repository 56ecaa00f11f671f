package layout

import (
	"sync"
	"testing"
	"time"

	"github.com/knomap/knomap/pkg/concept"
)

func TestAnimateReachesTarget(t *testing.T) {
	start := []concept.Node{positioned("a", 0, 0)}
	target := []concept.Node{positioned("a", 100, 200)}

	var mu sync.Mutex
	var last []concept.Node
	a := Animate(start, target, 50*time.Millisecond, func(frame []concept.Node) {
		mu.Lock()
		last = frame
		mu.Unlock()
	})

	select {
	case <-a.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("animation never finished")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(last) != 1 || last[0].Position == nil {
		t.Fatal("no final frame delivered")
	}
	if last[0].Position.X != 100 || last[0].Position.Y != 200 {
		t.Errorf("final frame at (%v, %v), want exact target (100, 200)",
			last[0].Position.X, last[0].Position.Y)
	}
}

func TestAnimateZeroDurationJumpsToTarget(t *testing.T) {
	start := []concept.Node{positioned("a", 0, 0)}
	target := []concept.Node{positioned("a", 50, 50)}

	frames := 0
	var got concept.Point
	a := Animate(start, target, 0, func(frame []concept.Node) {
		frames++
		got = *frame[0].Position
	})
	<-a.Done()

	if frames != 1 {
		t.Fatalf("delivered %d frames, want 1", frames)
	}
	if got.X != 50 || got.Y != 50 {
		t.Errorf("frame at (%v, %v), want (50, 50)", got.X, got.Y)
	}
}

func TestAnimateStopHaltsFrames(t *testing.T) {
	start := []concept.Node{positioned("a", 0, 0)}
	target := []concept.Node{positioned("a", 100, 100)}

	var mu sync.Mutex
	frames := 0
	a := Animate(start, target, time.Hour, func([]concept.Node) {
		mu.Lock()
		frames++
		mu.Unlock()
	})

	time.Sleep(60 * time.Millisecond)
	a.Stop()

	mu.Lock()
	after := frames
	mu.Unlock()
	time.Sleep(60 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if frames != after {
		t.Error("frames kept arriving after Stop returned")
	}

	select {
	case <-a.Done():
	default:
		t.Error("Done not closed after Stop")
	}
}

func TestAnimateStopFromFrameCallback(t *testing.T) {
	// A callback that wants to end the animation hands Stop to a new
	// goroutine; calling it inline would wait on itself.
	handle := make(chan *Animation, 1)
	a := Animate(nil, []concept.Node{positioned("a", 1, 1)}, time.Hour, func([]concept.Node) {
		select {
		case h := <-handle:
			go h.Stop()
		default:
		}
	})
	handle <- a

	select {
	case <-a.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("animation not stopped from frame callback")
	}
}

func TestAnimateStopIdempotent(t *testing.T) {
	a := Animate(nil, []concept.Node{positioned("a", 1, 1)}, time.Hour, func([]concept.Node) {})
	a.Stop()
	a.Stop()
}

func TestAnimateNewNodesSitAtTarget(t *testing.T) {
	// A node absent from the start set holds its target position on
	// every frame.
	target := []concept.Node{positioned("fresh", 300, 300)}
	a := Animate(nil, target, 30*time.Millisecond, func(frame []concept.Node) {
		if frame[0].Position.X != 300 || frame[0].Position.Y != 300 {
			t.Errorf("new node interpolated to (%v, %v)", frame[0].Position.X, frame[0].Position.Y)
		}
	})
	<-a.Done()
}
