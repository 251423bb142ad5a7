package orchestration

import (
	"testing"

	"github.com/orpilot/orvoice-core/core/segment"
)

func TestWindowQueueDropsOldestWhenFull(t *testing.T) {
	var dropped []uint64
	q := newWindowQueue(2, func(w segment.Window) { dropped = append(dropped, w.Seq) })

	q.push(segment.Window{Seq: 1})
	q.push(segment.Window{Seq: 2})
	q.push(segment.Window{Seq: 3})

	if len(dropped) != 1 || dropped[0] != 1 {
		t.Fatalf("expected window 1 dropped, got %v", dropped)
	}

	first := <-q.windows
	second := <-q.windows
	if first.Seq != 2 || second.Seq != 3 {
		t.Fatalf("expected windows 2 and 3 in order, got %d and %d", first.Seq, second.Seq)
	}
}

func TestWindowQueuePreservesOrder(t *testing.T) {
	q := newWindowQueue(4, nil)
	for seq := uint64(1); seq <= 4; seq++ {
		q.push(segment.Window{Seq: seq})
	}
	for seq := uint64(1); seq <= 4; seq++ {
		if w := <-q.windows; w.Seq != seq {
			t.Fatalf("expected window %d, got %d", seq, w.Seq)
		}
	}
}

func TestWindowQueueIgnoresPushAfterClose(t *testing.T) {
	q := newWindowQueue(2, nil)
	q.push(segment.Window{Seq: 1})
	q.close()
	q.push(segment.Window{Seq: 2})

	w, ok := <-q.windows
	if !ok || w.Seq != 1 {
		t.Fatalf("expected the queued window to survive close, got %v %v", w, ok)
	}
	if _, ok := <-q.windows; ok {
		t.Fatal("expected the channel to be closed")
	}
}
