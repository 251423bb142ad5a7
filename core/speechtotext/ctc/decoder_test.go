package ctc

import "testing"

func frames(vocabSize int, ids ...int) [][]float32 {
	out := make([][]float32, len(ids))
	for i, id := range ids {
		row := make([]float32, vocabSize)
		row[id] = 10
		out[i] = row
	}
	return out
}

func TestGreedyDecodeCollapsesRepeatsAndBlanks(t *testing.T) {
	vocab := []string{"<blk>", "▁turn", "▁on", "▁the", "▁vent", "ilator"}

	got := greedyDecode(frames(len(vocab), 0, 1, 1, 0, 2, 0, 0, 3, 4, 4, 5, 0), vocab)
	if got != "turn on the ventilator" {
		t.Fatalf("expected 'turn on the ventilator', got %q", got)
	}
}

func TestGreedyDecodeKeepsBlankSeparatedRepeats(t *testing.T) {
	vocab := []string{"<blk>", "▁he", "l", "o"}

	// "l l" separated by a blank must survive as two tokens.
	got := greedyDecode(frames(len(vocab), 1, 2, 0, 2, 3), vocab)
	if got != "hello" {
		t.Fatalf("expected 'hello', got %q", got)
	}
}

func TestGreedyDecodeAllBlanksIsEmpty(t *testing.T) {
	vocab := []string{"<blk>", "▁a"}

	if got := greedyDecode(frames(len(vocab), 0, 0, 0, 0), vocab); got != "" {
		t.Fatalf("expected empty transcript, got %q", got)
	}
	if got := greedyDecode(nil, vocab); got != "" {
		t.Fatalf("expected empty transcript for no frames, got %q", got)
	}
}

func TestGreedyDecodeIsDeterministic(t *testing.T) {
	vocab := []string{"<blk>", "▁suction", "▁pump"}
	logits := frames(len(vocab), 1, 0, 2, 2, 0)

	first := greedyDecode(logits, vocab)
	for i := 0; i < 5; i++ {
		if got := greedyDecode(logits, vocab); got != first {
			t.Fatalf("decode diverged on run %d: %q vs %q", i, got, first)
		}
	}
	if first != "suction pump" {
		t.Fatalf("expected 'suction pump', got %q", first)
	}
}

func TestCollapseRepeats(t *testing.T) {
	got := collapseRepeats([]int{1, 1, 1, 0, 0, 2, 2, 1})
	want := []int{1, 0, 2, 1}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestCollapseRepeatsIsIdempotent(t *testing.T) {
	collapsed := collapseRepeats([]int{1, 1, 0, 2, 2, 2, 1})

	again := collapseRepeats(collapsed)
	if len(again) != len(collapsed) {
		t.Fatalf("collapsing a collapsed sequence changed it: %v vs %v", again, collapsed)
	}
	for i := range collapsed {
		if again[i] != collapsed[i] {
			t.Fatalf("collapsing a collapsed sequence changed it: %v vs %v", again, collapsed)
		}
	}
}

func TestGreedyDecodeWithoutConsecutiveDuplicates(t *testing.T) {
	vocab := []string{"<blk>", "▁turn", "▁off", "▁suction"}

	// Already-collapsed frames decode to every token exactly once.
	got := greedyDecode(frames(len(vocab), 1, 2, 3), vocab)
	if got != "turn off suction" {
		t.Fatalf("expected 'turn off suction', got %q", got)
	}
}

func TestJoinSubwordsIgnoresOutOfRangeIDs(t *testing.T) {
	vocab := []string{"<blk>", "▁ok"}
	if got := joinSubwords([]int{1, 99}, vocab); got != "ok" {
		t.Fatalf("expected 'ok', got %q", got)
	}
}
