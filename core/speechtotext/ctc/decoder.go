package ctc

import "strings"

// blankID is the CTC blank entry, always the first vocabulary row.
const blankID = 0

// wordBoundary marks subword tokens that begin a new word.
const wordBoundary = "▁"

// greedyDecode collapses per-frame logits into text: argmax each frame,
// merge consecutive repeats, drop blanks, then join subword tokens. The
// function is deterministic and depends only on its inputs.
func greedyDecode(logits [][]float32, vocab []string) string {
	ids := make([]int, 0, len(logits))
	for _, frame := range logits {
		ids = append(ids, argmax(frame))
	}
	return joinSubwords(removeBlanks(collapseRepeats(ids)), vocab)
}

func argmax(frame []float32) int {
	best := 0
	for i := 1; i < len(frame); i++ {
		if frame[i] > frame[best] {
			best = i
		}
	}
	return best
}

// collapseRepeats merges runs of identical ids. Repeats separated by a
// blank survive as distinct tokens, which is what lets CTC spell "ll".
func collapseRepeats(ids []int) []int {
	out := make([]int, 0, len(ids))
	prev := -1
	for _, id := range ids {
		if id != prev {
			out = append(out, id)
		}
		prev = id
	}
	return out
}

func removeBlanks(ids []int) []int {
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if id != blankID {
			out = append(out, id)
		}
	}
	return out
}

func joinSubwords(ids []int, vocab []string) string {
	var sb strings.Builder
	for _, id := range ids {
		if id < 0 || id >= len(vocab) {
			continue
		}
		token := vocab[id]
		if rest, ok := strings.CutPrefix(token, wordBoundary); ok {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(rest)
		} else {
			sb.WriteString(token)
		}
	}
	return strings.TrimSpace(sb.String())
}
