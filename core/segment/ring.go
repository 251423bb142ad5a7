package segment

// ring is a fixed-capacity sample buffer that overwrites its oldest samples
// on overflow. Writers never block; a consumer that falls behind loses the
// oldest audio, not the newest.
type ring struct {
	data  []float32
	total uint64
}

func newRing(capacity int) *ring {
	return &ring{data: make([]float32, capacity)}
}

func (r *ring) write(samples []float32) {
	for _, sample := range samples {
		r.data[r.total%uint64(len(r.data))] = sample
		r.total++
	}
}

// size returns the number of valid samples currently buffered.
func (r *ring) size() int {
	if r.total < uint64(len(r.data)) {
		return int(r.total)
	}
	return len(r.data)
}

// since copies out every sample written at or after the given absolute
// position. Positions that have already been overwritten are clamped to the
// oldest sample still present.
func (r *ring) since(position uint64) []float32 {
	oldest := uint64(0)
	if r.total > uint64(len(r.data)) {
		oldest = r.total - uint64(len(r.data))
	}
	if position < oldest {
		position = oldest
	}
	if position >= r.total {
		return nil
	}

	out := make([]float32, r.total-position)
	for i := range out {
		out[i] = r.data[(position+uint64(i))%uint64(len(r.data))]
	}
	return out
}
