package audio

import "testing"

func TestDecodeS16LERange(t *testing.T) {
	raw := []byte{0x00, 0x00, 0xFF, 0x7F, 0x00, 0x80}
	samples := DecodeS16LE(raw)

	if len(samples) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(samples))
	}
	if samples[0] != 0 {
		t.Fatalf("expected silence to decode to 0, got %f", samples[0])
	}
	if samples[1] <= 0.999 || samples[1] >= 1 {
		t.Fatalf("expected max positive sample just below 1, got %f", samples[1])
	}
	if samples[2] != -1 {
		t.Fatalf("expected min sample to decode to -1, got %f", samples[2])
	}
}

func TestDecodeS16LEIgnoresTrailingByte(t *testing.T) {
	if samples := DecodeS16LE([]byte{0x00, 0x00, 0x12}); len(samples) != 1 {
		t.Fatalf("expected trailing odd byte to be ignored, got %d samples", len(samples))
	}
}

func TestEncodeS16LERoundTrip(t *testing.T) {
	original := []float32{0, 0.5, -0.5, 0.25}
	decoded := DecodeS16LE(EncodeS16LE(original))

	if len(decoded) != len(original) {
		t.Fatalf("expected %d samples, got %d", len(original), len(decoded))
	}
	for i := range original {
		diff := decoded[i] - original[i]
		if diff < 0 {
			diff = -diff
		}
		if diff > 1.0/32768 {
			t.Fatalf("sample %d drifted: expected %f, got %f", i, original[i], decoded[i])
		}
	}
}

func TestEncodeS16LEClamps(t *testing.T) {
	raw := EncodeS16LE([]float32{2, -2})
	samples := DecodeS16LE(raw)
	if samples[0] < 0.999 {
		t.Fatalf("expected positive overflow to clamp near 1, got %f", samples[0])
	}
	if samples[1] != -1 {
		t.Fatalf("expected negative overflow to clamp to -1, got %f", samples[1])
	}
}
