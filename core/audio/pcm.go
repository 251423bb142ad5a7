package audio

import "encoding/binary"

// DecodeS16LE converts little-endian signed 16-bit PCM bytes into float32
// samples in [-1, 1). Trailing odd bytes are ignored.
func DecodeS16LE(raw []byte) []float32 {
	samples := make([]float32, 0, len(raw)/2)
	for i := 0; i+1 < len(raw); i += 2 {
		s := int16(binary.LittleEndian.Uint16(raw[i:]))
		samples = append(samples, float32(s)/32768)
	}
	return samples
}

// EncodeS16LE converts float32 samples into little-endian signed 16-bit PCM
// bytes, clamping out-of-range values.
func EncodeS16LE(samples []float32) []byte {
	raw := make([]byte, len(samples)*2)
	for i, sample := range samples {
		scaled := sample * 32767
		if scaled > 32767 {
			scaled = 32767
		} else if scaled < -32768 {
			scaled = -32768
		}
		binary.LittleEndian.PutUint16(raw[i*2:], uint16(int16(scaled)))
	}
	return raw
}
