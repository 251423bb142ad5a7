package audio

const (
	// DefaultSampleRate is the rate the whole pipeline operates at. Capture
	// backends are configured to deliver it directly so no resampling happens
	// between the microphone and the segmenter.
	DefaultSampleRate = 16000
	DefaultFormat     = "linear16"

	// DefaultBlockSize is the number of samples in one capture block (20 ms
	// at 16 kHz).
	DefaultBlockSize = 320
)

func GetDefaultEncodingInfo() EncodingInfo {
	return EncodingInfo{SampleRate: DefaultSampleRate, Format: encodingFormat(DefaultFormat)}
}

type EncodingInfo struct {
	SampleRate int
	Format     encodingFormat
}

func (e EncodingInfo) IsZero() bool {
	return e.SampleRate == 0 || e.Format.Name() == ""
}

type encodingFormat string

func (e encodingFormat) Name() string {
	return string(e)
}

func (e encodingFormat) ByteSize() int {
	switch e {
	case EncodingLinear16:
		return 2
	case EncodingFloat32:
		return 4
	}
	return -1
}

const (
	EncodingLinear16 encodingFormat = "linear16"
	EncodingFloat32  encodingFormat = "float32"
)
