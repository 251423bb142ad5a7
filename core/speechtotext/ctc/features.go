package ctc

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

const (
	numMels    = 128
	fftSize    = 512
	winLength  = 400 // 25 ms at 16 kHz
	hopLength  = 160 // 10 ms at 16 kHz
	sampleRate = 16000

	melFloor = 1e-10
)

type featureExtractor struct {
	fft        *fourier.FFT
	window     []float64
	filterbank [][]float64 // numMels rows, fftSize/2+1 columns
}

func newFeatureExtractor() *featureExtractor {
	// Periodic Hann window, the fftbins form used for STFT analysis.
	window := make([]float64, winLength)
	for i := range window {
		window[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(winLength))
	}
	return &featureExtractor{
		fft:        fourier.NewFFT(fftSize),
		window:     window,
		filterbank: melFilterbank(numMels, fftSize, sampleRate),
	}
}

// LogMel computes a log-mel spectrogram with per-utterance mean and variance
// normalization. The result has one row per frame, each numMels wide.
func (e *featureExtractor) LogMel(samples []float32) [][]float32 {
	if len(samples) < winLength {
		padded := make([]float32, winLength)
		copy(padded, samples)
		samples = padded
	}
	numFrames := 1 + (len(samples)-winLength)/hopLength

	frame := make([]float64, fftSize)
	power := make([]float64, fftSize/2+1)
	features := make([][]float32, numFrames)

	var sum, sumSq float64
	for t := 0; t < numFrames; t++ {
		offset := t * hopLength
		for i := 0; i < winLength; i++ {
			frame[i] = float64(samples[offset+i]) * e.window[i]
		}
		for i := winLength; i < fftSize; i++ {
			frame[i] = 0
		}
		coeffs := e.fft.Coefficients(nil, frame)
		for i, c := range coeffs {
			re, im := real(c), imag(c)
			power[i] = re*re + im*im
		}

		row := make([]float32, numMels)
		for m, filter := range e.filterbank {
			var energy float64
			for bin, weight := range filter {
				if weight != 0 {
					energy += power[bin] * weight
				}
			}
			v := math.Log(math.Max(energy, melFloor))
			row[m] = float32(v)
			sum += v
			sumSq += v * v
		}
		features[t] = row
	}

	// Utterance-level normalization keeps the model input distribution
	// stable regardless of microphone gain.
	n := float64(numFrames * numMels)
	mean := sum / n
	variance := sumSq/n - mean*mean
	std := math.Sqrt(math.Max(variance, 1e-10))
	for _, row := range features {
		for i, v := range row {
			row[i] = float32((float64(v) - mean) / std)
		}
	}
	return features
}

// melFilterbank builds triangular filters with integer bin edges, matching
// the common floor((nfft+1)*hz/rate) construction.
func melFilterbank(mels, nfft, rate int) [][]float64 {
	lowMel := hzToMel(0)
	highMel := hzToMel(float64(rate) / 2)

	binPoints := make([]int, mels+2)
	for i := range binPoints {
		mel := lowMel + (highMel-lowMel)*float64(i)/float64(mels+1)
		binPoints[i] = int(math.Floor(float64(nfft+1) * melToHz(mel) / float64(rate)))
	}

	bank := make([][]float64, mels)
	for m := 1; m <= mels; m++ {
		left, center, right := binPoints[m-1], binPoints[m], binPoints[m+1]
		filter := make([]float64, nfft/2+1)
		for k := left; k < center; k++ {
			filter[k] = float64(k-left) / float64(center-left)
		}
		for k := center; k < right; k++ {
			filter[k] = float64(right-k) / float64(right-center)
		}
		bank[m-1] = filter
	}
	return bank
}

func hzToMel(hz float64) float64 {
	return 2595 * math.Log10(1+hz/700)
}

func melToHz(mel float64) float64 {
	return 700 * (math.Pow(10, mel/2595) - 1)
}
