package audio

import (
	"math"

	"github.com/argusdusty/gofft"
	"github.com/linuxmatters/voiceactor/internal/config"
)

// ApplyHanning applies a Hanning window to the input data
func ApplyHanning(data []float64) []float64 {
	windowed := make([]float64, len(data))
	n := len(data)
	if n < 2 {
		copy(windowed, data)
		return windowed
	}
	for i := range data {
		window := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		windowed[i] = data[i] * window
	}
	return windowed
}

// BinFFT bins FFT coefficients into numBars bars and returns values
// normalized to 0.0-1.0 on a log scale.
func BinFFT(coeffs []complex128, numBars int) []float64 {
	barHeights := make([]float64, numBars)
	if numBars <= 0 || len(coeffs) == 0 {
		return barHeights
	}

	// Use only the positive frequencies, and of those the lower 3/4
	// where most programme material sits
	halfSize := len(coeffs) / 2
	maxFreqBin := (halfSize * 3) / 4
	binsPerBar := maxFreqBin / numBars
	if binsPerBar < 1 {
		binsPerBar = 1
	}

	for bar := 0; bar < numBars; bar++ {
		start := bar * binsPerBar
		end := start + binsPerBar
		if end > maxFreqBin {
			end = maxFreqBin
		}

		var sum float64
		for i := start; i < end; i++ {
			sum += math.Hypot(real(coeffs[i]), imag(coeffs[i]))
		}
		barHeights[bar] = sum / float64(binsPerBar)
	}

	// Scale relative to a full-scale sine through the window, so quiet
	// passages stay short rather than being stretched to the top
	fullScale := float64(len(coeffs)) / 4
	for i := range barHeights {
		scaled := barHeights[i] / fullScale
		if scaled < 0.001 {
			barHeights[i] = 0
			continue
		}
		barHeights[i] = math.Min(1, math.Log10(1+scaled*9))
	}

	return barHeights
}

// Spectrum returns config.NumBars bar heights for the config.FFTSize frames
// of buf starting at frame. Frames beyond the end of the buffer are treated
// as silence.
func Spectrum(buf *Buffer, frame int) []float64 {
	samples := make([]float64, config.FFTSize)
	for i := range samples {
		samples[i] = buf.Mono(frame + i)
	}

	coeffs := gofft.Float64ToComplex128Array(ApplyHanning(samples))
	if err := gofft.FFT(coeffs); err != nil {
		// only fails for non power-of-two sizes
		return make([]float64, config.NumBars)
	}

	return BinFFT(coeffs, config.NumBars)
}
