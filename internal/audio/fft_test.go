package audio

import (
	"math"
	"testing"

	"github.com/argusdusty/gofft"
	"github.com/linuxmatters/voiceactor/internal/config"
)

func sineWindow(freq float64, rate, n int) []float64 {
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * freq * float64(i) / float64(rate))
	}
	return samples
}

func argmax(values []float64) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}

// A 2 kHz tone at 44.1 kHz lands in FFT bin ~93. With 2048 points the lower
// 3/4 of the positive spectrum is 768 bins, so 32 bars hold 24 bins each and
// the tone belongs in bar 3.
func TestBinFFT_KnownSineWave(t *testing.T) {
	const (
		sampleRate = 44100
		frequency  = 2000
		numBars    = 32
	)

	coeffs := gofft.Float64ToComplex128Array(ApplyHanning(sineWindow(frequency, sampleRate, 2048)))
	if err := gofft.FFT(coeffs); err != nil {
		t.Fatalf("FFT computation failed: %v", err)
	}

	bars := BinFFT(coeffs, numBars)
	if len(bars) != numBars {
		t.Fatalf("BinFFT() returned %d bars, want %d", len(bars), numBars)
	}

	if got := argmax(bars); got != 3 {
		t.Errorf("loudest bar = %d, want 3 (bars: %v)", got, bars)
	}
	for i, v := range bars {
		if v < 0 || v > 1 {
			t.Errorf("bar %d = %f, outside 0.0-1.0", i, v)
		}
	}
}

func TestBinFFT_Silence(t *testing.T) {
	coeffs := gofft.Float64ToComplex128Array(make([]float64, 2048))
	if err := gofft.FFT(coeffs); err != nil {
		t.Fatalf("FFT computation failed: %v", err)
	}

	for i, v := range BinFFT(coeffs, 32) {
		if v != 0 {
			t.Errorf("bar %d = %f, want 0 for silence", i, v)
		}
	}
}

func TestBinFFT_Empty(t *testing.T) {
	if got := BinFFT(nil, 8); len(got) != 8 {
		t.Errorf("BinFFT(nil, 8) returned %d bars, want 8", len(got))
	}
	if got := BinFFT(nil, 0); len(got) != 0 {
		t.Errorf("BinFFT(nil, 0) returned %d bars, want 0", len(got))
	}
}

func TestApplyHanning_WindowProperties(t *testing.T) {
	ones := make([]float64, 64)
	for i := range ones {
		ones[i] = 1
	}

	windowed := ApplyHanning(ones)

	if windowed[0] != 0 || math.Abs(windowed[63]) > 1e-12 {
		t.Errorf("window edges = %f, %f, want 0", windowed[0], windowed[63])
	}
	for i := 0; i < 32; i++ {
		if math.Abs(windowed[i]-windowed[63-i]) > 1e-12 {
			t.Errorf("window not symmetric at %d: %f vs %f", i, windowed[i], windowed[63-i])
		}
	}
	if ones[10] != 1 {
		t.Error("ApplyHanning modified its input")
	}
}

func TestSpectrum(t *testing.T) {
	buf := int16Buffer(t, 44100, sineWindow(2000, 44100, 8192))

	bars := Spectrum(buf, 1024)
	if len(bars) != config.NumBars {
		t.Fatalf("Spectrum() returned %d bars, want %d", len(bars), config.NumBars)
	}
	if got := argmax(bars); got != 3 {
		t.Errorf("loudest bar = %d, want 3", got)
	}

	for i, v := range Spectrum(buf, buf.Frames()) {
		if v != 0 {
			t.Errorf("bar %d past end of buffer = %f, want 0", i, v)
		}
	}
}
