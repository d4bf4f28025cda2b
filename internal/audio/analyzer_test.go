package audio

import (
	"encoding/binary"
	"math"
	"testing"
)

// int16Buffer builds a mono 16-bit buffer from normalized samples.
func int16Buffer(t *testing.T, rate int, samples []float64) *Buffer {
	t.Helper()

	data := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(data[i*2:], uint16(int16(s*32767)))
	}
	buf, err := NewBuffer(data, Format{SampleWidth: 2, Channels: 1, FrameRate: rate})
	if err != nil {
		t.Fatalf("NewBuffer() unexpected error: %v", err)
	}
	return buf
}

func TestAnalyze_Sine(t *testing.T) {
	const rate = 44100
	samples := make([]float64, rate)
	for i := range samples {
		samples[i] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/rate)
	}

	profile := Analyze(int16Buffer(t, rate, samples))

	if profile.Frames != rate {
		t.Errorf("Frames = %d, want %d", profile.Frames, rate)
	}
	if math.Abs(profile.Peak-0.5) > 0.01 {
		t.Errorf("Peak = %.4f, want ~0.5", profile.Peak)
	}
	// RMS of a sine is amplitude / sqrt(2)
	if want := 0.5 / math.Sqrt2; math.Abs(profile.RMS-want) > 0.01 {
		t.Errorf("RMS = %.4f, want ~%.4f", profile.RMS, want)
	}
	// Crest factor of a sine is ~3 dB
	if dr := profile.DynamicRange(); math.Abs(dr-3.01) > 0.2 {
		t.Errorf("DynamicRange() = %.2f, want ~3.01", dr)
	}
	if profile.PeakDB() > -5.9 || profile.PeakDB() < -6.2 {
		t.Errorf("PeakDB() = %.2f, want ~-6.02", profile.PeakDB())
	}
}

func TestAnalyze_Silence(t *testing.T) {
	profile := Analyze(int16Buffer(t, 8000, make([]float64, 800)))

	if profile.Peak != 0 || profile.RMS != 0 {
		t.Errorf("Peak/RMS = %f/%f, want 0/0", profile.Peak, profile.RMS)
	}
	if profile.DynamicRange() != 0 {
		t.Errorf("DynamicRange() = %f, want 0", profile.DynamicRange())
	}
	if !math.IsInf(profile.PeakDB(), -1) {
		t.Errorf("PeakDB() = %f, want -Inf", profile.PeakDB())
	}
}
