package audio

import (
	"math"
	"time"
)

// Profile summarizes the loudness of a clip.
type Profile struct {
	Duration time.Duration
	Frames   int
	Peak     float64 // absolute peak, 0.0-1.0
	RMS      float64 // RMS over all samples, 0.0-1.0
}

// PeakDB returns the peak level in dBFS.
func (p Profile) PeakDB() float64 {
	return toDB(p.Peak)
}

// RMSDB returns the RMS level in dBFS.
func (p Profile) RMSDB() float64 {
	return toDB(p.RMS)
}

// DynamicRange is the crest factor in dB.
func (p Profile) DynamicRange() float64 {
	if p.RMS == 0 {
		return 0
	}
	return toDB(p.Peak) - toDB(p.RMS)
}

func toDB(v float64) float64 {
	if v <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(v)
}

// Analyze scans every sample of buf.
func Analyze(buf *Buffer) Profile {
	profile := Profile{
		Duration: buf.Duration(),
		Frames:   buf.Frames(),
	}

	channels := buf.Format().Channels
	var sumSquares float64
	for frame := 0; frame < profile.Frames; frame++ {
		for ch := 0; ch < channels; ch++ {
			v := buf.Sample(frame, ch)
			if a := math.Abs(v); a > profile.Peak {
				profile.Peak = a
			}
			sumSquares += v * v
		}
	}

	if n := profile.Frames * channels; n > 0 {
		profile.RMS = math.Sqrt(sumSquares / float64(n))
	}

	return profile
}
