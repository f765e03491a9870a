package sound

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// SampleRate is the rate every effect is rendered at
const SampleRate = beep.SampleRate(44100)

const (
	chirpDuration = 180 * time.Millisecond
	chirpAttack   = 8 * time.Millisecond
	chirpFrom     = 220.0
	chirpTo       = 880.0
)

// sweep is a sine oscillator whose frequency glides linearly from one
// pitch to another over its duration
type sweep struct {
	from, to float64
	phase    float64
	position int
	total    int
	rate     beep.SampleRate
}

// NewSweep creates a sine glide from one frequency to another
func NewSweep(from, to float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &sweep{
		from:  from,
		to:    to,
		total: rate.N(duration),
		rate:  rate,
	}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.total {
			return i, i > 0
		}

		val := math.Sin(2 * math.Pi * s.phase)
		samples[i][0] = val
		samples[i][1] = val

		progress := float64(s.position) / float64(s.total)
		freq := s.from + (s.to-s.from)*progress
		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// decay shapes a stream with a linear attack followed by an exponential fall-off
type decay struct {
	streamer beep.Streamer
	position int
	attack   int
	total    int
}

func newDecay(s beep.Streamer, duration, attack time.Duration, rate beep.SampleRate) beep.Streamer {
	return &decay{
		streamer: s,
		attack:   rate.N(attack),
		total:    rate.N(duration),
	}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := math.Exp(-4 * float64(d.position) / float64(d.total))
		if d.position < d.attack {
			vol *= float64(d.position) / float64(d.attack)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// withVolume scales a stream by a linear volume in [0, 1]
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// LaunchChirp returns the rising chirp played when the body is launched
func LaunchChirp(volume float64) beep.Streamer {
	osc := NewSweep(chirpFrom, chirpTo, chirpDuration, SampleRate)
	return withVolume(newDecay(osc, chirpDuration, chirpAttack, SampleRate), volume)
}

// Render drains s into signed 16-bit little-endian stereo PCM
func Render(s beep.Streamer) []byte {
	var (
		out []byte
		buf [512][2]float64
	)
	for {
		n, ok := s.Stream(buf[:])
		for _, frame := range buf[:n] {
			for _, v := range frame {
				sample := int16(clamp(v) * math.MaxInt16)
				out = append(out, byte(sample), byte(sample>>8))
			}
		}
		if !ok || n < len(buf) {
			return out
		}
	}
}

func clamp(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	default:
		return v
	}
}
