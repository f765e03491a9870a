package sound

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplesOf(t *testing.T, pcm []byte) []int16 {
	t.Helper()
	require.Zero(t, len(pcm)%4, "pcm must hold whole stereo frames")
	out := make([]int16, len(pcm)/2)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(pcm[2*i:]))
	}
	return out
}

func TestSweep_Length(t *testing.T) {
	s := NewSweep(100, 200, 10*time.Millisecond, beep.SampleRate(1000))
	pcm := Render(s)
	assert.Len(t, pcm, 10*4)
}

func TestSweep_StartsAtZeroPhase(t *testing.T) {
	s := NewSweep(100, 200, 10*time.Millisecond, beep.SampleRate(1000))
	samples := samplesOf(t, Render(s))
	assert.Equal(t, int16(0), samples[0])
	assert.Equal(t, int16(0), samples[1])
}

func TestSweep_Exhausted(t *testing.T) {
	s := NewSweep(100, 200, 2*time.Millisecond, beep.SampleRate(1000))
	buf := make([][2]float64, 8)

	n, ok := s.Stream(buf)
	assert.Equal(t, 2, n)
	assert.True(t, ok)

	n, ok = s.Stream(buf)
	assert.Equal(t, 0, n)
	assert.False(t, ok)
}

func TestLaunchChirp(t *testing.T) {
	samples := samplesOf(t, Render(LaunchChirp(1)))
	assert.Len(t, samples, 2*SampleRate.N(chirpDuration))

	var peak int16
	for i := 0; i < len(samples); i += 2 {
		assert.Equal(t, samples[i], samples[i+1], "channels must match")
		if samples[i] > peak {
			peak = samples[i]
		}
	}
	assert.Greater(t, peak, int16(1000))

	// the tail has decayed well below the peak
	tail := samples[len(samples)-2]
	assert.Less(t, abs(tail), peak/10)
}

func TestLaunchChirp_Muted(t *testing.T) {
	for _, s := range samplesOf(t, Render(LaunchChirp(0))) {
		require.Equal(t, int16(0), s)
	}
}

func TestLaunchChirp_QuieterAtLowVolume(t *testing.T) {
	loud := samplesOf(t, Render(LaunchChirp(1)))
	quiet := samplesOf(t, Render(LaunchChirp(0.25)))
	require.Equal(t, len(loud), len(quiet))

	i := len(loud) / 8
	assert.InDelta(t, float64(loud[i])/4, float64(quiet[i]), 2)
}

func abs(v int16) int16 {
	if v < 0 {
		return -v
	}
	return v
}
