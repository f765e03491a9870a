package game

import (
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/rs/zerolog"

	"gravityshot/sound"
)

// LaunchSound plays the launch chirp through ebiten's audio context
type LaunchSound struct {
	player *audio.Player
	log    zerolog.Logger
}

// NewLaunchSound renders the chirp once and prepares a player for it
func NewLaunchSound(volume float64, logger zerolog.Logger) *LaunchSound {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(int(sound.SampleRate))
	}
	return &LaunchSound{
		player: ctx.NewPlayerFromBytes(sound.Render(sound.LaunchChirp(volume))),
		log:    logger.With().Str("component", "audio").Logger(),
	}
}

// PlayLaunch restarts the chirp from the beginning
func (s *LaunchSound) PlayLaunch() {
	if err := s.player.Rewind(); err != nil {
		s.log.Warn().Err(err).Msg("rewind launch sound")
		return
	}
	s.player.Play()
}
