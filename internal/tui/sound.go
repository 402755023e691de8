package tui

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog/log"
)

// Chimer plays short cues for puzzle events.
type Chimer interface {
	Solved()
	Wrong()
	Accepted()
	Close()
}

const sampleRate = beep.SampleRate(44100)

type speakerChimer struct{}

// NewChimer returns a speaker-backed Chimer, or a silent one when sound is off or
// the speaker cannot be opened. The game runs fine without sound.
func NewChimer(enabled bool) Chimer {
	if !enabled {
		return silent{}
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		log.Warn().Err(err).Msg("audio initialization failed")
		return silent{}
	}
	return speakerChimer{}
}

func (speakerChimer) Solved() { tones(660, 880) }
func (speakerChimer) Wrong() { tones(220) }
func (speakerChimer) Accepted() { tones(523, 659, 784, 1047) }
func (speakerChimer) Close() { speaker.Close() }

// tones plays each frequency for 80ms, one after another.
func tones(freqs ...float64) {
	seq := make([]beep.Streamer, 0, len(freqs))
	for _, f := range freqs {
		sine, err := generators.SineTone(sampleRate, f)
		if err != nil {
			log.Debug().Err(err).Float64("freq", f).Msg("tone")
			return
		}
		seq = append(seq, beep.Take(sampleRate.N(80*time.Millisecond), sine))
	}
	speaker.Play(beep.Seq(seq...))
}

type silent struct{}

func (silent) Solved() {}
func (silent) Wrong() {}
func (silent) Accepted() {}
func (silent) Close() {}
