package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/ericre997/RatioRage/parameter"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves
// A non-zero sweep glides frequency linearly to freq+sweep over the duration
type oscillator struct {
	freq     float64
	sweep    float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, 0, duration, wave, rate)
}

// NewSweep creates an oscillator gliding from freq by sweep Hz
func NewSweep(freq, sweep float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		sweep:    sweep,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		freq := o.freq + o.sweep*float64(o.position)/float64(o.duration)
		o.phase += freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/sustain/release envelope
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := max(total-att-rel, 0)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s in a linear gain
// math.Log2(0) is -Inf, so zero volume is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// CreateExplosionSound layers a falling sine thump under a noise burst
func CreateExplosionSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d := parameter.ExplosionDuration

	thump := NewEnvelope(NewSweep(parameter.ExplosionBaseFreq, -parameter.ExplosionBaseFreq/2, d, WaveSine, rate),
		d, 5*time.Millisecond, d*2/3, rate)
	crack := NewEnvelope(NewOscillator(0, d, WaveNoise, rate),
		d, 2*time.Millisecond, d*3/4, rate)

	mixed := beep.Mix(newVolume(thump, 0.7), newVolume(crack, 0.4))
	return newVolume(mixed, cfg.volume(SoundExplosion))
}

// CreateThrowSound generates a short rising whoosh
func CreateThrowSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d := parameter.ThrowDuration

	air := NewEnvelope(NewOscillator(0, d, WaveNoise, rate), d, d/3, d/2, rate)
	tone := NewEnvelope(NewSweep(parameter.ThrowBaseFreq, parameter.ThrowBaseFreq, d, WaveSine, rate), d, d/4, d/2, rate)

	mixed := beep.Mix(newVolume(air, 0.3), newVolume(tone, 0.2))
	return newVolume(mixed, cfg.volume(SoundThrow))
}

// CreateScoreSound generates a bell ding with an octave overtone
func CreateScoreSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d := parameter.ScoreDuration

	fund := NewEnvelope(NewOscillator(parameter.ScoreBaseFreq, d, WaveSine, rate), d, 5*time.Millisecond, d*3/4, rate)
	over := NewEnvelope(NewOscillator(parameter.ScoreBaseFreq*2, d, WaveSine, rate), d, 5*time.Millisecond, d/2, rate)

	mixed := beep.Mix(newVolume(fund, 0.7), newVolume(over, 0.3))
	return newVolume(mixed, cfg.volume(SoundScore))
}

// CreateLevelDoneSound plays a rising major arpeggio
func CreateLevelDoneSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	step := parameter.LevelDoneDuration / 3

	// Root, major third, fifth
	ratios := []float64{1, 1.25, 1.5}
	notes := make([]beep.Streamer, len(ratios))
	for i, r := range ratios {
		osc := NewOscillator(parameter.LevelDoneBaseFreq*r, step, WaveSquare, rate)
		notes[i] = NewEnvelope(osc, step, 5*time.Millisecond, step/2, rate)
	}

	return newVolume(beep.Seq(notes...), cfg.volume(SoundLevelDone)*0.5)
}

// GetSoundEffect returns the effect streamer for soundType, nil if unknown
func GetSoundEffect(soundType SoundType, cfg *Config) beep.Streamer {
	switch soundType {
	case SoundExplosion:
		return CreateExplosionSound(cfg)
	case SoundThrow:
		return CreateThrowSound(cfg)
	case SoundScore:
		return CreateScoreSound(cfg)
	case SoundLevelDone:
		return CreateLevelDoneSound(cfg)
	default:
		return nil
	}
}
