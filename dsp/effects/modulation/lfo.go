package modulation

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-gtrfx/dsp/core"
)

const (
	lfoTableSize = 512
	lfoMaxValue  = 65535
	// lfoAmplitude is the nominal full-scale value reported by Amplitude.
	lfoAmplitude = 65532
)

// Oscillator produces one unsigned modulation value per tick in
// [0, Amplitude()].
type Oscillator interface {
	Value() uint32
	Amplitude() uint32
}

// Profile selects the LFO waveform.
type Profile uint8

const (
	ProfileSine Profile = iota
	ProfileHalfSine
	ProfileRamp
	ProfileSaw
	ProfileTriangle
	ProfileSquare
	ProfileExpDecrease
	ProfileExpIncrease
	profileCount
)

var profileNames = [...]string{"sine", "half-sine", "ramp", "saw", "triangle", "square", "exp-decrease", "exp-increase"}

func (p Profile) String() string {
	if p < profileCount {
		return profileNames[p]
	}

	return fmt.Sprintf("Profile(%d)", uint8(p))
}

// ProfileFromParam converts a parameter vector entry to a Profile. The
// fractional part is dropped; NaN and out-of-range values select sine.
func ProfileFromParam(v float64) Profile {
	if !(v >= 0) || v >= float64(profileCount) {
		return ProfileSine
	}

	return Profile(v)
}

// Parameter ranges of LFO.
var (
	PeriodRange    = core.Range{Min: 100, Max: 5000, Default: 500}
	DutyCycleRange = core.Range{Min: 0, Max: 100, Default: 50}
)

// LFO steps through a 512-entry waveform table at a rate set by its period.
type LFO struct {
	sampleRate float64
	profile    Profile
	periodMs   float64
	duty       float64

	phase float64
	step  float64
	table [lfoTableSize]uint32
}

var _ Oscillator = (*LFO)(nil)

// NewLFO creates a half-sine LFO with a 500 ms period.
func NewLFO(sampleRate float64) *LFO {
	l := &LFO{
		sampleRate: sampleRate,
		profile:    ProfileHalfSine,
		duty:       DutyCycleRange.Default,
	}
	l.SetPeriodMilliseconds(PeriodRange.Default)
	l.fillTable()

	return l
}

// NewSineOscillator creates a full-sine LFO with the given period.
func NewSineOscillator(sampleRate, periodMs float64) *LFO {
	l := NewLFO(sampleRate)
	l.SetProfile(ProfileSine)
	l.SetPeriodMilliseconds(periodMs)

	return l
}

// Profile returns the waveform.
func (l *LFO) Profile() Profile { return l.profile }

// PeriodMilliseconds returns the cycle length.
func (l *LFO) PeriodMilliseconds() float64 { return l.periodMs }

// Frequency returns the cycle rate in Hz.
func (l *LFO) Frequency() float64 { return 1000 / l.periodMs }

// DutyCycle returns the duty cycle in percent.
func (l *LFO) DutyCycle() float64 { return l.duty }

// Amplitude returns the nominal full-scale value.
func (l *LFO) Amplitude() uint32 { return lfoAmplitude }

// SetProfile selects the waveform. Unknown profiles fall back to sine.
func (l *LFO) SetProfile(p Profile) {
	if p >= profileCount {
		p = ProfileSine
	}

	l.profile = p
	l.fillTable()
}

// SetPeriodMilliseconds sets the cycle length in [100, 5000] ms.
func (l *LFO) SetPeriodMilliseconds(ms float64) {
	l.periodMs = PeriodRange.Clamp(ms)
	l.step = lfoTableSize * 1000 / (l.sampleRate * l.periodMs)
}

// SetFrequency sets the cycle rate, clamped to the period range.
func (l *LFO) SetFrequency(hz float64) {
	if !(hz > 0) {
		l.SetPeriodMilliseconds(PeriodRange.Max)
		return
	}

	l.SetPeriodMilliseconds(1000 / hz)
}

// SetDutyCycle sets the active fraction, in percent, of the square profile
// and the decay length of the exponential profiles.
func (l *LFO) SetDutyCycle(percent float64) {
	l.duty = DutyCycleRange.Clamp(percent)
	l.fillTable()
}

// Reset rewinds the phase to the start of the table.
func (l *LFO) Reset() { l.phase = 0 }

// Value advances the phase by one tick and returns the table value.
func (l *LFO) Value() uint32 {
	l.phase += l.step
	if l.phase >= lfoTableSize {
		l.phase -= lfoTableSize
	}

	return l.table[int(l.phase)%lfoTableSize]
}

func (l *LFO) fillTable() {
	duty := l.duty * lfoTableSize / 100

	for i := range l.table {
		x := float64(i)

		var v float64
		switch l.profile {
		case ProfileSine:
			v = 32767*math.Sin(2*math.Pi*x/lfoTableSize) + 32768
		case ProfileHalfSine:
			v = lfoMaxValue * math.Sin(math.Pi*x/lfoTableSize)
		case ProfileRamp:
			v = 128 * x
		case ProfileSaw:
			v = 65408 - 128*x
		case ProfileTriangle:
			if i < lfoTableSize/2 {
				v = 256 * x
			} else {
				v = lfoMaxValue - 256*(x-lfoTableSize/2)
			}
		case ProfileSquare:
			if x <= duty {
				v = lfoMaxValue
			}
		case ProfileExpDecrease, ProfileExpIncrease:
			k := x
			if l.profile == ProfileExpIncrease {
				k = lfoTableSize - 1 - x
			}

			if duty > 0 {
				v = lfoMaxValue * (1 - math.Exp(-k/2)) * math.Exp(-k/duty)
			}
		}

		l.table[i] = uint32(core.Clamp(v, 0, lfoMaxValue))
	}
}
