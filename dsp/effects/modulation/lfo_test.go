package modulation

import (
	"math"
	"testing"
)

const testSampleRate = 48000.0

func TestLFOSineTable(t *testing.T) {
	l := NewSineOscillator(testSampleRate, 1000)

	tests := []struct {
		index int
		want  uint32
	}{
		{0, 32768},
		{128, 65535},
		{256, 32768},
		{384, 1},
	}

	for _, tt := range tests {
		if got := l.table[tt.index]; got != tt.want {
			t.Errorf("table[%d] = %d, want %d", tt.index, got, tt.want)
		}
	}
}

func TestLFOProfilesStayInRange(t *testing.T) {
	for p := ProfileSine; p < profileCount; p++ {
		t.Run(p.String(), func(t *testing.T) {
			l := NewLFO(testSampleRate)
			l.SetProfile(p)
			l.SetPeriodMilliseconds(PeriodRange.Min)

			var peak uint32
			for range 10000 {
				v := l.Value()
				if v > lfoMaxValue {
					t.Fatalf("Value() = %d exceeds %d", v, lfoMaxValue)
				}

				peak = max(peak, v)
			}

			if peak == 0 {
				t.Fatal("profile never left zero")
			}
		})
	}
}

func TestLFOSquareDuty(t *testing.T) {
	l := NewLFO(testSampleRate)
	l.SetProfile(ProfileSquare)
	l.SetDutyCycle(25)

	for i, v := range l.table {
		want := uint32(0)
		if i <= 128 {
			want = lfoMaxValue
		}

		if v != want {
			t.Fatalf("table[%d] = %d, want %d", i, v, want)
		}
	}
}

func TestLFOPeriod(t *testing.T) {
	l := NewSineOscillator(testSampleRate, 500)

	const periods = 10

	period := int(testSampleRate * 0.5)
	wraps := 0
	prev := l.phase

	for range periods*period + 100 {
		l.Value()

		if l.phase < prev {
			wraps++
		}

		prev = l.phase
	}

	if wraps != periods {
		t.Fatalf("wraps = %d, want %d", wraps, periods)
	}
}

func TestLFOClamps(t *testing.T) {
	l := NewLFO(testSampleRate)

	tests := []struct {
		name string
		set  func()
		want float64
	}{
		{"short period", func() { l.SetPeriodMilliseconds(10) }, 100},
		{"long period", func() { l.SetPeriodMilliseconds(60000) }, 5000},
		{"NaN period", func() { l.SetPeriodMilliseconds(math.NaN()) }, PeriodRange.Default},
		{"fast rate", func() { l.SetFrequency(100) }, 100},
		{"slow rate", func() { l.SetFrequency(0.01) }, 5000},
		{"zero rate", func() { l.SetFrequency(0) }, 5000},
		{"4 Hz", func() { l.SetFrequency(4) }, 250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.set()

			if got := l.PeriodMilliseconds(); got != tt.want {
				t.Fatalf("PeriodMilliseconds() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLFOUnknownProfile(t *testing.T) {
	l := NewLFO(testSampleRate)
	l.SetProfile(Profile(200))

	if l.Profile() != ProfileSine {
		t.Fatalf("Profile() = %v, want %v", l.Profile(), ProfileSine)
	}

	if got := Profile(200).String(); got != "Profile(200)" {
		t.Fatalf("String() = %q", got)
	}
}

func TestLFOReset(t *testing.T) {
	l := NewSineOscillator(testSampleRate, 1000)

	first := l.Value()
	for range 1234 {
		l.Value()
	}

	l.Reset()

	if got := l.Value(); got != first {
		t.Fatalf("Value() after Reset = %d, want %d", got, first)
	}
}
