package echo_test

import (
	"fmt"

	"github.com/cwbudde/algo-gtrfx/dsp/delay"
	"github.com/cwbudde/algo-gtrfx/dsp/effects/echo"
)

func ExampleNewFeedbackDelay() {
	h, err := delay.NewHistory(48000)
	if err != nil {
		panic(err)
	}

	e, err := echo.NewFeedbackDelay(48000, h.View())
	if err != nil {
		panic(err)
	}

	e.SetDelayMilliseconds(31)
	fmt.Println(e.DelaySamples(), e.ParamNames())
	// Output: 1488 [state delay_ms decay_rate gain]
}

func ExampleFeedforwardEcho_Weights() {
	h, err := delay.NewHistory(48000)
	if err != nil {
		panic(err)
	}

	e, err := echo.NewFeedforwardDelay(48000, h.View())
	if err != nil {
		panic(err)
	}

	e.SetRepeats(2)
	e.SetDecayRate(1)
	fmt.Printf("%.4f\n", e.Weights())
	// Output: [0.7071 0.7071]
}
