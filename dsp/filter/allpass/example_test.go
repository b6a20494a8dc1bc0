package allpass_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-zplane/dsp/filter/allpass"
)

func ExampleSection() {
	s, err := allpass.New(0.5)
	if err != nil {
		panic(err)
	}

	r, err := s.Response(3)
	if err != nil {
		panic(err)
	}

	worst := 0.0
	for _, m := range r.Magnitude {
		worst = math.Max(worst, math.Abs(m-1))
	}

	fmt.Printf("zero=%.1f pole=%.1f\n", real(s.Zero()), real(s.Pole()))
	fmt.Printf("phase at w=pi/2: %.4f\n", r.Phase[1])
	fmt.Println("unit magnitude:", worst < 1e-12)

	// Output:
	// zero=2.0 pole=0.5
	// phase at w=pi/2: -2.4981
	// unit magnitude: true
}
