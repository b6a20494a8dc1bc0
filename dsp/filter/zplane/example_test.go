package zplane_test

import (
	"fmt"

	"github.com/cwbudde/algo-zplane/dsp/filter/zplane"
)

func ExampleRootSet() {
	s := zplane.NewRootSet()
	h := s.Add(zplane.Pole, complex(0.5, 0.5), true)
	s.Add(zplane.Zero, -1, false)

	fmt.Println(s.List(zplane.Pole))

	_ = s.Move(h, complex(0.25, 0.75))
	fmt.Println(s.List(zplane.Pole))

	if picked, err := s.Nearest(zplane.Pole, complex(0.3, -0.7), 0.1); err == nil {
		_ = s.Remove(picked)
	}
	fmt.Println(s.Len(zplane.Pole), s.Len(zplane.Zero))

	// Output:
	// [(0.5+0.5i) (0.5-0.5i)]
	// [(0.25+0.75i) (0.25-0.75i)]
	// 0 1
}
