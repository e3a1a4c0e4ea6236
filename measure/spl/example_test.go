package spl_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-spl/measure/spl"
)

func ExampleMeter() {
	m := spl.NewMeter(spl.WithSampleRate(48000), spl.WithChannels(1))

	block := make([]float64, 4800)
	for i := range block {
		block[i] = math.Sin(2 * math.Pi * 1000 * float64(i) / 48000)
	}

	fmt.Printf("%.1f dBFS\n", m.Process(block))
	// Output:
	// -3.0 dBFS
}

func ExampleSmoother() {
	s := spl.NewSmoother(0.3)

	s.Update(60)
	s.Update(70)

	fmt.Printf("%.1f dB\n", s.Value())
	// Output:
	// 63.0 dB
}
