package weighting_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-spl/dsp/filter/weighting"
)

func ExampleNew() {
	chain, err := weighting.New(48000)
	if err != nil {
		panic(err)
	}

	// The curve is defined as 0 dB at 1 kHz.
	fmt.Printf("1 kHz: %+.1f dB\n", chain.MagnitudeDB(1000, 48000))
	fmt.Printf("100 Hz: %+.1f dB\n", chain.MagnitudeDB(100, 48000))

	// Filter a block in place.
	buf := make([]float64, 480)
	for i := range buf {
		buf[i] = math.Sin(2 * math.Pi * 1000 * float64(i) / 48000)
	}
	chain.ProcessBlock(buf)

	// Output:
	// 1 kHz: +0.0 dB
	// 100 Hz: -19.1 dB
}
