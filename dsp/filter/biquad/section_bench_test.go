package biquad

import "testing"

func BenchmarkSection_ProcessSample(b *testing.B) {
	s := NewSection(lowpassCoeffs())
	x := 0.5

	b.ReportAllocs()
	for b.Loop() {
		x = s.ProcessSample(x)
	}
}

func BenchmarkSection_ProcessBlock(b *testing.B) {
	s := NewSection(lowpassCoeffs())
	buf := testSignal(1024)

	b.ReportAllocs()
	b.SetBytes(int64(len(buf) * 8))
	for b.Loop() {
		s.ProcessBlock(buf)
	}
}

func BenchmarkChain_ProcessBlock3Sections(b *testing.B) {
	chain := NewChain([]Coefficients{lowpassCoeffs(), highpassCoeffs(), lowpassCoeffs()})
	buf := testSignal(1024)

	b.ReportAllocs()
	b.SetBytes(int64(len(buf) * 8))
	for b.Loop() {
		chain.ProcessBlock(buf)
	}
}
