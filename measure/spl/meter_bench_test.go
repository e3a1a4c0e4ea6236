package spl

import (
	"math"
	"testing"
)

func benchBlock32(frames, channels int) []float32 {
	block := make([]float32, frames*channels)
	for i := range block {
		block[i] = float32(math.Sin(float64(i) / 13))
	}

	return block
}

func BenchmarkMeter_Raw(b *testing.B) {
	m := NewMeter(WithSampleRate(48000), WithChannels(1))
	block := benchBlock32(4096, 1)

	b.SetBytes(int64(len(block) * 4))
	for b.Loop() {
		m.ProcessFloat32(block)
	}
}

func BenchmarkMeter_Weighted(b *testing.B) {
	m := NewMeter(WithSampleRate(48000), WithChannels(1), WithAWeighting(true))
	block := benchBlock32(4096, 1)

	b.SetBytes(int64(len(block) * 4))
	for b.Loop() {
		m.ProcessFloat32(block)
	}
}

func BenchmarkMeter_WeightedStereo(b *testing.B) {
	m := NewMeter(WithSampleRate(48000), WithChannels(2), WithAWeighting(true))
	block := benchBlock32(4096, 2)

	b.SetBytes(int64(len(block) * 4))
	for b.Loop() {
		m.ProcessFloat32(block)
	}
}
