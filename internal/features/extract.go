package features

import "github.com/sonica-audio/engine/internal/spectrogram"

// Extract computes the full auxiliary Set from a fine-grained spectrogram
// (spec.md §4.2 recommends W=2048, H=256 for this path, versus W=4096,
// H=2048 for hash fingerprinting).
func Extract(spec *spectrogram.Spectrogram) Set {
	mfcc := MFCC(spec, NumMelFilters, NumCoeffs)
	chroma := Chroma(spec)
	onset := OnsetEnvelope(spec, OnsetLowHz, OnsetHighHz)
	tempo := EstimateTempo(onset, spec.SampleRate, spec.HopSize)
	rhythm := RhythmPattern(onset, tempo, spec.SampleRate, spec.HopSize)

	return Set{
		MFCC:       mfcc,
		Chroma:     chroma,
		Tempo:      tempo,
		Rhythm:     rhythm,
		FrameCount: spec.NumFrames(),
	}
}
