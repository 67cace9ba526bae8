// Package audioio prepares PCM input for the pipeline: DecodeWAV turns an
// integer-sample WAV file into mono f64 samples (downmixing multi-channel
// input), and Resample converts between sample rates.
package audioio

import (
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// DecodeWAV reads a WAV file and returns mono f64 PCM in [-1, 1] plus its
// native sample rate. Multi-channel input is downmixed by averaging
// channels.
func DecodeWAV(r io.ReadSeeker) ([]float64, int, error) {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		return nil, 0, fmt.Errorf("invalid WAV file")
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read audio buffer: %w", err)
	}
	if buf == nil || len(buf.Data) == 0 {
		return nil, 0, fmt.Errorf("empty audio buffer")
	}

	sampleRate := int(decoder.SampleRate)
	mono := downmix(buf)
	return mono, sampleRate, nil
}

// downmix averages interleaved channel samples into a single mono stream,
// normalized from the buffer's integer bit depth to [-1, 1].
func downmix(buf *audio.IntBuffer) []float64 {
	channels := buf.Format.NumChannels
	if channels < 1 {
		channels = 1
	}

	maxAmplitude := float64(int(1) << (buf.SourceBitDepth - 1))
	if buf.SourceBitDepth == 0 {
		maxAmplitude = float64(1 << 15)
	}

	numFrames := len(buf.Data) / channels
	out := make([]float64, numFrames)
	for i := 0; i < numFrames; i++ {
		sum := 0.0
		for c := 0; c < channels; c++ {
			sum += float64(buf.Data[i*channels+c])
		}
		out[i] = (sum / float64(channels)) / maxAmplitude
	}
	return out
}
