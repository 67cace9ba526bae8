package fingerprint

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/sonica-audio/engine/internal/engineerrors"
	"github.com/sonica-audio/engine/internal/hashing"
	"github.com/sonica-audio/engine/internal/peaks"
)

// Serialize writes the binary, versioned wire form exchanged with external
// stores: a header, the hash stream, then the peak set. Auxiliary features
// are not part of the wire form; they are recomputed or carried separately
// by the caller.
func (fp *Fingerprint) Serialize() ([]byte, error) {
	var buf bytes.Buffer

	header := []any{
		fp.IndexVersion,
		uint32(fp.Metadata.SampleRate),
		float32(fp.Metadata.DurationSeconds),
		uint16(fp.Metadata.WindowSize),
		uint16(fp.Metadata.HopSize),
		uint16(fp.Metadata.NumBins),
	}
	for _, field := range header {
		if err := binary.Write(&buf, binary.LittleEndian, field); err != nil {
			return nil, engineerrors.Wrap(engineerrors.InternalInvariantViolated, "failed writing fingerprint header", err)
		}
	}

	if err := binary.Write(&buf, binary.LittleEndian, uint32(len(fp.Hashes))); err != nil {
		return nil, engineerrors.Wrap(engineerrors.InternalInvariantViolated, "failed writing hash count", err)
	}
	for _, h := range fp.Hashes {
		if err := binary.Write(&buf, binary.LittleEndian, uint64(h.Hash)); err != nil {
			return nil, engineerrors.Wrap(engineerrors.InternalInvariantViolated, "failed writing hash", err)
		}
		if err := binary.Write(&buf, binary.LittleEndian, float32(h.AnchorTime)); err != nil {
			return nil, engineerrors.Wrap(engineerrors.InternalInvariantViolated, "failed writing anchor time", err)
		}
	}

	if err := binary.Write(&buf, binary.LittleEndian, uint32(len(fp.Peaks))); err != nil {
		return nil, engineerrors.Wrap(engineerrors.InternalInvariantViolated, "failed writing peak count", err)
	}
	for _, p := range fp.Peaks {
		freqHz := float32(fp.Metadata.binFrequency(p.Bin))
		timeS := float32(fp.Metadata.frameTime(p.Frame))
		fields := []any{freqHz, timeS, float32(p.Magnitude)}
		for _, f := range fields {
			if err := binary.Write(&buf, binary.LittleEndian, f); err != nil {
				return nil, engineerrors.Wrap(engineerrors.InternalInvariantViolated, "failed writing peak record", err)
			}
		}
	}

	return buf.Bytes(), nil
}

// Deserialize reads the wire form produced by Serialize. Unknown versions
// are rejected; readers must not guess at a layout they don't recognize.
func Deserialize(data []byte) (*Fingerprint, error) {
	r := bytes.NewReader(data)

	var version uint16
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, engineerrors.BadFormat("truncated fingerprint: missing version")
	}
	if version != hashing.Version {
		return nil, engineerrors.VersionMismatch(hashing.Version, version)
	}

	var sampleRate uint32
	var duration float32
	var windowSize, hopSize, numBins uint16
	for _, field := range []any{&sampleRate, &duration, &windowSize, &hopSize, &numBins} {
		if err := binary.Read(r, binary.LittleEndian, field); err != nil {
			return nil, engineerrors.BadFormat("truncated fingerprint header")
		}
	}

	var hashCount uint32
	if err := binary.Read(r, binary.LittleEndian, &hashCount); err != nil {
		return nil, engineerrors.BadFormat("truncated fingerprint: missing hash count")
	}
	hashes := make([]hashing.TimedHash, 0, hashCount)
	for i := uint32(0); i < hashCount; i++ {
		var h uint64
		var t float32
		if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
			return nil, truncatedHashErr(err)
		}
		if err := binary.Read(r, binary.LittleEndian, &t); err != nil {
			return nil, truncatedHashErr(err)
		}
		hashes = append(hashes, hashing.TimedHash{Hash: hashing.Hash(h), AnchorTime: float64(t)})
	}

	var peakCount uint32
	if err := binary.Read(r, binary.LittleEndian, &peakCount); err != nil {
		return nil, engineerrors.BadFormat("truncated fingerprint: missing peak count")
	}
	deserializedPeaks := make([]peaks.Peak, 0, peakCount)
	meta := Metadata{
		SampleRate:      int(sampleRate),
		DurationSeconds: float64(duration),
		WindowSize:      int(windowSize),
		HopSize:         int(hopSize),
		NumBins:         int(numBins),
	}
	for i := uint32(0); i < peakCount; i++ {
		var freqHz, timeS, magnitude float32
		for _, field := range []any{&freqHz, &timeS, &magnitude} {
			if err := binary.Read(r, binary.LittleEndian, field); err != nil {
				return nil, engineerrors.BadFormat("truncated fingerprint: peak record cut short")
			}
		}
		deserializedPeaks = append(deserializedPeaks, peaks.Peak{
			Bin:       meta.binIndex(float64(freqHz)),
			Frame:     meta.frameIndex(float64(timeS)),
			Magnitude: float64(magnitude),
		})
	}

	return &Fingerprint{
		Hashes:       hashes,
		Peaks:        deserializedPeaks,
		Metadata:     meta,
		IndexVersion: version,
	}, nil
}

func truncatedHashErr(cause error) error {
	if cause == io.EOF || cause == io.ErrUnexpectedEOF {
		return engineerrors.BadFormat("truncated fingerprint: hash record cut short")
	}
	return engineerrors.Wrap(engineerrors.InvalidAudioFormat, "failed reading hash record", cause)
}

func (m Metadata) binFrequency(bin int) float64 {
	return float64(bin) * float64(m.SampleRate) / float64(m.WindowSize)
}

func (m Metadata) frameTime(frame int) float64 {
	return float64(frame) * float64(m.HopSize) / float64(m.SampleRate)
}

func (m Metadata) binIndex(freqHz float64) int {
	if m.WindowSize == 0 || m.SampleRate == 0 {
		return 0
	}
	return int(freqHz*float64(m.WindowSize)/float64(m.SampleRate) + 0.5)
}

func (m Metadata) frameIndex(timeS float64) int {
	if m.HopSize == 0 || m.SampleRate == 0 {
		return 0
	}
	return int(timeS*float64(m.SampleRate)/float64(m.HopSize) + 0.5)
}
