package wav

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	gowav "github.com/youpy/go-wav"
)

const (
	// NumChannels is fixed to mono: playback targets are single-DAC devices.
	NumChannels = 1
	// BitsPerSample of the emitted container; narrower source samples are
	// shifted up to this width.
	BitsPerSample = 16
)

// Writer encodes a sample sequence as a mono 16-bit PCM WAV file so the
// processed sample can be compared with the original by ear.
type Writer struct {
	sampleRate int
	bits       int // source sample width, 8 or 16
	logger     *logrus.Logger
}

// NewWriter creates a WAV writer for the given writeback samplerate and
// source bit depth.
func NewWriter(sampleRate, bits int, logger *logrus.Logger) *Writer {
	return &Writer{
		sampleRate: sampleRate,
		bits:       bits,
		logger:     logger,
	}
}

// WriteFile writes the samples as a WAV file at path.
func (w *Writer) WriteFile(path string, samples []int) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	defer file.Close()

	return w.Write(file, samples)
}

// Write shifts each sample into the 16-bit range and writes the WAV
// stream. The shift wraps biased values past 0x7FFF into negative
// territory, which is how the unsigned-biased encoding lands on signed
// PCM.
func (w *Writer) Write(out io.Writer, samples []int) error {
	shift := uint(BitsPerSample - w.bits)

	wavSamples := make([]gowav.Sample, len(samples))
	for i, v := range samples {
		s := int16(v) << shift
		wavSamples[i] = gowav.Sample{Values: [2]int{int(s), int(s)}}
	}

	enc := gowav.NewWriter(out, uint32(len(samples)), NumChannels, uint32(w.sampleRate), BitsPerSample)
	if err := enc.WriteSamples(wavSamples); err != nil {
		return fmt.Errorf("error writing samples: %w", err)
	}

	w.logger.WithFields(logrus.Fields{
		"samples":    len(samples),
		"samplerate": w.sampleRate,
	}).Debug("WAV payload written")
	return nil
}
