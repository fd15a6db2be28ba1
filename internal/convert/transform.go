package convert

import (
	"errors"
	"fmt"
)

// DefaultMaxValue is the amplitude bias threshold for 8-bit samples.
const DefaultMaxValue = 0x7F

var (
	// ErrInvalidRatio is returned when the decimation ratio is not positive.
	ErrInvalidRatio = errors.New("decimation ratio must be positive")
	// ErrInvalidCut is returned when the cut count is negative.
	ErrInvalidCut = errors.New("cut count must not be negative")
)

// Cut drops the last n samples. Cutting more samples than the sequence
// holds yields an empty sequence.
func Cut(samples []int, n int) ([]int, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCut, n)
	}
	if n >= len(samples) {
		return []int{}, nil
	}
	out := make([]int, len(samples)-n)
	copy(out, samples[:len(samples)-n])
	return out, nil
}

// Reduce downsamples by block averaging. Windows are delimited at index
// positions where index mod ratio == 0: the first window holds only the
// sample at index 0, every later window holds ratio samples and ends on
// the boundary index. Samples after the last boundary are dropped.
func Reduce(samples []int, ratio int) ([]int, error) {
	if ratio <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRatio, ratio)
	}

	out := make([]int, 0, len(samples)/ratio+1)
	var sum float64
	for i, s := range samples {
		sum += float64(s)
		if i%ratio == 0 {
			out = append(out, int(sum/float64(ratio)))
			sum = 0
		}
	}
	return out, nil
}

// Encode remaps unsigned samples onto the biased range the playback
// device's DAC expects: values above maxValue slide down past the bias
// point, values at or below it slide up.
//
//	v > maxValue  -> v - (maxValue + 1)
//	v <= maxValue -> v + (maxValue + 1)
//
// The remap is an involution on [0, 2*maxValue+1].
func Encode(samples []int, maxValue int) []int {
	out := make([]int, len(samples))
	for i, v := range samples {
		if v > maxValue {
			out[i] = v - (maxValue + 1)
		} else {
			out[i] = v + (maxValue + 1)
		}
	}
	return out
}

// Decode reverses Encode. The arithmetic is identical because the remap
// is self-inverse; keeping two names makes the inversion an explicit
// contract instead of a coincidence of symmetric arithmetic.
func Decode(samples []int, maxValue int) []int {
	return Encode(samples, maxValue)
}
