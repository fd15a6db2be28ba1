// Package plot renders sample sequences as terminal amplitude graphs.
package plot

import (
	"fmt"
	"io"

	"github.com/guptarohit/asciigraph"
)

// Height is the plot height in terminal rows.
const Height = 16

// Render draws the sample sequence as an ASCII graph. An empty sequence
// produces a short notice instead of a graph.
func Render(out io.Writer, samples []int) error {
	if len(samples) == 0 {
		_, err := fmt.Fprintln(out, "Nothing to plot: empty sample sequence")
		return err
	}

	data := make([]float64, len(samples))
	for i, v := range samples {
		data[i] = float64(v)
	}

	graph := asciigraph.Plot(data,
		asciigraph.Height(Height),
		asciigraph.Caption(fmt.Sprintf("%d samples", len(samples))),
	)
	_, err := fmt.Fprintln(out, graph)
	return err
}
