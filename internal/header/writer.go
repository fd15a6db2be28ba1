package header

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

// Style selects how array elements are formatted on writeback.
type Style int

const (
	// StylePlain emits bare literals: 1, 2, 3
	StylePlain Style = iota
	// StyleSDCC wraps every element in braces for SDCC initializers: {1}, {2}
	StyleSDCC
)

// valuesPerLine keeps emitted headers readable and diff-friendly.
const valuesPerLine = 12

// WriterOptions control header writeback.
type WriterOptions struct {
	Declaration string // array declaration, e.g. "static const uint8_t sample_data[]"
	Style       Style
	Hex         bool // emit hexadecimal literals instead of decimal
}

// Writer emits a sample sequence as a C/C++ header file. Plain-style
// output re-parses through Parser when the declaration starts with the
// parser's marker.
type Writer struct {
	opts   WriterOptions
	logger *logrus.Logger
}

// NewWriter creates a header writer.
func NewWriter(opts WriterOptions, logger *logrus.Logger) *Writer {
	return &Writer{
		opts:   opts,
		logger: logger,
	}
}

// WriteFile writes the header to path.
func (w *Writer) WriteFile(path string, data []int) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	defer file.Close()

	return w.Write(file, data)
}

// Write emits the include guard, the length constant, the declaration,
// the payload lines and the terminator.
func (w *Writer) Write(out io.Writer, data []int) error {
	bw := bufio.NewWriter(out)

	bw.WriteString("#ifndef SAMPLE_H\n#define SAMPLE_H\n")
	fmt.Fprintf(bw, "const int SAMPLE_LEN = %d;\n", len(data))
	fmt.Fprintf(bw, "%s = {\n", w.opts.Declaration)

	for i, v := range data {
		if i%valuesPerLine == 0 {
			bw.WriteString("    ")
		}
		fmt.Fprintf(bw, "%s,", w.formatValue(v))
		if i%valuesPerLine == valuesPerLine-1 || i == len(data)-1 {
			bw.WriteString("\n")
		} else {
			bw.WriteString(" ")
		}
	}

	fmt.Fprintf(bw, "%s\n#endif\n", Terminator)

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}

	w.logger.WithFields(logrus.Fields{
		"samples":     len(data),
		"declaration": w.opts.Declaration,
	}).Debug("Header payload written")
	return nil
}

// formatValue renders a single array element in the configured style.
func (w *Writer) formatValue(v int) string {
	var literal string
	if w.opts.Hex {
		literal = fmt.Sprintf("0x%02x", v)
	} else {
		literal = strconv.Itoa(v)
	}
	if w.opts.Style == StyleSDCC {
		return "{" + literal + "}"
	}
	return literal
}
