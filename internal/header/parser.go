package header

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Terminator is the line prefix that closes the array declaration.
const Terminator = "};"

// maxLineSize admits array bodies emitted on a single line; the default
// bufio.Scanner limit of 64 KiB is too small for long samples.
const maxLineSize = 64 * 1024 * 1024

// state tracks where the scanner is relative to the array payload.
type state int

const (
	// scanning means the marker line has not been seen yet.
	scanning state = iota
	// collecting means the scanner is inside the array body.
	collecting
)

// ParseError reports a data line whose leading token is neither a
// hexadecimal nor a decimal literal.
type ParseError struct {
	Line  int
	Token string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: token %q is neither hexadecimal nor decimal", e.Line, e.Token)
}

// Parser extracts an integer array from a C/C++ header file produced by
// bin2header-style converters.
type Parser struct {
	marker string
	logger *logrus.Logger
}

// NewParser creates a parser that starts collecting data lines after the
// first line prefixed with marker.
func NewParser(marker string, logger *logrus.Logger) *Parser {
	return &Parser{
		marker: marker,
		logger: logger,
	}
}

// ReadFile reads and parses a header file into a sample sequence.
func (p *Parser) ReadFile(path string) ([]int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	defer file.Close()

	return p.Parse(file)
}

// Parse scans lines for the array payload. Lines before the marker are
// ignored; the terminator line and everything after it are excluded. A
// missing marker yields an empty sequence, not an error.
func (p *Parser) Parse(r io.Reader) ([]int, error) {
	var out []int
	current := scanning
	lineNo := 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		switch current {
		case scanning:
			if strings.HasPrefix(line, p.marker) {
				current = collecting
			}
		case collecting:
			if strings.HasPrefix(line, Terminator) {
				return out, nil
			}
			values, err := parseLine(line, lineNo)
			if err != nil {
				return nil, err
			}
			out = append(out, values...)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading input: %w", err)
	}

	if current == scanning {
		p.logger.WithField("marker", p.marker).Warn("Marker never matched, returning empty sequence")
	}
	return out, nil
}

// parseLine converts one comma-separated data line to integers. The first
// token decides the base for the whole line.
func parseLine(line string, lineNo int) ([]int, error) {
	line = strings.TrimSpace(line)
	tokens := strings.Split(line, ",")

	// A trailing comma before the newline leaves an empty last token.
	if tokens[len(tokens)-1] == "" {
		tokens = tokens[:len(tokens)-1]
	}
	// Blank lines inside the array body contribute nothing.
	if len(tokens) == 0 {
		return nil, nil
	}

	first := strings.TrimSpace(tokens[0])
	switch {
	case strings.HasPrefix(first, "0x"):
		return parseTokens(tokens, 16, lineNo)
	case first != "" && first[0] >= '0' && first[0] <= '9':
		return parseTokens(tokens, 10, lineNo)
	default:
		return nil, &ParseError{Line: lineNo, Token: first}
	}
}

// parseTokens parses every token of a line in the given base.
func parseTokens(tokens []string, base int, lineNo int) ([]int, error) {
	out := make([]int, 0, len(tokens))
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if base == 16 {
			token = strings.TrimPrefix(token, "0x")
		}
		v, err := strconv.ParseInt(token, base, 64)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Token: token}
		}
		out = append(out, int(v))
	}
	return out, nil
}
