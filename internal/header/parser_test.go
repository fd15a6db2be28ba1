package header

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestParse_DecimalRoundTrip(t *testing.T) {
	input := strings.Join([]string{
		"#ifndef SAMPLE_H",
		"#define SAMPLE_H",
		"static const uint8_t sample_data[] = {",
		"    128, 131, 127, 64,",
		"    3, 255, 0,",
		"};",
		"#endif",
	}, "\n")

	parser := NewParser("static const", newTestLogger())
	got, err := parser.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := []int{128, 131, 127, 64, 3, 255, 0}
	assertSamples(t, got, want)
}

func TestParse_HexMatchesDecimal(t *testing.T) {
	hexInput := strings.Join([]string{
		"static const uint8_t sample_data[] = {",
		"    0x80, 0x83, 0x7f,",
		"    0x03, 0xff,",
		"};",
	}, "\n")
	decInput := strings.Join([]string{
		"static const uint8_t sample_data[] = {",
		"    128, 131, 127,",
		"    3, 255,",
		"};",
	}, "\n")

	parser := NewParser("static const", newTestLogger())

	fromHex, err := parser.Parse(strings.NewReader(hexInput))
	if err != nil {
		t.Fatalf("Parse(hex) error = %v", err)
	}
	fromDec, err := parser.Parse(strings.NewReader(decInput))
	if err != nil {
		t.Fatalf("Parse(dec) error = %v", err)
	}

	assertSamples(t, fromHex, fromDec)
}

func TestParse_NoTrailingComma(t *testing.T) {
	input := "static const x[] = {\n1, 2, 3\n};\n"

	parser := NewParser("static const", newTestLogger())
	got, err := parser.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	assertSamples(t, got, []int{1, 2, 3})
}

func TestParse_BlankLineInBody(t *testing.T) {
	input := "static const x[] = {\n1, 2,\n\n3,\n};\n"

	parser := NewParser("static const", newTestLogger())
	got, err := parser.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	assertSamples(t, got, []int{1, 2, 3})
}

func TestParse_MarkerNeverMatched(t *testing.T) {
	input := "int unrelated = 5;\n// no array here\n"

	parser := NewParser("static const", newTestLogger())
	got, err := parser.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Parse() = %v, want empty sequence", got)
	}
}

func TestParse_StopsAtTerminator(t *testing.T) {
	input := strings.Join([]string{
		"static const x[] = {",
		"1, 2,",
		"};",
		"3, 4,",
	}, "\n")

	parser := NewParser("static const", newTestLogger())
	got, err := parser.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	assertSamples(t, got, []int{1, 2})
}

func TestParse_MalformedLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"non-numeric token", "static const x[] = {\nfoo, 1, 2,\n};\n"},
		{"garbage in numeric line", "static const x[] = {\n1, bar, 2,\n};\n"},
		{"negative literal", "static const x[] = {\n-1, 2,\n};\n"},
	}

	parser := NewParser("static const", newTestLogger())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("Parse() expected error, got nil")
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("Parse() error = %v, want *ParseError", err)
			}
			if parseErr.Line != 2 {
				t.Errorf("ParseError.Line = %d, want 2", parseErr.Line)
			}
		})
	}
}

func TestParse_SingleLongLine(t *testing.T) {
	// The whole array body on one line, well past bufio.Scanner's
	// default 64 KiB token limit.
	const count = 40000
	var sb strings.Builder
	sb.WriteString("static const x[] = {\n")
	for i := 0; i < count; i++ {
		sb.WriteString("131, ")
	}
	sb.WriteString("\n};\n")

	parser := NewParser("static const", newTestLogger())
	got, err := parser.Parse(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(got) != count {
		t.Fatalf("parsed %d samples, want %d", len(got), count)
	}
	if got[0] != 131 || got[count-1] != 131 {
		t.Errorf("unexpected sample values: first=%d last=%d", got[0], got[count-1])
	}
}

func TestParse_CustomMarker(t *testing.T) {
	input := "__code const uint8_t kick[] = {\n1, 2,\n};\n"

	parser := NewParser("__code const", newTestLogger())
	got, err := parser.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	assertSamples(t, got, []int{1, 2})
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.h")
	content := "static const x[] = {\n0x01, 0x02,\n};\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	parser := NewParser("static const", newTestLogger())
	got, err := parser.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	assertSamples(t, got, []int{1, 2})
}

func TestReadFile_NotFound(t *testing.T) {
	parser := NewParser("static const", newTestLogger())
	_, err := parser.ReadFile(filepath.Join(t.TempDir(), "missing.h"))
	if err == nil {
		t.Fatal("ReadFile() expected error, got nil")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ReadFile() error = %v, want os.ErrNotExist", err)
	}
}

func assertSamples(t *testing.T, got, want []int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d samples %v, want %d samples %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}
