package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/tinysampler/hdr2wav/internal/config"
	"github.com/tinysampler/hdr2wav/internal/convert"
	"github.com/tinysampler/hdr2wav/internal/header"
	"github.com/tinysampler/hdr2wav/internal/plot"
	"github.com/tinysampler/hdr2wav/internal/wav"
)

var (
	marker      string
	cutCount    int
	ratio       int
	remap       bool
	printOut    bool
	plotOut     bool
	wavPath     string
	sampleRate  int
	headerPath  string
	declaration string
	sdccStyle   bool
	hexOut      bool
	debugMode   bool
	version     bool
)

func init() {
	flag.StringVar(&marker, "dec", "", "Declaration line prefix that starts the array (defaults to \"static const\")")
	flag.IntVar(&cutCount, "cut", 0, "Cut n samples from the end of the loaded array")
	flag.IntVar(&ratio, "r", 0, "Ratio of samplerate reduction")
	flag.IntVar(&ratio, "ratio", 0, "Ratio of samplerate reduction (same as -r)")
	flag.BoolVar(&remap, "t", false, "Convert the data into twos complement representation")
	flag.BoolVar(&printOut, "p", false, "Print the resulting data to the command line")
	flag.BoolVar(&plotOut, "plt", false, "Plot the resulting data on the terminal")
	flag.StringVar(&wavPath, "wb", "", "Write the result back to a wav file at the given path (requires -sr)")
	flag.IntVar(&sampleRate, "sr", 0, "Writeback samplerate")
	flag.StringVar(&headerPath, "wh", "", "Write the result back to a C header file at the given path")
	flag.StringVar(&declaration, "decl", "", "Array declaration used for header writeback")
	flag.BoolVar(&sdccStyle, "sdcc", false, "Brace-wrap every header writeback element for SDCC initializers")
	flag.BoolVar(&hexOut, "hex", false, "Emit hexadecimal literals on header writeback")
	flag.BoolVar(&debugMode, "d", false, "Debug mode")
	flag.BoolVar(&version, "version", false, "Display version information")
}

const VERSION = "1.0.0"

func main() {
	flag.Parse()

	// Display version if requested
	if version {
		fmt.Printf("hdr2wav version %s\n", VERSION)
		os.Exit(0)
	}

	// Validate the invocation before doing any work
	if err := validateArgs(flag.NArg(), wavPath, sampleRate, ratio, cutCount); err != nil {
		usageError(err.Error())
	}
	inputPath := flag.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	if debugMode {
		level = logrus.DebugLevel
	}
	logger.SetLevel(level)

	if marker == "" {
		marker = cfg.Marker
	}

	// Read the header file
	parser := header.NewParser(marker, logger)
	samples, err := parser.ReadFile(inputPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to read header file")
	}
	logger.WithField("samples", len(samples)).Debug("Header file read")

	// Apply the conversions
	pipeline := convert.NewPipeline(convert.Options{
		Cut:      cutCount,
		Ratio:    ratio,
		Remap:    remap,
		MaxValue: cfg.MaxValue(),
	}, logger)
	samples, err = pipeline.Run(samples)
	if err != nil {
		logger.WithError(err).Fatal("Conversion failed")
	}

	// Print the sample to the terminal
	if printOut {
		fmt.Printf("Processed sample data:\n %v \n Sample Length: %d\n", samples, len(samples))
	}

	// Write header
	if headerPath != "" {
		decl := declaration
		if decl == "" {
			decl = defaultDeclaration(marker)
		}
		style := header.StylePlain
		if sdccStyle {
			style = header.StyleSDCC
		}
		writer := header.NewWriter(header.WriterOptions{
			Declaration: decl,
			Style:       style,
			Hex:         hexOut,
		}, logger)
		if err := writer.WriteFile(headerPath, samples); err != nil {
			logger.WithError(err).Fatal("Header writeback failed")
		}
		logger.WithField("path", headerPath).Info("Header file written")
	}

	// Write wavefile
	// The wav sink expects unsigned amplitudes, so the remap is applied
	// once more before writing; it is its own inverse.
	if wavPath != "" {
		writer := wav.NewWriter(sampleRate, cfg.BitDepth, logger)
		if err := writer.WriteFile(wavPath, convert.Decode(samples, pipeline.MaxValue())); err != nil {
			logger.WithError(err).Fatal("WAV writeback failed")
		}
		logger.WithField("path", wavPath).Info("WAV file written")
	}

	// Plot the sample on the terminal
	if plotOut {
		if err := plot.Render(os.Stdout, samples); err != nil {
			logger.WithError(err).Fatal("Plot failed")
		}
	}
}

// validateArgs checks the invocation before any work happens.
func validateArgs(nArgs int, wavPath string, sampleRate, ratio, cutCount int) error {
	if nArgs != 1 {
		return errors.New("a single input path is required")
	}
	if wavPath != "" && sampleRate <= 0 {
		return errors.New("wav writeback requires a samplerate (-sr)")
	}
	if ratio < 0 {
		return fmt.Errorf("ratio must be positive, got %d", ratio)
	}
	if cutCount < 0 {
		return fmt.Errorf("cut count must not be negative, got %d", cutCount)
	}
	return nil
}

// defaultDeclaration derives the writeback declaration from the marker
// the array was read with, so emitted headers re-parse with the same
// marker.
func defaultDeclaration(marker string) string {
	return marker + " uint8_t sample_data[]"
}

func usageError(msg string) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
	printUsage()
	os.Exit(2)
}

func printUsage() {
	fmt.Println("Usage: hdr2wav [options] <path>")
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println("\nExamples:")
	fmt.Println("  hdr2wav -p kick.raw.h                               # Print the embedded sample array")
	fmt.Println("  hdr2wav -r 2 -t -p -plt kick.raw.h                  # Halve the samplerate, remap, print and plot")
	fmt.Println("  hdr2wav -r 2 -t -wb check.wav -sr 5512 kick.raw.h   # Write the result back as audio")
	fmt.Println("  hdr2wav -t -wh sample.h -sdcc -hex kick.raw.h       # Emit an SDCC-style header")
}
