// Command zpfilter filters a signal through a filter given by its zeros and
// poles, optionally followed by all-pass phase correction sections.
//
// Usage:
//
//	zpfilter [flags]
//
// Roots are given as "re,im" (or just "re" for real roots). With -reflect
// every root gets a conjugate mirror. Without -in, only the transfer
// function and, with -response, its frequency response are printed.
//
// Examples:
//
//	zpfilter -pole 0.9,0.2 -reflect -response 9
//	zpfilter -zero -1 -pole 0.5 -in impulse.csv
//	zpfilter -b 1,1 -a 1,-0.5 -in voice.wav -out voice-lp.wav
//	zpfilter -pole 0.8,0.3 -reflect -allpass 0.6 -allpass -0.4 -response 17
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-zplane/dsp/core"
	"github.com/cwbudde/algo-zplane/dsp/filter/stream"
	"github.com/cwbudde/algo-zplane/dsp/filter/zplane"
	"github.com/cwbudde/algo-zplane/internal/log"
	"github.com/cwbudde/algo-zplane/internal/signalio"
)

type options struct {
	zeros, poles complexList
	sections     complexList
	b, a         floatList
	reflect      bool
	in, out      string
	column       int
	response     int
	debug        bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("zpfilter", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Var(&opts.zeros, "zero", "zero position re,im (repeatable)")
	fs.Var(&opts.poles, "pole", "pole position re,im (repeatable)")
	fs.Var(&opts.sections, "allpass", "all-pass section coefficient re,im (repeatable)")
	fs.Var(&opts.b, "b", "numerator coefficients, comma separated, highest degree first")
	fs.Var(&opts.a, "a", "denominator coefficients, comma separated, highest degree first")
	fs.BoolVar(&opts.reflect, "reflect", false, "add a conjugate mirror for every root")
	fs.StringVar(&opts.in, "in", "", "input signal (.csv, .wav or .mp3)")
	fs.IntVar(&opts.column, "column", -1, "read CSV input column-wise from this column, after a header row")
	fs.StringVar(&opts.out, "out", "", "output signal (.csv or .wav); stdout when empty")
	fs.IntVar(&opts.response, "response", 0, "print the frequency response on N points")
	fs.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: zpfilter [flags]\n\n")
		fmt.Fprintf(stderr, "Filters a signal through a pole-zero filter with optional all-pass sections.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  zpfilter -pole 0.9,0.2 -reflect -response 9\n")
		fmt.Fprintf(stderr, "  zpfilter -b 1,1 -a 1,-0.5 -in voice.wav -out voice-lp.wav\n")
	}

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	if (len(opts.b) > 0 || len(opts.a) > 0) && (len(opts.zeros) > 0 || len(opts.poles) > 0) {
		return options{}, fmt.Errorf("-b/-a cannot be combined with -zero/-pole")
	}

	return opts, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	logger := log.GetLogger()
	logger.SetOutput(stderr)

	if opts.debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	eng, err := buildEngine(opts, logger)
	if err != nil {
		return err
	}

	if err := printCoefficients(stdout, eng); err != nil {
		return err
	}

	if opts.response > 0 {
		if err := printResponse(stdout, eng, opts.response); err != nil {
			return err
		}
	}

	if opts.in == "" {
		return nil
	}

	return filterFile(stdout, eng, opts, logger)
}

func buildEngine(opts options, logger logrus.FieldLogger) (*stream.Engine, error) {
	set := zplane.NewRootSet()
	for _, z := range opts.zeros {
		set.Add(zplane.Zero, z, opts.reflect)
	}

	for _, p := range opts.poles {
		set.Add(zplane.Pole, p, opts.reflect)
	}

	eng := stream.New(set, core.WithLogger(logger))

	if len(opts.b) > 0 || len(opts.a) > 0 {
		b, a := opts.b.complex(), opts.a.complex()
		if len(b) == 0 {
			b = []complex128{1}
		}

		if len(a) == 0 {
			a = []complex128{1}
		}

		if err := eng.ImportCoefficients(b, a); err != nil {
			return nil, err
		}
	}

	if len(opts.sections) > 0 {
		if err := eng.SetSections(opts.sections); err != nil {
			return nil, err
		}
	}

	if !eng.IsStable() {
		logger.Warn("filter has poles on or outside the unit circle")
	}

	return eng, nil
}

func filterFile(stdout io.Writer, eng *stream.Engine, opts options, logger logrus.FieldLogger) error {
	var loadOpts []signalio.LoadOption
	if opts.column >= 0 {
		loadOpts = append(loadOpts, signalio.WithColumn(opts.column))
	}

	in, err := expandPath(opts.in)
	if err != nil {
		return err
	}

	sig, err := signalio.Load(in, loadOpts...)
	if err != nil {
		return err
	}

	eng.AttachSignal(sig.Samples)

	y, err := eng.ApplyAll()
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"session": eng.Session(),
		"samples": len(y),
	}).Debug("signal filtered")

	if opts.out == "" {
		return signalio.WriteCSV(stdout, y)
	}

	out, err := expandPath(opts.out)
	if err != nil {
		return err
	}

	return signalio.Save(out, signalio.Signal{Samples: y, SampleRate: sig.SampleRate})
}

// expandPath resolves a leading ~ and environment variables in a file flag.
func expandPath(path string) (string, error) {
	p, err := homedir.Expand(os.ExpandEnv(path))
	if err != nil {
		return "", fmt.Errorf("zpfilter: %s: %w", path, err)
	}

	return p, nil
}
