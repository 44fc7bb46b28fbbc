// Command filterinfo prints the biquad coefficients and response of the
// filter types used by the LFO filter.
//
// Usage:
//
//	filterinfo [flags] [filter-type ...]
//
// Without arguments it prints info for all filter types.
//
// Examples:
//
//	filterinfo Lowpass "LP 12dB"
//	filterinfo -cutoff 500 -q 4 bandpass
//	filterinfo -sr 96000 -all
//	filterinfo -list
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-lfofilter/dsp/filter/design"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("filterinfo", flag.ContinueOnError)
	fs.SetOutput(stderr)

	cutoff := fs.Float64("cutoff", 1000, "cutoff / centre frequency in Hz")
	q := fs.Float64("q", 0.707, "resonance (Q)")
	sampleRate := fs.Float64("sr", 44100, "sample rate in Hz")
	all := fs.Bool("all", false, "show all filter types")
	list := fs.Bool("list", false, "list available filter type names")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: filterinfo [flags] [filter-type ...]\n\n")
		fmt.Fprintf(stderr, "Prints biquad coefficients and response of the LFO filter types.\n")
		fmt.Fprintf(stderr, "Without arguments or with -all, prints info for all types.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  filterinfo Lowpass \"LP 12dB\"\n")
		fmt.Fprintf(stderr, "  filterinfo -cutoff 500 -q 4 bandpass\n")
		fmt.Fprintf(stderr, "  filterinfo -list\n")
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *list {
		return printList(stdout)
	}

	if *sampleRate <= 0 {
		return fmt.Errorf("sample rate must be > 0: %f", *sampleRate)
	}

	types := design.FilterTypes()
	if fs.NArg() > 0 && !*all {
		types = resolveTypes(fs.Args(), stderr)
	}
	if len(types) == 0 {
		return fmt.Errorf("no matching filter types")
	}

	return printAnalysis(stdout, types, *cutoff, *q, *sampleRate)
}

func printList(w io.Writer) error {
	for _, t := range design.FilterTypes() {
		if _, err := fmt.Fprintln(w, t); err != nil {
			return err
		}
	}
	return nil
}

func resolveTypes(names []string, stderr io.Writer) []design.FilterType {
	var result []design.FilterType
	for _, name := range names {
		t, err := design.ParseFilterType(name)
		if err != nil {
			fmt.Fprintf(stderr, "warning: unknown filter type %q (use -list to see available)\n", name)
			continue
		}
		result = append(result, t)
	}
	return result
}

func printAnalysis(w io.Writer, types []design.FilterType, cutoff, q, sampleRate float64) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Type\tb0\tb1\tb2\ta1\ta2\tDC [dB]\tFc [dB]\tNyq [dB]\tStable\n")
	fmt.Fprintf(tw, "----\t--\t--\t--\t--\t--\t-------\t-------\t--------\t------\n")

	nyquist := 0.49 * sampleRate
	for _, t := range types {
		c := design.Solve(t, cutoff, q, sampleRate)
		fmt.Fprintf(tw, "%s\t%.6f\t%.6f\t%.6f\t%.6f\t%.6f\t%s\t%s\t%s\t%t\n",
			t,
			c.B0, c.B1, c.B2, c.A1, c.A2,
			formatDB(c.MagnitudeDB(0, sampleRate)),
			formatDB(c.MagnitudeDB(cutoff, sampleRate)),
			formatDB(c.MagnitudeDB(nyquist, sampleRate)),
			c.Stable(),
		)
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}

func formatDB(v float64) string {
	if math.IsNaN(v) || v < -200 {
		return "-inf"
	}
	return fmt.Sprintf("%.2f", v)
}
