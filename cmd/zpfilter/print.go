package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-zplane/dsp/filter/stream"
)

func printCoefficients(w io.Writer, eng *stream.Engine) error {
	c := eng.Coefficients()

	if _, err := fmt.Fprintf(w, "b = [%s]\na = [%s]\n", joinComplex(c.B), joinComplex(c.A)); err != nil {
		return fmt.Errorf("failed to write coefficients: %w", err)
	}

	return nil
}

func joinComplex(c []complex128) string {
	parts := make([]string, len(c))
	for i, v := range c {
		if imag(v) == 0 {
			parts[i] = fmt.Sprintf("%.6g", real(v))
		} else {
			parts[i] = fmt.Sprintf("%.6g", v)
		}
	}

	return strings.Join(parts, " ")
}

func printResponse(w io.Writer, eng *stream.Engine, n int) error {
	r, err := eng.Response(n)
	if err != nil {
		return err
	}

	sectionPhase, err := eng.SectionPhase(n)
	if err != nil {
		return err
	}

	norm := r.Normalized()
	db := r.MagnitudeDB()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Freq [cyc/smp]\tMagnitude\tMagnitude [dB]\tPhase [rad]\tAll-pass phase [rad]\n"); err != nil {
		return fmt.Errorf("failed to write output header: %w", err)
	}

	if _, err := fmt.Fprintf(tw, "--------------\t---------\t--------------\t-----------\t--------------------\n"); err != nil {
		return fmt.Errorf("failed to write output header: %w", err)
	}

	for i := range norm {
		if _, err := fmt.Fprintf(tw, "%.4f\t%.6f\t%.2f\t%.4f\t%.4f\n",
			norm[i],
			r.Magnitude[i],
			db[i],
			r.Phase[i],
			sectionPhase[i],
		); err != nil {
			return fmt.Errorf("failed to write output row: %w", err)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}

	return nil
}
