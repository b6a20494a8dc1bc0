package main

import (
	"fmt"
	"strconv"
	"strings"
)

// complexList collects repeated "re,im" flag values.
type complexList []complex128

func (l *complexList) String() string {
	if l == nil {
		return ""
	}

	parts := make([]string, len(*l))
	for i, v := range *l {
		parts[i] = formatComplex(v)
	}

	return strings.Join(parts, " ")
}

func (l *complexList) Set(s string) error {
	v, err := parseComplex(s)
	if err != nil {
		return err
	}

	*l = append(*l, v)

	return nil
}

func parseComplex(s string) (complex128, error) {
	parts := strings.Split(s, ",")
	if len(parts) > 2 {
		return 0, fmt.Errorf("invalid root %q, want re,im", s)
	}

	re, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid real part in %q: %w", s, err)
	}

	var im float64
	if len(parts) == 2 {
		im, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid imaginary part in %q: %w", s, err)
		}
	}

	return complex(re, im), nil
}

func formatComplex(v complex128) string {
	if imag(v) == 0 {
		return strconv.FormatFloat(real(v), 'g', 6, 64)
	}

	return strconv.FormatFloat(real(v), 'g', 6, 64) + "," + strconv.FormatFloat(imag(v), 'g', 6, 64)
}

// floatList is a comma separated list of real coefficients.
type floatList []float64

func (l *floatList) String() string {
	if l == nil {
		return ""
	}

	parts := make([]string, len(*l))
	for i, v := range *l {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}

	return strings.Join(parts, ",")
}

func (l *floatList) Set(s string) error {
	var out floatList

	for _, f := range strings.Split(s, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return fmt.Errorf("invalid coefficient %q: %w", f, err)
		}

		out = append(out, v)
	}

	*l = out

	return nil
}

func (l floatList) complex() []complex128 {
	out := make([]complex128, len(l))
	for i, v := range l {
		out[i] = complex(v, 0)
	}

	return out
}
