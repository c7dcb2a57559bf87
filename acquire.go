package main

import (
	"crypto/dsa"
	"crypto/rand"
	"fmt"
	"io"
)

// paramSource is the resolved acquisition decision. Exactly one of the two
// variants applies per run: generate fresh parameters of bits length, or
// load them from in.
type paramSource struct {
	generate bool
	bits     int
	in       io.Reader
	format   Format
}

// resolveSource maps the command line onto a parameter source. Any positive
// bit count requests generation and the input is ignored.
func resolveSource(opts *Options, in io.Reader) paramSource {
	if opts.NumBits > 0 {
		return paramSource{generate: true, bits: opts.NumBits}
	}
	return paramSource{in: in, format: opts.InFormat}
}

func acquireParameters(opts *Options, in io.Reader, stderr io.Writer) (*dsa.Parameters, error) {
	src := resolveSource(opts, in)

	if src.generate {
		warnLargeModulus(src.bits, stderr)
		if opts.Verbose {
			fmt.Fprintf(stderr, "Generating DSA parameters, %d bit long prime\n", src.bits)
			fmt.Fprintf(stderr, "This could take some time\n")
		}
		params, err := generateParameters(src.bits, rand.Reader, newProgress(stderr, opts.Verbose))
		if err != nil {
			return nil, fmt.Errorf("DSA key generation failed: %w", err)
		}
		return params, nil
	}

	data, err := io.ReadAll(src.in)
	if err != nil {
		return nil, fmt.Errorf("unable to load DSA parameters: %w", err)
	}
	params, err := decodeParameters(data, src.format)
	if err != nil {
		return nil, fmt.Errorf("unable to load DSA parameters: %w", err)
	}
	return params, nil
}

// warnLargeModulus complains about modulus sizes past the supported maximum.
// Generation proceeds regardless.
func warnLargeModulus(bits int, stderr io.Writer) {
	if bits > MaxModulusBits {
		fmt.Fprintf(stderr, "Warning: It is not recommended to use more than %d bit for DSA keys.\n"+
			"         Your key size is %d! Larger key size may behave not as expected.\n",
			MaxModulusBits, bits)
	}
}

// GenStage identifies a milestone reported by the parameter generator.
type GenStage int

const (
	// StageCandidate fires when a fresh candidate has been derived.
	StageCandidate GenStage = iota
	// StageProbable fires when a candidate survives trial division.
	StageProbable
	// StagePrime fires when a candidate is accepted as prime.
	StagePrime
	// StageDone fires when a search phase completes.
	StageDone
)

// GenCallback receives generation progress. Returning false aborts the
// search; the command line reporter always continues.
type GenCallback func(GenStage) bool

// newProgress builds the progress callback writing one character per
// milestone to w, flushing after every character. With verbose off the
// callback reports nothing.
func newProgress(w io.Writer, verbose bool) GenCallback {
	if !verbose {
		return func(GenStage) bool { return true }
	}
	var buf [1]byte
	return func(stage GenStage) bool {
		switch stage {
		case StageCandidate:
			buf[0] = '.'
		case StageProbable:
			buf[0] = '+'
		case StagePrime:
			buf[0] = '*'
		case StageDone:
			buf[0] = '\n'
		default:
			buf[0] = '?'
		}
		w.Write(buf[:])
		if f, ok := w.(interface{ Flush() error }); ok {
			f.Flush()
		}
		return true
	}
}
