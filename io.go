package main

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// outStream is the run-wide output sink. private records whether the stream
// was opened with owner-only access rights and therefore may carry key
// material.
type outStream struct {
	io.Writer
	closeFn func() error
	private bool
}

// Close is safe to call more than once.
func (o *outStream) Close() error {
	if o.closeFn == nil {
		return nil
	}
	fn := o.closeFn
	o.closeFn = nil
	return fn()
}

func openInput(path string) (io.Reader, func() error, error) {
	if path == "" {
		return os.Stdin, func() error { return nil }, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open input file: %w", err)
	}
	return f, f.Close, nil
}

// openOutput opens path for writing, or wraps stdout when path is empty.
// With private set the file is created owner read/write only.
func openOutput(path string, private bool, format Format, stdout, stderr io.Writer) (*outStream, error) {
	if path == "" {
		if format == FormatDER {
			if f, ok := stdout.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
				fmt.Fprintln(stderr, "Warning: writing DER output to a terminal")
			}
		}
		return &outStream{Writer: stdout, private: private}, nil
	}
	mode := os.FileMode(0644)
	if private {
		mode = 0600
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return nil, fmt.Errorf("cannot open output file: %w", err)
	}
	return &outStream{Writer: f, closeFn: f.Close, private: private}, nil
}
