// Command dsaparam generates, inspects and re-encodes DSA domain parameters.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

const (
	Version = "1.0.0"

	// Largest modulus size generation will attempt without complaint,
	// mirroring OPENSSL_DSA_MAX_MODULUS_BITS.
	MaxModulusBits = 10000
)

// Format selects the container encoding for parameter and key I/O.
type Format int

const (
	FormatPEM Format = iota
	FormatDER
)

func (f Format) String() string {
	if f == FormatDER {
		return "DER"
	}
	return "PEM"
}

func parseFormat(s string) (Format, error) {
	switch {
	case strings.EqualFold(s, "PEM"):
		return FormatPEM, nil
	case strings.EqualFold(s, "DER"):
		return FormatDER, nil
	}
	return 0, fmt.Errorf("invalid format %q (must be DER or PEM)", s)
}

// Options holds the parsed command line. Immutable once run starts.
type Options struct {
	InFile    string
	OutFile   string
	InFormat  Format
	OutFormat Format
	NumBits   int
	Text      bool
	CSource   bool
	NoOut     bool
	GenKey    bool
	Verbose   bool
	Engine    string
}

func main() {
	if err := newCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	opts := &Options{}
	var inform, outform string

	cmd := &cobra.Command{
		Use:   "dsaparam [flags] [numbits]",
		Short: "DSA parameter manipulation and generation",
		Long: `DSA parameter manipulation and generation.

With a numbits argument, fresh DSA domain parameters of that length are
generated; otherwise parameters are read from the input. The result can be
written as a DER or PEM container, printed as readable text, or emitted as
C source code. With --genkey a key pair is derived from the parameters and
the private key is written to the output as well.`,
		Example: `  # generate 2048-bit parameters into a PEM file
  dsaparam --out dsa2048.pem 2048

  # inspect an existing parameter file
  dsaparam --in dsa2048.pem --text --noout

  # generate parameters plus a key, DER encoded
  dsaparam --genkey --outform DER --out dsakey.der 1024`,
		Version:       Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if opts.InFormat, err = parseFormat(inform); err != nil {
				return err
			}
			if opts.OutFormat, err = parseFormat(outform); err != nil {
				return err
			}
			if len(args) == 1 {
				bits, err := strconv.Atoi(args[0])
				if err != nil || bits < 0 {
					return fmt.Errorf("invalid numbits %q (expected a non-negative integer)", args[0])
				}
				opts.NumBits = bits
			}
			return run(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.InFile, "in", "", "Input file (default stdin)")
	f.StringVar(&opts.OutFile, "out", "", "Output file (default stdout)")
	f.StringVar(&inform, "inform", "PEM", "Input format - DER or PEM")
	f.StringVar(&outform, "outform", "PEM", "Output format - DER or PEM")
	f.BoolVar(&opts.Text, "text", false, "Print as text")
	f.BoolVar(&opts.CSource, "C", false, "Output C code")
	f.BoolVar(&opts.NoOut, "noout", false, "No output")
	f.BoolVar(&opts.GenKey, "genkey", false, "Generate a DSA key")
	f.BoolVar(&opts.Verbose, "verbose", false, "Verbose output")
	f.StringVar(&opts.Engine, "engine", "", "Use engine e, possibly a hardware device")

	return cmd
}

func run(opts *Options, stdout, stderr io.Writer) error {
	if opts.Engine != "" {
		fmt.Fprintf(stderr, "Warning: engine %q ignored, no engine support\n", opts.Engine)
	}

	in, closeIn, err := openInput(opts.InFile)
	if err != nil {
		return err
	}
	defer closeIn()

	out, err := openOutput(opts.OutFile, opts.GenKey, opts.OutFormat, stdout, stderr)
	if err != nil {
		return err
	}
	defer out.Close()

	params, err := acquireParameters(opts, in, stderr)
	if err != nil {
		return err
	}

	if opts.Text {
		if err := printParametersText(out, params); err != nil {
			return fmt.Errorf("unable to print DSA parameters: %w", err)
		}
	}
	if opts.CSource {
		if err := writeCSource(stdout, params); err != nil {
			return fmt.Errorf("unable to write C code: %w", err)
		}
	}

	// A DER stream carries a single structure, so the key wins over the
	// parameters when both would be written.
	noout := opts.NoOut
	if opts.OutFormat == FormatDER && opts.GenKey {
		noout = true
	}
	if !noout {
		if err := writeParameters(out, opts.OutFormat, params); err != nil {
			return fmt.Errorf("unable to write DSA parameters: %w", err)
		}
	}

	if opts.GenKey {
		key, err := deriveKeypair(params)
		if err != nil {
			return fmt.Errorf("unable to generate key: %w", err)
		}
		if err := writePrivateKey(out, opts.OutFormat, key); err != nil {
			return fmt.Errorf("unable to write DSA key: %w", err)
		}
	}

	return out.Close()
}
