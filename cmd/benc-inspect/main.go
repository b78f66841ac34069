// benc-inspect decodes a benc buffer against a layout expression and prints
// its fields. It is meant for debugging producers: point it at a captured
// buffer, describe what the buffer should contain, and it reports either the
// decoded values or the exact offset where producer and layout disagree.
//
// Usage:
//
//	benc-inspect --layout 'u32, string, []?varint' capture.bin
//	printf '0c48656c6c6f20576f726c6421' | benc-inspect --hex -l string
//	benc-inspect --skip -l 'map[string]bytes, time' capture.bin
//
// With --skip, fields are skipped instead of decoded, so only offsets and
// lengths are printed and string content is not validated.
package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/oy3o/benc"
	"github.com/oy3o/benc/internal/layout"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	layout   string
	hexInput bool
	skip     bool
	format   string
	logLevel string
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var opts options

	flagSet := pflag.NewFlagSet("benc-inspect", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&opts.layout, "layout", "l", "", "layout expression describing the buffer (required)")
	flagSet.BoolVar(&opts.hexInput, "hex", false, "input is hex text instead of raw bytes")
	flagSet.BoolVar(&opts.skip, "skip", false, "skip fields instead of decoding them; print offsets only")
	flagSet.StringVar(&opts.format, "format", "yaml", "output format: yaml or text")
	flagSet.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	flagSet.Usage = func() {
		fmt.Fprintf(stderr, "Usage: benc-inspect [flags] [file]\n\nReads the buffer from file, or stdin when no file is given.\n\nFlags:\n")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		return err
	}

	logger, err := newLogger(stderr, opts.logLevel)
	if err != nil {
		return err
	}

	if opts.layout == "" {
		return errors.New("--layout is required")
	}
	if opts.format != "yaml" && opts.format != "text" {
		return fmt.Errorf("unknown --format %q (want yaml or text)", opts.format)
	}
	if flagSet.NArg() > 1 {
		return fmt.Errorf("expected at most one input file, got %d", flagSet.NArg())
	}

	node, err := layout.Parse(opts.layout)
	if err != nil {
		return err
	}
	logger.Debug("parsed layout", "layout", node.String(), "fields", len(layout.Fields(node)))

	data, source, err := readInput(flagSet.Arg(0), stdin, opts.hexInput)
	if err != nil {
		return err
	}
	logger.Info("read input", "source", source, "bytes", len(data))

	fields, err := inspect(data, node, !opts.skip)
	if err != nil {
		return err
	}

	if opts.format == "text" || opts.skip {
		return printText(stdout, fields, !opts.skip)
	}
	return printYAML(stdout, fields)
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l})), nil
}

func readInput(path string, stdin io.Reader, hexInput bool) ([]byte, string, error) {
	var data []byte
	var err error
	source := path
	if path == "" || path == "-" {
		source = "stdin"
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, source, fmt.Errorf("reading %s: %w", source, err)
	}
	if hexInput {
		data, err = hex.DecodeString(strings.Join(strings.Fields(string(data)), ""))
		if err != nil {
			return nil, source, fmt.Errorf("decoding hex from %s: %w", source, err)
		}
	}
	return data, source, nil
}

// inspect walks the whole buffer and rejects bytes left after the last field.
func inspect(data []byte, node layout.Node, decode bool) ([]layout.Field, error) {
	r := benc.NewBytesReader(data)
	var fields []layout.Field
	err := layout.Walk(r, node, decode, func(f layout.Field) error {
		fields = append(fields, f)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if r.Available() != 0 {
		return nil, fmt.Errorf("%w: %d bytes after offset %d", benc.ErrTrailingData, r.Available(), r.Len())
	}
	return fields, nil
}

func printText(w io.Writer, fields []layout.Field, withValues bool) error {
	for _, f := range fields {
		var err error
		if withValues {
			_, err = fmt.Fprintf(w, "%4d  +%-6d %-6d %-24s %v\n", f.Index, f.Offset, f.Length, f.Layout, f.Value)
		} else {
			_, err = fmt.Fprintf(w, "%4d  +%-6d %-6d %s\n", f.Index, f.Offset, f.Length, f.Layout)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

type yamlField struct {
	Layout string `yaml:"layout"`
	Offset int    `yaml:"offset"`
	Length int    `yaml:"length"`
	Value  any    `yaml:"value"`
}

// yamlValue rewrites decoded values into forms YAML can represent: byte slices
// as hex, complex numbers and instants as strings.
func yamlValue(v any) any {
	switch v := v.(type) {
	case []byte:
		return hex.EncodeToString(v)
	case complex64, complex128:
		return fmt.Sprint(v)
	case time.Time:
		return v.Format(time.RFC3339Nano)
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = yamlValue(e)
		}
		return out
	case map[any]any:
		out := make(map[any]any, len(v))
		for k, e := range v {
			out[yamlValue(k)] = yamlValue(e)
		}
		return out
	default:
		return v
	}
}

func printYAML(w io.Writer, fields []layout.Field) error {
	out := make([]yamlField, len(fields))
	for i, f := range fields {
		out[i] = yamlField{Layout: f.Layout, Offset: f.Offset, Length: f.Length, Value: yamlValue(f.Value)}
	}
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(out); err != nil {
		return err
	}
	return encoder.Close()
}
