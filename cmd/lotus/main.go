// The lotus command encodes and decodes integers from the command line and
// reports encoded sizes for the preset configurations.
package main

import (
	"bufio"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/coldshalamov/lotus"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const usage = `
Encode decimal values read from stdin, one per line, printing hex:
    lotus [flags...] encode

Decode hex encodings read from stdin, one per line, printing value and bits:
    lotus [flags...] decode

Report average encoded size per configuration over sample workloads:
    lotus [flags...] sweep
`

var (
	configFlag = flag.String("config", lotus.J2D1.String(), "codec configuration, J<jumpstarter bits>D<tiers>")
	verbose    = flag.Bool("v", false, "enable debug logging")
)

func exitUsage() {
	flag.Usage()
	os.Exit(2)
}

func main() {
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		fmt.Fprintln(flag.CommandLine.Output())
		fmt.Fprintln(flag.CommandLine.Output(), "Flags:")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		exitUsage()
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg, err := lotus.ParseConfig(*configFlag)
	if err != nil {
		log.Fatal().Err(err).Str("config", *configFlag).Msg("bad -config")
	}
	log.Debug().Stringer("config", cfg).Int("maxWidth", cfg.MaxWidth()).Msg("configured")

	switch flag.Arg(0) {
	case "encode":
		err = encodeLines(os.Stdin, os.Stdout, cfg)
	case "decode":
		err = decodeLines(os.Stdin, os.Stdout, cfg)
	case "sweep":
		err = sweep(os.Stdout, sweepConfigs, defaultWorkloads())
	default:
		exitUsage()
	}
	if err != nil {
		log.Fatal().Err(err).Str("command", flag.Arg(0)).Msg("failed")
	}
}

// encodeLines encodes each non-empty line of in as a decimal uint64 and writes
// its hex encoding to out.
func encodeLines(in io.Reader, out io.Writer, cfg lotus.Config) error {
	return eachLine(in, func(n int, line string) error {
		v, err := strconv.ParseUint(line, 10, 64)
		if err != nil {
			return errors.Wrapf(err, "line %d", n)
		}
		enc, err := lotus.Encode(v, cfg)
		if err != nil {
			return errors.Wrapf(err, "line %d: encoding %d", n, v)
		}
		log.Debug().Uint64("value", v).Int("bytes", len(enc)).Msg("encoded")
		_, err = fmt.Fprintln(out, hex.EncodeToString(enc))
		return err
	})
}

// decodeLines decodes each non-empty line of in as a hex encoding and writes
// the value and the number of bits it used to out.
func decodeLines(in io.Reader, out io.Writer, cfg lotus.Config) error {
	return eachLine(in, func(n int, line string) error {
		p, err := hex.DecodeString(line)
		if err != nil {
			return errors.Wrapf(err, "line %d", n)
		}
		v, bits, err := lotus.Decode(p, cfg)
		if err != nil {
			return errors.Wrapf(err, "line %d: decoding %s", n, line)
		}
		if trailing := len(p) - (bits+7)/8; trailing > 0 {
			log.Warn().Int("line", n).Int("bytes", trailing).Msg("trailing bytes ignored")
		}
		_, err = fmt.Fprintln(out, v, bits)
		return err
	})
}

func eachLine(in io.Reader, f func(n int, line string) error) error {
	s := bufio.NewScanner(in)
	for n := 1; s.Scan(); n++ {
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		if err := f(n, line); err != nil {
			return err
		}
	}
	return s.Err()
}
