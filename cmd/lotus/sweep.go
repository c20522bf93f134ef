package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"math/bits"
	"time"

	"github.com/coldshalamov/lotus"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

var sweepConfigs = []lotus.Config{lotus.J1D2, lotus.J2D1, {JumpstarterBits: 2, Tiers: 2}, lotus.J3D1}

type workload struct {
	name   string
	values []uint64
}

func stepRange(lo, hi, step uint64) []uint64 {
	var vs []uint64
	for v := lo; v <= hi; v += step {
		vs = append(vs, v)
	}
	return vs
}

// large64 returns n pseudo-random values spread over the whole uint64 range.
func large64(n int) []uint64 {
	vs := make([]uint64, n)
	state := uint64(0x9e3779b97f4a7c15)
	for i := range vs {
		state = state*6364136223846793005 + 1442695040888963407
		vs[i] = state
	}
	return vs
}

func defaultWorkloads() []workload {
	return []workload{
		{"small", stepRange(0, 255, 1)},
		{"medium", stepRange(0, 1_000_000, 10_000)},
		{"large32", stepRange(0, 4_000_000_000, 25_000_000)},
		{"large64", large64(20_000)},
	}
}

// sizeStats summarizes one workload under one configuration.
type sizeStats struct {
	avgBits  float64 // over encodable values
	coverage float64 // percent of values encodable
	leb128   float64 // average LEB128 bits, over all values
	elias    float64 // average Elias delta bits of v+1, over all values
	elapsed  time.Duration
}

// eliasDeltaLen returns the length in bits of the Elias delta code of v+1.
// With N = floor(log2(v+1)) and L = floor(log2(N+1)) it is N + 2L + 1.
func eliasDeltaLen(v uint64) int {
	n, carry := bits.Add64(v, 1, 0)
	top := bits.Len64(n) - 1
	if carry != 0 {
		top = 64
	}
	l := bits.Len64(uint64(top+1)) - 1
	return top + 2*l + 1
}

func measure(values []uint64, cfg lotus.Config) (sizeStats, error) {
	var s sizeStats
	if len(values) == 0 {
		return s, nil
	}
	total, supported, leb, elias := 0, 0, 0, 0
	var buf [binary.MaxVarintLen64]byte
	start := time.Now()
	for _, v := range values {
		n, err := lotus.EncodedBitLength(v, cfg)
		switch {
		case err == nil:
			total += n
			supported++
		case errors.Is(err, lotus.ErrValueTooLarge), errors.Is(err, lotus.ErrJumpstarterOverflow):
		default:
			return s, errors.Wrapf(err, "%v: value %d", cfg, v)
		}
	}
	s.elapsed = time.Since(start)
	for _, v := range values {
		leb += 8 * binary.PutUvarint(buf[:], v)
		elias += eliasDeltaLen(v)
	}
	if supported > 0 {
		s.avgBits = float64(total) / float64(supported)
	}
	s.coverage = 100 * float64(supported) / float64(len(values))
	s.leb128 = float64(leb) / float64(len(values))
	s.elias = float64(elias) / float64(len(values))
	return s, nil
}

// sweep writes a markdown table of sizes for every workload and config.
// Workloads are measured concurrently.
func sweep(out io.Writer, cfgs []lotus.Config, workloads []workload) error {
	results := make([][]sizeStats, len(workloads))
	var g errgroup.Group
	for i, w := range workloads {
		i, w := i, w
		results[i] = make([]sizeStats, len(cfgs))
		g.Go(func() error {
			for j, cfg := range cfgs {
				s, err := measure(w.values, cfg)
				if err != nil {
					return errors.Wrapf(err, "workload %s", w.name)
				}
				results[i][j] = s
				log.Debug().Str("workload", w.name).Stringer("config", cfg).Dur("elapsed", s.elapsed).Msg("encoded and decoded")
			}
			log.Debug().Str("workload", w.name).Int("values", len(w.values)).Msg("measured")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(out, "| workload | config | avg bits/value | coverage | leb128 bits/value | elias delta bits/value |"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(out, "|---|---|---|---|---|---|"); err != nil {
		return err
	}
	for i, w := range workloads {
		for j, cfg := range cfgs {
			s := results[i][j]
			if _, err := fmt.Fprintf(out, "| %s | %v | %.3f | %.1f%% | %.3f | %.3f |\n", w.name, cfg, s.avgBits, s.coverage, s.leb128, s.elias); err != nil {
				return err
			}
		}
	}
	return nil
}
