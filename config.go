package lotus

import (
	"fmt"
	"math"
	"math/bits"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Limits of Config.JumpstarterBits.
const (
	MinJumpstarterBits = 1
	MaxJumpstarterBits = 8
)

// MaxWidthUnbounded is the saturated result of Config.MaxWidth, returned once
// the bound outgrows any width a machine integer can describe.
const MaxWidthUnbounded = math.MaxInt

// Config selects the header layout: the width of the jumpstarter field and the
// number of tiers between it and the payload.
//
// The zero Config is not valid.
type Config struct {
	JumpstarterBits int
	Tiers           int
}

// Preset configurations.
var (
	// J1D2 spends a single jumpstarter bit and two tiers.
	J1D2 = Config{JumpstarterBits: 1, Tiers: 2}
	// J2D1 is the general purpose preset, payloads up to 28 bits wide.
	J2D1 = Config{JumpstarterBits: 2, Tiers: 1}
	// J3D1 covers the whole uint64 range.
	J3D1 = Config{JumpstarterBits: 3, Tiers: 1}
)

// Validate reports whether c can be used to encode or decode.
func (c Config) Validate() error {
	if c.JumpstarterBits < MinJumpstarterBits || c.JumpstarterBits > MaxJumpstarterBits {
		return errors.Wrapf(ErrInvalidConfig, "jumpstarter bits %d not in [%d,%d]",
			c.JumpstarterBits, MinJumpstarterBits, MaxJumpstarterBits)
	}
	if c.Tiers < 1 {
		return errors.Wrapf(ErrInvalidConfig, "tiers %d, need at least 1", c.Tiers)
	}
	return nil
}

// MaxWidth returns the widest payload representable under c, or
// MaxWidthUnbounded if the bound saturates. It returns 0 for an invalid c.
//
// The jumpstarter can name widths up to 2^JumpstarterBits. A tier of width w
// decodes to at most end(w)-1 = 2^(w+1)-4, so each tier grows the bound
// doubly exponentially.
func (c Config) MaxWidth() int {
	if c.Validate() != nil {
		return 0
	}
	bound := 1 << uint(c.JumpstarterBits)
	for i := 0; i < c.Tiers; i++ {
		// 1<<(bound+1) must stay below the sign bit of int
		if bound+1 > bits.UintSize-2 {
			return MaxWidthUnbounded
		}
		bound = 1<<uint(bound+1) - 4
	}
	return bound
}

// String returns c in the J<jumpstarter bits>D<tiers> form accepted by
// ParseConfig.
func (c Config) String() string {
	return fmt.Sprintf("J%dD%d", c.JumpstarterBits, c.Tiers)
}

// ParseConfig parses a configuration name such as "J3D1" (case insensitive).
// The result is validated.
func ParseConfig(s string) (Config, error) {
	rest, ok := strings.CutPrefix(strings.ToUpper(strings.TrimSpace(s)), "J")
	if !ok {
		return Config{}, errors.Wrapf(ErrInvalidConfig, "parsing %q", s)
	}
	js, ts, ok := strings.Cut(rest, "D")
	if !ok {
		return Config{}, errors.Wrapf(ErrInvalidConfig, "parsing %q", s)
	}
	j, err := strconv.Atoi(js)
	if err != nil {
		return Config{}, errors.Wrapf(ErrInvalidConfig, "parsing %q: bad jumpstarter bits", s)
	}
	t, err := strconv.Atoi(ts)
	if err != nil {
		return Config{}, errors.Wrapf(ErrInvalidConfig, "parsing %q: bad tiers", s)
	}
	c := Config{JumpstarterBits: j, Tiers: t}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
