package lotus

import "github.com/pkg/errors"

// maxTierWidth is the widest tier the chain reads. A wider tier would name a
// payload width of 2^65-3 bits or more.
const maxTierWidth = 64

// payloadCodec is what the tier chain needs from a magnitude type T: splitting
// a value into its payload and width, and moving payload bits through the bit
// I/O. Tier widths are always uint64 payloads; only the final payload uses T.
type payloadCodec[T any] interface {
	// split returns the payload width and the payload of v.
	split(v T) (width int, payload T, err error)
	// maxWidth is the widest payload a value of T can have.
	maxWidth() int
	// write writes payload in exactly width bits using w's TryXXX methods.
	write(w *Writer, payload T, width int)
	// read reads a width bits wide payload and returns the value it locates.
	read(r *Reader, width int) (T, error)
}

// tier is one entry of the chain.
type tier struct {
	width   int
	payload uint64
}

// encodeTiers encodes v under cfg:
//
//	[jumpstarter][tier T]...[tier 1][payload]
//
// Tier 1 holds the payload width, each further tier the width of the one
// below it, and the jumpstarter the width of tier T minus one.
func encodeTiers[T any](c payloadCodec[T], v T, cfg Config) ([]byte, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	width, payload, err := c.split(v)
	if err != nil {
		return nil, err
	}
	if limit := cfg.MaxWidth(); width > limit {
		return nil, errors.Wrapf(ErrValueTooLarge, "payload width %d, %v allows %d", width, cfg, limit)
	}

	chain := make([]tier, 0, cfg.Tiers)
	current := width
	for i := 0; i < cfg.Tiers; i++ {
		tw, tp := splitPayload(uint64(current))
		chain = append(chain, tier{width: tw, payload: tp})
		current = tw
	}
	j, err := jumpstarterField(current, cfg)
	if err != nil {
		return nil, err
	}

	w := NewWriter()
	w.TryWriteBits(j, uint8(cfg.JumpstarterBits))
	for i := len(chain) - 1; i >= 0; i-- {
		w.TryWriteBits(chain[i].payload, uint8(chain[i].width))
	}
	c.write(w, payload, width)
	if w.TryError != nil {
		return nil, w.TryError
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// jumpstarterField returns the jumpstarter value naming a topmost tier of the
// given width.
func jumpstarterField(topmost int, cfg Config) (uint64, error) {
	if topmost < 1 || topmost > 1<<uint(cfg.JumpstarterBits) {
		return 0, errors.Wrapf(ErrJumpstarterOverflow, "topmost width %d, %v", topmost, cfg)
	}
	return uint64(topmost - 1), nil
}

// decodeTiers decodes one value from the start of p, returning it with the
// number of bits it occupied. Bytes after those bits are not read.
func decodeTiers[T any](c payloadCodec[T], p []byte, cfg Config) (v T, n int, err error) {
	if err = cfg.Validate(); err != nil {
		return v, 0, err
	}
	limit := cfg.MaxWidth()
	r := NewReader(p)
	start := r.BitsConsumed()

	j, err := r.ReadBits(uint8(cfg.JumpstarterBits))
	if err != nil {
		return v, 0, errors.Wrap(err, "reading jumpstarter")
	}
	width := int(j) + 1
	if width > limit {
		return v, 0, errors.Wrapf(ErrValueTooLarge, "jumpstarter width %d, %v allows %d", width, cfg, limit)
	}

	for i := cfg.Tiers; i > 0; i-- {
		if width > maxTierWidth {
			return v, 0, errors.Wrapf(ErrValueTooLarge, "tier %d is %d bits wide", i, width)
		}
		tp, err := r.ReadBits(uint8(width))
		if err != nil {
			return v, 0, errors.Wrapf(err, "reading tier %d", i)
		}
		d, err := joinPayload(tp, width)
		if err != nil {
			return v, 0, errors.Wrapf(err, "tier %d", i)
		}
		if d == 0 {
			return v, 0, errors.Wrapf(ErrInvalidEncoding, "tier %d decodes to zero width", i)
		}
		if d > uint64(limit) {
			return v, 0, errors.Wrapf(ErrValueTooLarge, "tier %d decodes to width %d, %v allows %d", i, d, cfg, limit)
		}
		width = int(d)
	}

	if width > c.maxWidth() {
		return v, 0, errors.Wrapf(ErrValueTooLarge, "payload width %d", width)
	}
	if v, err = c.read(r, width); err != nil {
		return v, 0, errors.Wrap(err, "reading payload")
	}
	return v, r.BitsConsumed() - start, nil
}
