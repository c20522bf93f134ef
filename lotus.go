package lotus

import "github.com/pkg/errors"

// uint64Codec moves uint64 payloads, at most 64 bits wide.
type uint64Codec struct{}

func (uint64Codec) split(v uint64) (int, uint64, error) {
	w, p := splitPayload(v)
	return w, p, nil
}

func (uint64Codec) maxWidth() int {
	return 64
}

func (uint64Codec) write(w *Writer, payload uint64, width int) {
	w.TryWriteBits(payload, uint8(width))
}

func (uint64Codec) read(r *Reader, width int) (uint64, error) {
	p, err := r.ReadBits(uint8(width))
	if err != nil {
		return 0, err
	}
	return joinPayload(p, width)
}

// Encode encodes v under cfg. The result is deterministic: the same v and cfg
// always yield the same bytes. Bits after the encoding in the last byte are
// zero.
//
// Encode fails with ErrInvalidConfig for an invalid cfg, ErrValueTooLarge if
// no encoding of v exists under cfg and ErrJumpstarterOverflow if the topmost
// tier width cannot be named by the jumpstarter field.
func Encode(v uint64, cfg Config) ([]byte, error) {
	return encodeTiers[uint64](uint64Codec{}, v, cfg)
}

// Decode decodes a value encoded by Encode under the same cfg from the start
// of p and returns it with the number of bits it occupied. Trailing bytes are
// allowed and left unread, so concatenated encodings can be decoded by
// advancing (bits+7)/8 bytes at a time.
//
// Decode fails with ErrUnexpectedEOF if p ends early, ErrValueTooLarge if p
// names a width the configuration or uint64 cannot hold and
// ErrInvalidEncoding for a malformed p or an invalid cfg.
func Decode(p []byte, cfg Config) (v uint64, bits int, err error) {
	return decodeTiers[uint64](uint64Codec{}, p, cfg)
}

// EncodedBitLength returns the exact number of bits Encode uses for v under
// cfg, without the padding of the last byte.
func EncodedBitLength(v uint64, cfg Config) (int, error) {
	p, err := Encode(v, cfg)
	if err != nil {
		return 0, err
	}
	_, n, err := Decode(p, cfg)
	if err != nil {
		return 0, errors.Wrapf(err, "decoding %d", v)
	}
	return n, nil
}
