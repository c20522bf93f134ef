package lotus

import (
	"math/big"

	"github.com/pkg/errors"
)

// bigCodec moves arbitrary precision payloads. The payload is packed
// big-endian and zero padded on the high side to exactly width bits.
type bigCodec struct{}

var three = big.NewInt(3)

// split mirrors splitPayload: width is the bit length of v+3 minus one and the
// payload is v+3 with that top bit cleared.
func (bigCodec) split(v *big.Int) (int, *big.Int, error) {
	if v == nil {
		return 0, nil, errors.Wrap(ErrInvalidEncoding, "nil magnitude")
	}
	if v.Sign() < 0 {
		return 0, nil, errors.Wrapf(ErrInvalidEncoding, "negative magnitude %v", v)
	}
	n := new(big.Int).Add(v, three)
	w := n.BitLen() - 1
	return w, n.SetBit(n, w, 0), nil
}

func (bigCodec) maxWidth() int {
	return MaxWidthUnbounded
}

// payloadBytes returns the number of bytes holding a width bits wide payload
// and how many bits of the first one are used.
func payloadBytes(width int) (n int, lead uint8) {
	n = (width + 7) / 8
	return n, uint8(width - 8*(n-1))
}

func (bigCodec) write(w *Writer, payload *big.Int, width int) {
	n, lead := payloadBytes(width)
	buf := payload.FillBytes(make([]byte, n))
	w.TryWriteBits(uint64(buf[0]), lead)
	w.TryWrite(buf[1:])
}

func (bigCodec) read(r *Reader, width int) (*big.Int, error) {
	if width > r.BitsRemaining() {
		return nil, errors.Wrapf(ErrUnexpectedEOF, "payload of %d bits, %d left", width, r.BitsRemaining())
	}
	n, lead := payloadBytes(width)
	buf := make([]byte, n)
	buf[0] = byte(r.TryReadBits(lead))
	r.TryRead(buf[1:])
	if r.TryError != nil {
		return nil, r.TryError
	}

	// v = 2^width - 2 + payload - 1
	v := new(big.Int).SetBytes(buf)
	v.SetBit(v, width, 1)
	v.Sub(v, three)
	if v.Sign() < 0 {
		return nil, errors.Wrap(ErrInvalidEncoding, "negative magnitude")
	}
	return v, nil
}

// EncodeBig is Encode for magnitudes of any size. The header is identical to
// Encode's; for values fitting a uint64 the output is byte-for-byte the same.
// A nil or negative v fails with ErrInvalidEncoding.
func EncodeBig(v *big.Int, cfg Config) ([]byte, error) {
	return encodeTiers[*big.Int](bigCodec{}, v, cfg)
}

// DecodeBig is Decode for magnitudes of any size.
func DecodeBig(p []byte, cfg Config) (v *big.Int, bits int, err error) {
	return decodeTiers[*big.Int](bigCodec{}, p, cfg)
}

// EncodedBitLengthBig returns the exact number of bits EncodeBig uses for v
// under cfg.
func EncodedBitLengthBig(v *big.Int, cfg Config) (int, error) {
	p, err := EncodeBig(v, cfg)
	if err != nil {
		return 0, err
	}
	_, n, err := DecodeBig(p, cfg)
	if err != nil {
		return 0, errors.Wrapf(err, "decoding %v", v)
	}
	return n, nil
}
