/*

Reader definition and implementation.

*/

package lotus

import "github.com/pkg/errors"

// Reader consumes bit runs, highest bits first, from a byte slice.
// The slice is never modified.
//
// Reader implements io.Reader and io.ByteReader.
type Reader struct {
	in    []byte
	pos   int  // index of the next unread byte of in
	cache byte // unread bits are stored here
	bits  byte // number of unread bits in cache

	// TryError holds the first error of the TryXXX() methods.
	// Once set, further TryXXX() calls are no-ops.
	TryError error
}

// NewReader returns a new Reader reading from p.
func NewReader(p []byte) *Reader {
	return &Reader{in: p}
}

// nextByte consumes the next byte of the input.
func (r *Reader) nextByte() (byte, error) {
	if r.pos >= len(r.in) {
		return 0, ErrUnexpectedEOF
	}
	b := r.in[r.pos]
	r.pos++
	return b, nil
}

// fail drops the cache after a short read. Bytes consumed before the failure
// stay consumed.
func (r *Reader) fail(err error) error {
	r.cache, r.bits = 0, 0
	return err
}

// Read implements io.Reader. It returns ErrUnexpectedEOF if fewer than len(p)
// bytes remain.
func (r *Reader) Read(p []byte) (n int, err error) {
	// r.bits will be the same after reading 8 bits, so we don't need to update that.
	if r.bits == 0 {
		n = copy(p, r.in[r.pos:])
		r.pos += n
		if n < len(p) {
			return n, ErrUnexpectedEOF
		}
		return n, nil
	}

	for ; n < len(p); n++ {
		if p[n], err = r.readUnalignedByte(); err != nil {
			return
		}
	}
	return
}

// ReadBits reads n bits and returns them as the lowest n bits of u.
func (r *Reader) ReadBits(n uint8) (u uint64, err error) {
	if n > 64 {
		return 0, errors.Wrapf(ErrInvalidEncoding, "bit run of %d bits", n)
	}
	if n == 0 {
		return 0, nil
	}

	// Some optimization, frequent cases
	if n < r.bits {
		// cache has all needed bits, and there are some extra which will be left in cache
		shift := r.bits - n
		u = uint64(r.cache >> shift)
		r.cache &= 1<<shift - 1
		r.bits = shift
		return
	}

	if n > r.bits {
		// all cache bits needed, and it's not even enough so more will be read
		if r.bits > 0 {
			u = uint64(r.cache)
			n -= r.bits
		}
		// Read whole bytes
		for n >= 8 {
			b, err := r.nextByte()
			if err != nil {
				return 0, r.fail(err)
			}
			u = u<<8 + uint64(b)
			n -= 8
		}
		// Read last fraction, if any
		if n > 0 {
			if r.cache, err = r.nextByte(); err != nil {
				return 0, r.fail(err)
			}
			shift := 8 - n
			u = u<<n + uint64(r.cache>>shift)
			r.cache &= 1<<shift - 1
			r.bits = shift
		} else {
			r.bits = 0
		}
		return u, nil
	}

	// cache has exactly as many as needed
	r.bits = 0 // no need to clear cache, will be overridden on next read
	return uint64(r.cache), nil
}

// ReadByte implements io.ByteReader.
func (r *Reader) ReadByte() (byte, error) {
	if r.bits == 0 {
		return r.nextByte()
	}
	return r.readUnalignedByte()
}

// readUnalignedByte reads the next 8 bits which are (may be) unaligned and returns them as a byte.
func (r *Reader) readUnalignedByte() (b byte, err error) {
	// r.bits will be the same after reading 8 bits, so we don't need to update that.
	bits := r.bits
	b = r.cache << (8 - bits)
	r.cache, err = r.nextByte()
	if err != nil {
		return 0, r.fail(err)
	}
	b |= r.cache >> bits
	r.cache &= 1<<bits - 1
	return
}

// BitsConsumed returns the number of bits read so far.
func (r *Reader) BitsConsumed() int {
	return r.pos*8 - int(r.bits)
}

// BitsRemaining returns the number of bits left unread.
func (r *Reader) BitsRemaining() int {
	return (len(r.in)-r.pos)*8 + int(r.bits)
}

// TryRead tries to read into p. If there was a previous TryError, it does nothing.
func (r *Reader) TryRead(p []byte) (n int) {
	if r.TryError == nil {
		n, r.TryError = r.Read(p)
	}
	return
}

// TryReadBits tries to read n bits.
// If there was a previous TryError, it does nothing.
func (r *Reader) TryReadBits(n uint8) (u uint64) {
	if r.TryError == nil {
		u, r.TryError = r.ReadBits(n)
	}
	return
}
