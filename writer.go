/*

Writer definition and implementation.

*/

package lotus

import "github.com/pkg/errors"

// Writer accumulates bit runs, highest bits first, into an in-memory buffer.
// It must be closed in order to flush the last partial byte.
//
// Writer implements io.Writer, io.ByteWriter and io.Closer.
type Writer struct {
	buf    []byte
	cache  byte // unwritten bits are stored here
	bits   byte // number of unwritten bits in cache
	closed bool

	// TryError holds the first error of the TryXXX() methods.
	// Once set, further TryXXX() calls are no-ops.
	TryError error
}

// NewWriter returns a new, empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write implements io.Writer. The bytes do not need to be aligned to a byte
// boundary of the output.
func (w *Writer) Write(p []byte) (n int, err error) {
	if w.closed {
		return 0, errWriterClosed
	}
	// w.bits will be the same after writing 8 bits, so we don't need to update that.
	if w.bits == 0 {
		w.buf = append(w.buf, p...)
		return len(p), nil
	}

	for _, b := range p {
		w.writeUnalignedByte(b)
	}
	return len(p), nil
}

// WriteBits writes out the n lowest bits of r. Bits of r above n-1 are ignored.
func (w *Writer) WriteBits(r uint64, n uint8) error {
	if w.closed {
		return errWriterClosed
	}
	if n > 64 {
		return errors.Wrapf(ErrInvalidEncoding, "bit run of %d bits", n)
	}
	if n == 0 {
		return nil
	}
	if n < 64 {
		r &= 1<<n - 1
	}

	newbits := w.bits + n
	if newbits < 8 {
		// r fits into cache, nothing is flushed
		w.cache |= byte(r) << (8 - newbits)
		w.bits = newbits
		return nil
	}

	if newbits > 8 {
		// "Fill cache" and flush it, then whole bytes
		free := 8 - w.bits
		w.buf = append(w.buf, w.cache|byte(r>>(n-free)))
		n -= free
		for n >= 8 {
			n -= 8
			// No need to mask r, converting to byte will mask out higher bits
			w.buf = append(w.buf, byte(r>>n))
		}
		// Put remaining into cache
		if n > 0 {
			// Note: n < 8 (in case of n=8, 1<<n would overflow byte)
			w.cache, w.bits = (byte(r)&((1<<n)-1))<<(8-n), n
		} else {
			w.cache, w.bits = 0, 0
		}
		return nil
	}

	// cache will be filled exactly with the bits to be written
	w.buf = append(w.buf, w.cache|byte(r))
	w.cache, w.bits = 0, 0
	return nil
}

// WriteByte implements io.ByteWriter.
func (w *Writer) WriteByte(b byte) error {
	if w.closed {
		return errWriterClosed
	}
	if w.bits == 0 {
		w.buf = append(w.buf, b)
		return nil
	}
	w.writeUnalignedByte(b)
	return nil
}

// writeUnalignedByte writes 8 bits which are (may be) unaligned.
func (w *Writer) writeUnalignedByte(b byte) {
	// w.bits will be the same after writing 8 bits, so we don't need to update that.
	bits := w.bits
	w.buf = append(w.buf, w.cache|b>>bits)
	w.cache = (b & (1<<bits - 1)) << (8 - bits)
}

// Align aligns the bit stream to a byte boundary, so the next write starts a
// new byte. Cached bits are flushed in the high positions of that byte, the
// remaining low bits are zero.
// Returns the number of skipped (unset but still written) bits.
func (w *Writer) Align() (skipped byte) {
	if w.bits > 0 {
		w.buf = append(w.buf, w.cache)
		skipped = 8 - w.bits
		w.cache, w.bits = 0, 0
	}
	return
}

// Close implements io.Closer. It flushes the cached bits; the Writer accepts
// no more writes afterwards.
func (w *Writer) Close() error {
	w.Align()
	w.closed = true
	return nil
}

// Bytes returns the bytes written so far, not including cached bits.
// After Close it is the complete output, nil if nothing was written.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// BitsWritten returns the number of bits written, including cached bits.
func (w *Writer) BitsWritten() int {
	return len(w.buf)*8 + int(w.bits)
}

// TryWrite tries to write p. If there was a previous TryError, it does nothing.
func (w *Writer) TryWrite(p []byte) (n int) {
	if w.TryError == nil {
		n, w.TryError = w.Write(p)
	}
	return
}

// TryWriteBits tries to write out the n lowest bits of r.
// If there was a previous TryError, it does nothing.
func (w *Writer) TryWriteBits(r uint64, n uint8) {
	if w.TryError == nil {
		w.TryError = w.WriteBits(r, n)
	}
}
