package lotus

import (
	"bytes"
	"testing"

	"github.com/icza/mighty"
	"github.com/pkg/errors"
)

func TestReader(t *testing.T) {
	data := []byte{3, 255, 0xcc, 0x1a, 0xbc, 0xde, 0x80, 0x01, 0x02, 0xf8, 0x08, 0xf0}

	r := NewReader(data)
	eq, expEq := mighty.EqExpEq(t)

	eq(0, r.BitsConsumed())

	expEq(byte(3))(r.ReadByte())
	eq(8, r.BitsConsumed())

	expEq(uint64(255))(r.ReadBits(8))
	eq(16, r.BitsConsumed())

	expEq(uint64(0xc))(r.ReadBits(4))
	eq(20, r.BitsConsumed())

	expEq(uint64(0xc1))(r.ReadBits(8))
	eq(28, r.BitsConsumed())

	expEq(uint64(0xabcde))(r.ReadBits(20))
	eq(48, r.BitsConsumed())

	expEq(uint64(2))(r.ReadBits(2))
	expEq(uint64(0))(r.ReadBits(6))
	eq(56, r.BitsConsumed())

	s := make([]byte, 2)
	expEq(2)(r.Read(s))
	eq(72, r.BitsConsumed())
	eq(true, bytes.Equal(s, []byte{0x01, 0x02}))

	expEq(uint64(0xf))(r.ReadBits(4))
	eq(76, r.BitsConsumed())

	expEq(2)(r.Read(s))
	eq(92, r.BitsConsumed())
	eq(true, bytes.Equal(s, []byte{0x80, 0x8f}))

	eq(4, r.BitsRemaining())
	expEq(uint64(0))(r.ReadBits(4))
	eq(0, r.BitsRemaining())
	eq(96, r.BitsConsumed())
}

func TestReaderTry(t *testing.T) {
	data := []byte{3, 255, 0xcc, 0x1a, 0xbc, 0xde, 0x80, 0x01, 0x02, 0xf8, 0x08, 0xf0}

	r := NewReader(data)
	eq := mighty.Eq(t)

	eq(uint64(3), r.TryReadBits(8))
	eq(uint64(255), r.TryReadBits(8))
	eq(uint64(0xc), r.TryReadBits(4))
	eq(uint64(0xc1), r.TryReadBits(8))
	eq(uint64(0xabcde), r.TryReadBits(20))
	eq(uint64(0x80), r.TryReadBits(8))

	s := make([]byte, 2)
	eq(2, r.TryRead(s))
	eq(true, bytes.Equal(s, []byte{0x01, 0x02}))
	eq(nil, r.TryError)

	// Runs past the end: the error sticks, later reads are no-ops.
	eq(uint64(0), r.TryReadBits(40))
	eq(true, errors.Is(r.TryError, ErrUnexpectedEOF))
	eq(uint64(0), r.TryReadBits(1))
	eq(0, r.TryRead(s))
	eq(true, errors.Is(r.TryError, ErrUnexpectedEOF))
}

func TestReaderEOF(t *testing.T) {
	eq := mighty.Eq(t)

	r := NewReader(nil)
	_, err := r.ReadBits(3)
	eq(true, errors.Is(err, ErrUnexpectedEOF))
	eq(0, r.BitsConsumed())

	// Bytes consumed before the failure stay consumed.
	r = NewReader([]byte{0xff})
	u, err := r.ReadBits(4)
	eq(uint64(0xf), u, err)
	_, err = r.ReadBits(12)
	eq(true, errors.Is(err, ErrUnexpectedEOF))
	eq(8, r.BitsConsumed())

	r = NewReader([]byte{0xff, 0x01})
	u, err = r.ReadBits(1)
	eq(uint64(1), u, err)
	s := make([]byte, 2)
	n, err := r.Read(s)
	eq(1, n)
	eq(true, errors.Is(err, ErrUnexpectedEOF))

	r = NewReader([]byte{0x01})
	n, err = r.Read(s)
	eq(1, n)
	eq(true, errors.Is(err, ErrUnexpectedEOF))
}

func TestReaderZeroAndWideRuns(t *testing.T) {
	eq, expEq := mighty.EqExpEq(t)

	r := NewReader([]byte{0xaa})
	expEq(uint64(0))(r.ReadBits(0))
	eq(0, r.BitsConsumed())

	_, err := r.ReadBits(65)
	eq(true, errors.Is(err, ErrInvalidEncoding))

	r = NewReader([]byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef, 0xff})
	expEq(uint64(0))(r.ReadBits(4))
	expEq(uint64(0x123456789abcde))(r.ReadBits(56))
	expEq(uint64(0xfff))(r.ReadBits(12))
}
