package lotus

import (
	"math/bits"

	"github.com/pkg/errors"
)

// Payloads are located in buckets over m = v+1. Bucket w holds
// [bucketStart(w), bucketEnd(w)], exactly 2^w values, and is adjacent to
// buckets w-1 and w+1. Both helpers are valid for w in [1,62].

func bucketStart(w int) uint64 {
	return 1<<uint(w) - 2
}

func bucketEnd(w int) uint64 {
	return 1<<uint(w+1) - 3
}

// splitPayload returns the smallest width whose bucket holds v+1 and the
// offset of v+1 within that bucket, which fits in width bits.
//
// v+1 <= bucketEnd(w) is v+3 < 2^(w+1), so the width is one less than the bit
// length of v+3. The sum is taken with carry so that the top of the uint64
// range lands in bucket 64.
func splitPayload(v uint64) (width int, payload uint64) {
	n, carry := bits.Add64(v, 3, 0)
	if carry != 0 {
		// v+3-2^64
		return 64, n
	}
	width = bits.Len64(n) - 1
	return width, n - 1<<uint(width)
}

// joinPayload is the inverse of splitPayload.
func joinPayload(payload uint64, width int) (uint64, error) {
	switch {
	case width < 1 || width > 64:
		return 0, errors.Wrapf(ErrInvalidEncoding, "payload width %d", width)
	case width == 64:
		// v = payload + 2^64 - 3
		if payload > 2 {
			return 0, errors.Wrapf(ErrInvalidEncoding, "payload %d overflows uint64", payload)
		}
		return payload - 3, nil
	case payload>>uint(width) != 0:
		return 0, errors.Wrapf(ErrInvalidEncoding, "payload %#x wider than %d bits", payload, width)
	}
	m := bucketStart(width) + payload
	if m == 0 {
		return 0, errors.Wrap(ErrInvalidEncoding, "negative magnitude")
	}
	return m - 1, nil
}
