package lotus

import (
	"math"
	"testing"

	"github.com/icza/mighty"
	"github.com/pkg/errors"
)

func TestSplitPayload(t *testing.T) {
	for _, test := range []struct {
		v       uint64
		width   int
		payload uint64
	}{
		{0, 1, 1},
		{1, 2, 0},
		{4, 2, 3},
		{5, 3, 0},
		{12, 3, 7},
		{13, 4, 0},
		{42, 5, 13},
		{60, 5, 31},
		{61, 6, 0},
		{math.MaxUint64 - 3, 63, math.MaxUint64 >> 1},
		{math.MaxUint64 - 2, 64, 0},
		{math.MaxUint64 - 1, 64, 1},
		{math.MaxUint64, 64, 2},
	} {
		width, payload := splitPayload(test.v)
		if width != test.width || payload != test.payload {
			t.Errorf("splitPayload(%d) = (%d, %d), want (%d, %d)", test.v, width, payload, test.width, test.payload)
		}
		v, err := joinPayload(payload, width)
		if err != nil || v != test.v {
			t.Errorf("joinPayload(%d, %d) = %d, %v, want %d", payload, width, v, err, test.v)
		}
	}
}

func TestBuckets(t *testing.T) {
	eq := mighty.Eq(t)
	for w := 1; w < 62; w++ {
		eq(bucketEnd(w)+1, bucketStart(w+1))
		eq(uint64(1)<<uint(w), bucketEnd(w)-bucketStart(w)+1)
	}
}

// Buckets are over m = v+1, so bucket w holds the values
// [bucketStart(w)-1, bucketEnd(w)-1].
func TestBucketBoundaries(t *testing.T) {
	check := func(v uint64, want int) {
		t.Helper()
		width, payload := splitPayload(v)
		if width != want {
			t.Errorf("splitPayload(%d) width = %d, want %d", v, width, want)
		}
		if got, err := joinPayload(payload, width); err != nil || got != v {
			t.Errorf("joinPayload(%d, %d) = %d, %v, want %d", payload, width, got, err, v)
		}
	}
	for w := 1; w <= 62; w++ {
		if w > 1 {
			// m = 0 starts bucket 1, no value maps there
			check(bucketStart(w)-1, w)
		}
		check(bucketEnd(w)-1, w)
		check(bucketEnd(w), w+1)
	}
}

func TestJoinPayloadErrors(t *testing.T) {
	for _, test := range []struct {
		payload uint64
		width   int
	}{
		{0, 0},
		{0, 65},
		{0, -1},
		{4, 2},
		{3, 64},
		{math.MaxUint64, 64},
		{0, 1}, // m = 0
	} {
		if v, err := joinPayload(test.payload, test.width); !errors.Is(err, ErrInvalidEncoding) {
			t.Errorf("joinPayload(%d, %d) = %d, %v, want ErrInvalidEncoding", test.payload, test.width, v, err)
		}
	}
}
