package transport

import (
	crand "crypto/rand"
	"encoding/binary"
	mrand "math/rand"
	"time"

	"github.com/ystepanoff/bpskbeacon/protocol"
)

// JitterFunc returns the extra delay, in ticks, added to a frame spacing.
// Values must lie in [0, protocol.JitterSpan).
type JitterFunc func() uint16

// jitterSeed returns a random seed so that beacons sharing a channel do not
// run the same jitter sequence. If crypto/rand fails, falls back to time.
func jitterSeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err == nil {
		return int64(binary.LittleEndian.Uint64(b[:]))
	}
	return time.Now().UnixNano()
}

// NewRandomJitter returns a pseudo-random jitter source.
func NewRandomJitter() JitterFunc {
	rng := mrand.New(mrand.NewSource(jitterSeed()))
	return func() uint16 {
		return uint16(rng.Intn(protocol.JitterSpan))
	}
}

// FixedJitter always returns j, clamped to the jitter span.
func FixedJitter(j uint16) JitterFunc {
	if j >= protocol.JitterSpan {
		j = protocol.JitterSpan - 1
	}
	return func() uint16 { return j }
}
