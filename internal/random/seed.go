package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"log"
	"math"
	"strconv"
	"strings"
	"time"
)

// NewSeed generates a fresh seed using crypto/rand, falling back to the
// wall clock if the system source is unavailable.
func NewSeed() int32 {
	var b [4]byte
	if _, err := crand.Read(b[:]); err != nil {
		return int32(uint32(time.Now().UnixNano()))
	}
	return int32(binary.LittleEndian.Uint32(b[:]))
}

// ResolveSeed turns an optional external seed parameter into a seed.
// Integers of any width are truncated to 32 bits and finite decimals are
// truncated toward zero. Anything else yields a fresh seed; that case is
// logged and is not an error. The boolean reports whether raw was used.
func ResolveSeed(raw string, logger *log.Logger) (int32, bool) {
	raw = strings.TrimSpace(raw)
	if raw != "" {
		if seed, ok := parseSeed(raw); ok {
			return seed, true
		}
	}

	seed := NewSeed()
	if logger != nil {
		if raw == "" {
			logger.Printf("no seed supplied, using %d", seed)
		} else {
			logger.Printf("seed %q is not a finite number, using %d", raw, seed)
		}
	}
	return seed, false
}

func parseSeed(raw string) (int32, bool) {
	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return int32(v), true
	}
	if v, err := strconv.ParseUint(raw, 10, 64); err == nil {
		return int32(uint32(v)), true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	f = math.Trunc(f)
	if math.Abs(f) >= 1<<63 {
		return 0, false
	}
	return int32(int64(f)), true
}
