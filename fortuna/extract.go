package fortuna

import (
	"bytes"
	"encoding/binary"
	"math"
)

// Bytes returns n pseudo-random bytes. Negative n is treated as its
// magnitude.
func (gen *Generator) Bytes(n int) []byte {
	if n < 0 {
		n = -n
	}
	return gen.PseudoRandomData(uint(n))
}

// Number returns a uniformly distributed number in [0, max]. Uniformity is
// achieved by rejection sampling, there is no modulo bias.
func (gen *Generator) Number(max uint64) uint64 {
	if max == math.MaxUint64 {
		return binary.LittleEndian.Uint64(gen.PseudoRandomData(8))
	}

	n := max + 1
	min := -n % n // 2^64 mod n
	for {
		candidate := binary.LittleEndian.Uint64(gen.PseudoRandomData(8))
		if candidate >= min {
			return candidate % n
		}
	}
}

// Int63 returns a positive random integer, uniformly distributed on the range
// 0, 1, ..., 2^63-1. Together with Seed() this makes the Generator usable as
// a rand.Source.
func (gen *Generator) Int63() int64 {
	b := gen.PseudoRandomData(8)
	b[0] &= 0x7f
	return int64(binary.BigEndian.Uint64(b))
}

// Uint64 returns a random 64 bit integer. This makes the Generator usable as
// a rand.Source64.
func (gen *Generator) Uint64() uint64 {
	return binary.LittleEndian.Uint64(gen.PseudoRandomData(8))
}

// Values draws count values of the fixed-size type T, reinterpreting raw
// generator output as little endian encoded values. The full natural range of
// the type is used. Types without a fixed memory layout (such as strings,
// slices or structs containing them) yield an empty result. Negative counts
// are treated as their magnitude.
func Values[T any](gen *Generator, count int) []T {
	if count < 0 {
		count = -count
	}

	var zero T
	size := binary.Size(zero)
	if size < 0 {
		// no fixed layout
		return nil
	}

	res := make([]T, count)
	if count == 0 {
		return res
	}

	raw := gen.PseudoRandomData(uint(size * count))
	if err := binary.Read(bytes.NewReader(raw), binary.LittleEndian, res); err != nil {
		return nil
	}
	return res
}

// FromRange draws count values from the inclusive range [lo, hi]. An empty
// range (hi < lo) yields an empty result. Indices are drawn by rejection
// sampling, every value of the range is equally likely.
func FromRange(gen *Generator, lo, hi int64, count int) []int64 {
	if count < 0 {
		count = -count
	}
	if hi < lo {
		return []int64{}
	}

	res := make([]int64, 0, count)
	for i := 0; i < count; i++ {
		res = append(res, lo+int64(gen.Number(uint64(hi-lo))))
	}
	return res
}

// FromSlice draws count elements from the given slice, each drawn
// independently over the whole slice. An empty slice yields an empty result.
func FromSlice[T any](gen *Generator, s []T, count int) []T {
	if count < 0 {
		count = -count
	}
	if len(s) == 0 {
		return []T{}
	}

	res := make([]T, 0, count)
	for i := 0; i < count; i++ {
		res = append(res, s[gen.Number(uint64(len(s)-1))])
	}
	return res
}

// KeyValue holds one entry drawn from a map.
type KeyValue[K comparable, V any] struct {
	Key   K
	Value V
}

// FromMap draws count key/value pairs from the given map. The map is
// materialized into a sequence first, so every entry is equally likely on
// every draw. An empty map yields an empty result.
func FromMap[K comparable, V any](gen *Generator, m map[K]V, count int) []KeyValue[K, V] {
	if count < 0 {
		count = -count
	}
	if len(m) == 0 {
		return []KeyValue[K, V]{}
	}

	entries := make([]KeyValue[K, V], 0, len(m))
	for k, v := range m {
		entries = append(entries, KeyValue[K, V]{Key: k, Value: v})
	}

	return FromSlice(gen, entries, count)
}
