package sqlite

import (
	"encoding/binary"
	"errors"
	"math"
)

var errCorrupt = errors.New("corrupt array blob")

// Blobs start with an element count so that empty arrays still have a
// non-empty encoding.

func encodeFloats(v []float64) []byte {
	out := make([]byte, 8+8*len(v))
	binary.LittleEndian.PutUint64(out, uint64(len(v)))
	for i, f := range v {
		binary.LittleEndian.PutUint64(out[8+8*i:], math.Float64bits(f))
	}
	return out
}

func decodeFloats(b []byte) ([]float64, error) {
	if len(b) < 8 || (len(b)-8)%8 != 0 {
		return nil, errCorrupt
	}
	n := binary.LittleEndian.Uint64(b)
	if n != uint64(len(b)-8)/8 {
		return nil, errCorrupt
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[8+8*i:]))
	}
	return out, nil
}

func encodeShape(lengths []int) []byte {
	out := make([]byte, 0, 4+4*len(lengths))
	out = binary.LittleEndian.AppendUint32(out, uint32(len(lengths)))
	for _, n := range lengths {
		out = binary.LittleEndian.AppendUint32(out, uint32(n))
	}
	return out
}

func decodeShape(b []byte) ([]int, error) {
	if len(b) < 4 || (len(b)-4)%4 != 0 {
		return nil, errCorrupt
	}
	n := binary.LittleEndian.Uint32(b)
	if n != uint32(len(b)-4)/4 {
		return nil, errCorrupt
	}
	out := make([]int, n)
	for i := range out {
		out[i] = int(binary.LittleEndian.Uint32(b[4+4*i:]))
	}
	return out, nil
}
