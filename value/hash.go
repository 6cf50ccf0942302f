package value

import (
	"encoding/binary"
	"hash/fnv"
	"math"
)

// fnv1a hashes bytes using the real hash/fnv package instead of a
// hand-rolled FNV-1a loop.
func fnv1a(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}

// HashValue hashes a value for use as a hash-table key: strings use their
// stored hash, numbers hash their 8-byte bit pattern via FNV-1a, immediates
// hash to small fixed constants, and non-string heap objects are not
// hashable.
func HashValue(v Value) (uint32, bool) {
	switch v.tag {
	case TagNil:
		return 1, true
	case TagTrue:
		return 2, true
	case TagFalse:
		return 3, true
	case TagVoid:
		return 4, true
	case TagEOF:
		return 5, true
	case TagUndefined:
		return 6, true
	case TagNumber:
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], floatBits(v.num))
		h := fnv.New32a()
		h.Write(buf[:])
		return h.Sum32(), true
	case TagObject:
		if v.obj.Kind == KindString {
			return v.obj.StrHash, true
		}
		return 0, false
	}
	return 0, false
}

func floatBits(f float64) uint64 {
	return math.Float64bits(f)
}
