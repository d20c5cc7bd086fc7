package hashtrie

import (
	"encoding/binary"
	"reflect"
	"unsafe"

	"github.com/dchest/siphash"
	"github.com/dolthub/maphash"
)

// HashFn is a function that returns the 64-bit hash of 't'. The low 16
// bits select the probe start inside a leaf table and the upper bits
// are consumed byte-wise by the interior levels, so the whole word has
// to be well mixed. All versions branched off one map share its HashFn.
type HashFn[T any] func(t T) uint64

// GetHasher returns a hasher for the given key type. The golang default
// types are dispatched to fixed finalizers (strings to fnv1a); every other comparable type
// falls back to a runtime seeded maphash.
func GetHasher[Key comparable]() HashFn[Key] {
	var key Key
	kind := reflect.ValueOf(&key).Elem().Type().Kind()

	switch kind {
	case reflect.Int, reflect.Uint, reflect.Uintptr:
		switch unsafe.Sizeof(key) {
		case 4:
			return *(*func(Key) uint64)(unsafe.Pointer(&hashDword))
		case 8:
			return *(*func(Key) uint64)(unsafe.Pointer(&hashQword))

		default:
			panic("unsupported integer byte size")
		}

	case reflect.Int8, reflect.Uint8:
		return *(*func(Key) uint64)(unsafe.Pointer(&hashByte))
	case reflect.Int16, reflect.Uint16:
		return *(*func(Key) uint64)(unsafe.Pointer(&hashWord))
	case reflect.Int32, reflect.Uint32:
		return *(*func(Key) uint64)(unsafe.Pointer(&hashDword))
	case reflect.Int64, reflect.Uint64:
		return *(*func(Key) uint64)(unsafe.Pointer(&hashQword))
	case reflect.Float32:
		return *(*func(Key) uint64)(unsafe.Pointer(&hashFloat32))
	case reflect.Float64:
		return *(*func(Key) uint64)(unsafe.Pointer(&hashFloat64))
	case reflect.String:
		return *(*func(Key) uint64)(unsafe.Pointer(&fnv1aModified))

	default:
		h := maphash.NewHasher[Key]()
		return h.Hash
	}
}

// NewSipHasher returns a keyed string hasher. Callers exposed to
// attacker chosen keys can use it instead of the default fnv based
// string hasher.
func NewSipHasher(k0, k1 uint64) HashFn[string] {
	return func(s string) uint64 {
		return siphash.Hash(k0, k1, []byte(s))
	}
}

// mix64 implements MurmurHash3's 64-bit finalizer. Narrow integer keys
// are widened through it instead of a 32-bit finalizer so that the
// interior levels above bit 32 still see entropy.
func mix64(key uint64) uint64 {
	key ^= (key >> 33)
	key *= 0xff51afd7ed558ccd
	key ^= (key >> 33)
	key *= 0xc4ceb9fe1a85ec53
	key ^= (key >> 33)
	return key
}

var hashByte = func(in uint8) uint64 {
	return mix64(uint64(in))
}

var hashWord = func(in uint16) uint64 {
	return mix64(uint64(in))
}

var hashDword = func(in uint32) uint64 {
	return mix64(uint64(in))
}

var hashQword = func(key uint64) uint64 {
	return mix64(key)
}

var hashFloat32 = func(in float32) uint64 {
	p := unsafe.Pointer(&in)
	return mix64(uint64(*(*uint32)(p)))
}

var hashFloat64 = func(in float64) uint64 {
	p := unsafe.Pointer(&in)
	return mix64(*(*uint64)(p))
}

// fnv1aModified implements a simpler and faster variant of the fnv1a algorithm, that seems good enough for string hashing.
var fnv1aModified = func(b []byte) uint64 {
	const prime64 = uint64(1099511628211)
	h := uint64(14695981039346656037)

	for len(b) >= 8 {
		x := binary.BigEndian.Uint32(b)
		b = b[4:]
		y := binary.BigEndian.Uint32(b)
		b = b[4:]
		z := (uint64(x) << 32) | uint64(y)
		h = (h ^ z) * prime64
	}

	if len(b) >= 4 {
		x := binary.BigEndian.Uint16(b)
		b = b[2:]
		y := binary.BigEndian.Uint16(b)
		b = b[2:]
		z := (uint64(x) << 16) | uint64(y)
		h = (h ^ z) * prime64
	}

	if len(b) >= 2 {
		h = (h ^ uint64(b[0]^b[1])) * prime64
		b = b[2:]
	}

	if len(b) > 0 {
		h = (h ^ uint64(b[0])) * prime64
	}

	return h
}
