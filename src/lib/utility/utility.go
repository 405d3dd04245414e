package utility

import "encoding/binary"

func Concat[T any](arrays ...[]T) []T {
	size := 0
	for _, ele := range arrays {
		size += len(ele)
	}
	result := make([]T, 0, size)
	for _, ele := range arrays {
		result = append(result, ele...)
	}
	return result
}

func UintToBytes(u uint64) []byte {
	int_buffer := make([]byte, binary.MaxVarintLen64)
	n := binary.PutUvarint(int_buffer, u)
	return int_buffer[:n]
}

// LengthPrefixed encodes each string as its uvarint length then its bytes,
// so that distinct lists never encode the same.
func LengthPrefixed(ss []string) []byte {
	out := []byte{}
	for _, s := range ss {
		out = append(out, UintToBytes(uint64(len(s)))...)
		out = append(out, s...)
	}
	return out
}
