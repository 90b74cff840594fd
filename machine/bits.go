package machine

import "encoding/binary"

// WordToLanes splits a signed 32-bit value into its four little-endian
// byte lanes, matching the lane order used by half/word memory ops.
func WordToLanes(v int32) [4]int8 {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(v))
	return [4]int8{int8(buf[0]), int8(buf[1]), int8(buf[2]), int8(buf[3])}
}

// LanesToWord reassembles four little-endian byte lanes into a signed
// 32-bit value.
func LanesToWord(b0, b1, b2, b3 int8) int32 {
	buf := [4]byte{byte(b0), byte(b1), byte(b2), byte(b3)}
	return int32(binary.LittleEndian.Uint32(buf[:]))
}

// LanesToHalf reassembles two little-endian byte lanes into a sign-extended
// 32-bit value.
func LanesToHalf(b0, b1 int8) int32 {
	buf := [2]byte{byte(b0), byte(b1)}
	return int32(int16(binary.LittleEndian.Uint16(buf[:])))
}
