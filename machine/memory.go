package machine

// Memory is a fixed-length, byte-addressable array of signed 8-bit cells.
// It is zero-initialized and never resized after construction.
type Memory []int8

// NewMemory allocates a zeroed memory of the given size in bytes.
func NewMemory(size int) Memory {
	return make(Memory, size)
}

// LoadByte sign-extends the single byte at addr to 32 bits.
func (m Memory) LoadByte(addr int32) int32 {
	return int32(m[addr])
}

// LoadHalf reconstructs a sign-extended 32-bit value from the two bytes at
// addr, in little-endian lane order.
func (m Memory) LoadHalf(addr int32) int32 {
	return LanesToHalf(m[addr], m[addr+1])
}

// LoadWord reconstructs a signed 32-bit value from the four bytes at addr,
// in little-endian lane order.
func (m Memory) LoadWord(addr int32) int32 {
	return LanesToWord(m[addr], m[addr+1], m[addr+2], m[addr+3])
}

// StoreByte writes the low 8 bits of v to addr.
func (m Memory) StoreByte(addr int32, v int32) {
	m[addr] = int8(v)
}

// StoreHalf writes the low 16 bits of v to addr and addr+1, little-endian.
func (m Memory) StoreHalf(addr int32, v int32) {
	lanes := WordToLanes(v)
	m[addr] = lanes[0]
	m[addr+1] = lanes[1]
}

// StoreWord writes all 32 bits of v to addr..addr+3, little-endian.
func (m Memory) StoreWord(addr int32, v int32) {
	lanes := WordToLanes(v)
	m[addr] = lanes[0]
	m[addr+1] = lanes[1]
	m[addr+2] = lanes[2]
	m[addr+3] = lanes[3]
}
