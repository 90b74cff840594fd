package machine

import "strings"

// Register identifies one of the 32 architectural registers. ZERO is
// special: writes to it are always discarded and reads always return 0.
type Register int

const (
	ZERO Register = iota
	RA
	SP
	GP
	TP
	T0
	T1
	T2
	T3
	T4
	T5
	T6
	S0
	S1
	S2
	S3
	S4
	S5
	S6
	S7
	S8
	S9
	S10
	S11
	A0
	A1
	A2
	A3
	A4
	A5
	A6
	A7
	numRegisters
)

var registerNames = map[Register]string{
	ZERO: "zero", RA: "ra", SP: "sp", GP: "gp", TP: "tp",
	T0: "t0", T1: "t1", T2: "t2", T3: "t3", T4: "t4", T5: "t5", T6: "t6",
	S0: "s0", S1: "s1", S2: "s2", S3: "s3", S4: "s4", S5: "s5",
	S6: "s6", S7: "s7", S8: "s8", S9: "s9", S10: "s10", S11: "s11",
	A0: "a0", A1: "a1", A2: "a2", A3: "a3", A4: "a4", A5: "a5", A6: "a6", A7: "a7",
}

var namesToRegister map[string]Register

func init() {
	namesToRegister = make(map[string]Register, len(registerNames))
	for reg, name := range registerNames {
		namesToRegister[name] = reg
	}
}

func (r Register) String() string {
	if name, ok := registerNames[r]; ok {
		return name
	}
	return "?"
}

// ParseRegister resolves a register mnemonic, optionally prefixed with '$',
// to its Register value.
func ParseRegister(name string) (Register, bool) {
	name = strings.TrimPrefix(strings.ToLower(name), "$")
	reg, ok := namesToRegister[name]
	return reg, ok
}

// RegisterFile holds the 32 architectural registers of a single machine.
type RegisterFile struct {
	values [numRegisters]int32
}

// Get returns the current value of r; ZERO always reads 0.
func (f *RegisterFile) Get(r Register) int32 {
	if r == ZERO {
		return 0
	}
	return f.values[r]
}

// Set assigns v to r. Writes to ZERO are silently discarded.
func (f *RegisterFile) Set(r Register, v int32) {
	if r == ZERO {
		return
	}
	f.values[r] = v
}

// Snapshot returns a copy of every non-ZERO register's value, keyed by
// register, for use in tests and debug printing.
func (f *RegisterFile) Snapshot() map[Register]int32 {
	out := make(map[Register]int32, numRegisters-1)
	for r := RA; r < numRegisters; r++ {
		out[r] = f.values[r]
	}
	return out
}
