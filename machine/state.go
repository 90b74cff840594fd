package machine

// State is the architectural state threaded through a single instruction's
// semantic step: the register file, memory, and the program counter in
// effect for that step. M1 and M2 share one State for the whole run; M3's
// execute stage owns it and fetch carries an independent pc of its own.
type State struct {
	Registers *RegisterFile
	Memory    Memory
	PC        int32
}

// NewState allocates a State with a fresh register file and a memory of
// the given size.
func NewState(memoryBytes int) *State {
	return &State{
		Registers: &RegisterFile{},
		Memory:    NewMemory(memoryBytes),
		PC:        0,
	}
}

// Reg reads a register, applying the ZERO-is-always-0 rule.
func (s *State) Reg(r Register) int32 {
	return s.Registers.Get(r)
}
