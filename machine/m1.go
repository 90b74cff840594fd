package machine

const (
	cyclesFetchFlat int64 = 50
	cyclesDecode    int64 = 1
	cyclesWriteback int64 = 1
	cyclesL1Hit     int64 = 1
	cyclesL1Miss    int64 = 51
	lineSizeM2      int32 = 64
	lineSizeM3      int32 = 512
)

// RunM1 executes prog on the non-pipelined reference model: every
// instruction pays a flat fetch cost, then decode, execute and (unless it
// is a store) write-back. It returns the total cycle count.
func RunM1(prog *Program, st *State) (int64, error) {
	var cycles int64
	n := int32(prog.Len())

	for st.PC/4 < n {
		idx := st.PC / 4
		instr := prog.Instructions[idx]

		// Fetch.
		cycles += cyclesFetchFlat
		// Decode.
		cycles += cyclesDecode
		// Execute.
		write, nextPC, err := instr.Exec(st, prog.Labels)
		if err != nil {
			return cycles, err
		}
		cycles += ExecuteCost(instr.Op)
		if write.Has {
			st.Registers.Set(write.Reg, write.Val)
		}
		// Write-back.
		if HasWriteback(instr.Op) {
			cycles += cyclesWriteback
		}
		st.PC = nextPC
	}

	return cycles, nil
}
