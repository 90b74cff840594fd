package machine

// writeUnit retires whatever execute has handed it; like decodeUnit it
// completes within a single cycle and so is always reported empty.
type writeUnit struct{}

func (writeUnit) cycle(st *State, in *bus[executionResult], sb *Scoreboard) {
	if !in.ContainsInQueue() {
		return
	}
	result := in.Get()
	if !IsStore(result.op) && result.write.Has {
		st.Registers.Set(result.write.Reg, result.write.Val)
	}
	sb.Remove(result.writeRegs)
}

func (writeUnit) isEmpty() bool { return true }
