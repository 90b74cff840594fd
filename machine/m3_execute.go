package machine

// executionResult is what the execute stage hands to write-back: the
// instruction's write (if any), enough of the opcode to know whether it
// commits, and the write-register set to retire from the scoreboard.
type executionResult struct {
	op        Opcode
	write     Write
	writeRegs []Register
}

type executeUnit struct {
	processing bool
	remaining  int64
	instr      Instruction
}

// cycle advances execute by one tick. On the cycle an instruction finally
// runs, it mutates st.PC and the scoreboard and enqueues onto out.
func (e *executeUnit) cycle(st *State, prog *Program, in *bus[Instruction], out *bus[executionResult], sb *Scoreboard) error {
	if !e.processing {
		if !in.ContainsInQueue() {
			return nil
		}
		e.instr = in.Get()
		e.remaining = ExecuteCost(e.instr.Op)
		e.processing = true
	}

	e.remaining--
	if e.remaining != 0 {
		return nil
	}

	if out.IsFull() {
		e.remaining = 1
		return nil
	}

	if sb.Contains(e.instr.ReadRegisters()) {
		e.remaining = 1
		return nil
	}

	write, nextPC, err := e.instr.Exec(st, prog.Labels)
	if err != nil {
		return err
	}
	st.PC = nextPC

	writeRegs := e.instr.WriteRegisters()
	out.Add(executionResult{op: e.instr.Op, write: write, writeRegs: writeRegs})
	sb.Add(writeRegs)

	e.processing = false
	return nil
}

func (e *executeUnit) isEmpty() bool { return !e.processing }

func (e *executeUnit) flush() {
	e.processing = false
	e.remaining = 0
}
