package machine

// icacheLine models the single instruction-cache line shared by M2 and
// M3's fetch unit: an inclusive [lo, hi] byte-address interval, refilled
// on every miss.
type icacheLine struct {
	lo, hi   int32
	lineSize int32
	present  bool
}

func newICacheLine(lineSize int32) icacheLine {
	return icacheLine{lineSize: lineSize}
}

func (c *icacheLine) hit(pc int32) bool {
	return c.present && pc >= c.lo && pc <= c.hi
}

func (c *icacheLine) refill(pc int32) {
	c.lo = pc
	c.hi = pc + c.lineSize
	c.present = true
}

// RunM2 executes prog on the single-line-instruction-cache model: as M1,
// but fetch costs one cycle on a hit and fifty-one on a miss against a
// single 64-byte cache line. Loads and stores do not interact with this
// cache; it is instruction-only.
func RunM2(prog *Program, st *State) (int64, error) {
	var cycles int64
	n := int32(prog.Len())
	line := newICacheLine(lineSizeM2)

	for st.PC/4 < n {
		idx := st.PC / 4
		instr := prog.Instructions[idx]

		// Fetch.
		if line.hit(st.PC) {
			cycles += cyclesL1Hit
		} else {
			line.refill(st.PC)
			cycles += cyclesL1Miss
		}
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
