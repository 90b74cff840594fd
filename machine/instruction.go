package machine

import "fmt"

// Instruction is an immutable record carrying an opcode tag and the fields
// that opcode needs. Reg-imm ops and loads carry their single source
// register in Rs1; Rs2 holds the second source for reg-reg ops, the value
// register for stores, and the comparison register for branches.
type Instruction struct {
	Op    Opcode
	Rd    Register
	Rs1   Register
	Rs2   Register
	Imm   int32
	Label string
}

// Write describes a pending register commit: Has is false for branches,
// stores, and NOP, which never write a register.
type Write struct {
	Reg Register
	Val int32
	Has bool
}

func reg(r Register, v int32) Write { return Write{Reg: r, Val: v, Has: true} }

// Exec runs the instruction's pure semantic step against st, returning the
// register write (if any) and the next program counter. Labels resolves
// branch and jump targets; a reference to an undefined label fails.
func (i Instruction) Exec(st *State, labels map[string]int32) (Write, int32, error) {
	pc := st.PC
	seq := pc + 4

	switch i.Op {
	case ADD:
		return reg(i.Rd, st.Reg(i.Rs1)+st.Reg(i.Rs2)), seq, nil
	case SUB:
		return reg(i.Rd, st.Reg(i.Rs1)-st.Reg(i.Rs2)), seq, nil
	case AND:
		return reg(i.Rd, st.Reg(i.Rs1)&st.Reg(i.Rs2)), seq, nil
	case OR:
		return reg(i.Rd, st.Reg(i.Rs1)|st.Reg(i.Rs2)), seq, nil
	case XOR:
		return reg(i.Rd, st.Reg(i.Rs1)^st.Reg(i.Rs2)), seq, nil
	case MUL:
		return reg(i.Rd, st.Reg(i.Rs1)*st.Reg(i.Rs2)), seq, nil
	case DIV:
		return reg(i.Rd, st.Reg(i.Rs1)/st.Reg(i.Rs2)), seq, nil
	case REM:
		return reg(i.Rd, st.Reg(i.Rs1)%st.Reg(i.Rs2)), seq, nil
	case SLT, SLTU:
		// SLTU/BLTU/BGEU preserve the signed comparison observed in the
		// source this was distilled from; see DESIGN.md.
		return reg(i.Rd, boolToWord(st.Reg(i.Rs1) < st.Reg(i.Rs2))), seq, nil
	case SLL:
		return reg(i.Rd, st.Reg(i.Rs1)<<uint32(st.Reg(i.Rs2))), seq, nil
	case SRL:
		return reg(i.Rd, int32(uint32(st.Reg(i.Rs1))>>uint32(st.Reg(i.Rs2)))), seq, nil
	case SRA:
		return reg(i.Rd, st.Reg(i.Rs1)>>uint32(st.Reg(i.Rs2))), seq, nil

	case ADDI:
		return reg(i.Rd, st.Reg(i.Rs1)+i.Imm), seq, nil
	case ANDI:
		return reg(i.Rd, st.Reg(i.Rs1)&i.Imm), seq, nil
	case ORI:
		return reg(i.Rd, st.Reg(i.Rs1)|i.Imm), seq, nil
	case XORI:
		return reg(i.Rd, st.Reg(i.Rs1)^i.Imm), seq, nil
	case SLTI:
		return reg(i.Rd, boolToWord(st.Reg(i.Rs1) < i.Imm)), seq, nil
	case SLLI:
		return reg(i.Rd, st.Reg(i.Rs1)<<uint32(i.Imm)), seq, nil
	case SRAI:
		return reg(i.Rd, st.Reg(i.Rs1)>>uint32(i.Imm)), seq, nil
	case SRLI:
		return reg(i.Rd, int32(uint32(st.Reg(i.Rs1))>>uint32(i.Imm))), seq, nil

	case LUI:
		return reg(i.Rd, i.Imm<<12), seq, nil
	case AUIPC:
		return reg(i.Rd, pc+(i.Imm<<12)), seq, nil

	case BEQ:
		return i.branchExec(st.Reg(i.Rs1) == st.Reg(i.Rs2), pc, seq, labels)
	case BNE:
		return i.branchExec(st.Reg(i.Rs1) != st.Reg(i.Rs2), pc, seq, labels)
	case BLT, BLTU:
		return i.branchExec(st.Reg(i.Rs1) < st.Reg(i.Rs2), pc, seq, labels)
	case BGE, BGEU:
		return i.branchExec(st.Reg(i.Rs1) >= st.Reg(i.Rs2), pc, seq, labels)

	case JAL:
		addr, ok := labels[i.Label]
		if !ok {
			return Write{}, 0, fmt.Errorf("%w: %s", errLabelNotFound, i.Label)
		}
		return reg(i.Rd, seq), addr, nil
	case JALR:
		return reg(i.Rd, seq), st.Reg(i.Rs1) + i.Imm, nil

	case LB:
		addr := st.Reg(i.Rs1) + i.Imm
		return reg(i.Rd, st.Memory.LoadByte(addr)), seq, nil
	case LH:
		addr := st.Reg(i.Rs1) + i.Imm
		return reg(i.Rd, st.Memory.LoadHalf(addr)), seq, nil
	case LW:
		addr := st.Reg(i.Rs1) + i.Imm
		return reg(i.Rd, st.Memory.LoadWord(addr)), seq, nil

	case SB:
		addr := st.Reg(i.Rs1) + i.Imm
		st.Memory.StoreByte(addr, st.Reg(i.Rs2))
		return Write{}, seq, nil
	case SH:
		addr := st.Reg(i.Rs1) + i.Imm
		st.Memory.StoreHalf(addr, st.Reg(i.Rs2))
		return Write{}, seq, nil
	case SW:
		addr := st.Reg(i.Rs1) + i.Imm
		st.Memory.StoreWord(addr, st.Reg(i.Rs2))
		return Write{}, seq, nil

	case NOP:
		return Write{}, seq, nil

	default:
		return Write{}, 0, fmt.Errorf("unknown opcode: %v", i.Op)
	}
}

// branchExec resolves a taken/not-taken branch, returning no write and
// either the label address or the sequential pc.
func (i Instruction) branchExec(taken bool, pc, seq int32, labels map[string]int32) (Write, int32, error) {
	if !taken {
		return Write{}, seq, nil
	}
	addr, ok := labels[i.Label]
	if !ok {
		return Write{}, 0, fmt.Errorf("%w: %s", errLabelNotFound, i.Label)
	}
	return Write{}, addr, nil
}

func boolToWord(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// ReadRegisters returns the set of registers this instruction reads,
// needed by the M3 hazard scoreboard.
func (i Instruction) ReadRegisters() []Register {
	switch i.Op {
	case ADD, SUB, AND, OR, XOR, MUL, DIV, REM, SLT, SLTU, SLL, SRL, SRA,
		BEQ, BNE, BLT, BLTU, BGE, BGEU:
		return []Register{i.Rs1, i.Rs2}
	case ADDI, ANDI, ORI, XORI, SLTI, SLLI, SRAI, SRLI, JALR, LB, LH, LW:
		return []Register{i.Rs1}
	case SB, SH, SW:
		return []Register{i.Rs1, i.Rs2}
	default:
		return nil
	}
}

// WriteRegisters returns the set of registers this instruction writes,
// needed by the M3 hazard scoreboard.
func (i Instruction) WriteRegisters() []Register {
	switch i.Op {
	case ADD, SUB, AND, OR, XOR, MUL, DIV, REM, SLT, SLTU, SLL, SRL, SRA,
		ADDI, ANDI, ORI, XORI, SLTI, SLLI, SRAI, SRLI,
		LUI, AUIPC, JAL, JALR, LB, LH, LW:
		return []Register{i.Rd}
	default:
		return nil
	}
}

// String renders the instruction in the same line format accepted by the
// assembler, for disassembly.
func (i Instruction) String() string {
	switch i.Op {
	case ADD, SUB, AND, OR, XOR, MUL, DIV, REM, SLT, SLTU, SLL, SRL, SRA:
		return fmt.Sprintf("%s %s, %s, %s", i.Op, i.Rd, i.Rs1, i.Rs2)
	case ADDI, ANDI, ORI, XORI, SLTI, SLLI, SRAI, SRLI:
		return fmt.Sprintf("%s %s, %s, %d", i.Op, i.Rd, i.Rs1, i.Imm)
	case LUI, AUIPC:
		return fmt.Sprintf("%s %s, %d", i.Op, i.Rd, i.Imm)
	case BEQ, BNE, BLT, BLTU, BGE, BGEU:
		return fmt.Sprintf("%s %s, %s, %s", i.Op, i.Rs1, i.Rs2, i.Label)
	case JAL:
		return fmt.Sprintf("%s %s, %s", i.Op, i.Rd, i.Label)
	case JALR:
		return fmt.Sprintf("%s %s, %s, %d", i.Op, i.Rd, i.Rs1, i.Imm)
	case LB, LH, LW:
		return fmt.Sprintf("%s %s, %d, %s", i.Op, i.Rd, i.Imm, i.Rs1)
	case SB, SH, SW:
		return fmt.Sprintf("%s %s, %d(%s)", i.Op, i.Rs2, i.Imm, i.Rs1)
	case NOP:
		return "nop"
	default:
		return "?"
	}
}
