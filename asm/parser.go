// Package asm assembles the line-oriented textual program format into a
// machine.Program: label resolution first, then per-line instruction
// parsing, mirroring the two-pass structure of a classic line assembler.
package asm

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"riscvsim/machine"
)

var (
	inlineComment = regexp.MustCompile(`#.*$`)
	storeCompact  = regexp.MustCompile(`^(-?\w+)\((\w+)\)$`)
)

// rawLine is a preprocessed instruction line: mnemonic plus its unparsed,
// comma-separated operand string.
type rawLine struct {
	mnemonic string
	operands string
	lineNo   int // 1-based source line, for error messages
}

// Parse assembles source into a Program. Labels resolve to the byte
// address (4 * instruction index) of the instruction that follows them.
func Parse(source string) (*machine.Program, error) {
	lines := strings.Split(source, "\n")

	labels := make(map[string]int32)
	raws := make([]rawLine, 0, len(lines))

	for lineNo, line := range lines {
		line = inlineComment.ReplaceAllString(line, "")
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasSuffix(line, ":") && !strings.ContainsAny(line, " \t") {
			label := strings.TrimSuffix(line, ":")
			labels[label] = int32(len(raws)) * 4
			continue
		}

		fields := strings.SplitN(line, " ", 2)
		mnemonic := strings.ToLower(strings.TrimSpace(fields[0]))
		operands := ""
		if len(fields) > 1 {
			operands = strings.TrimSpace(fields[1])
		}
		raws = append(raws, rawLine{mnemonic: mnemonic, operands: operands, lineNo: lineNo + 1})
	}

	instructions := make([]machine.Instruction, 0, len(raws))
	for _, raw := range raws {
		instr, err := parseLine(raw)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", raw.lineNo, err)
		}
		instructions = append(instructions, instr)
	}

	return &machine.Program{Instructions: instructions, Labels: labels}, nil
}

func parseLine(raw rawLine) (machine.Instruction, error) {
	op, ok := machine.ParseOpcode(raw.mnemonic)
	if !ok {
		return machine.Instruction{}, fmt.Errorf("unknown opcode: %s", raw.mnemonic)
	}

	operands := splitOperands(raw.operands)

	switch op {
	case machine.ADD, machine.SUB, machine.AND, machine.OR, machine.XOR,
		machine.MUL, machine.DIV, machine.REM,
		machine.SLT, machine.SLTU, machine.SLL, machine.SRL, machine.SRA:
		rd, rs1, rs2, err := regRegReg(operands)
		if err != nil {
			return machine.Instruction{}, err
		}
		return machine.Instruction{Op: op, Rd: rd, Rs1: rs1, Rs2: rs2}, nil

	case machine.ADDI, machine.ANDI, machine.ORI, machine.XORI,
		machine.SLTI, machine.SLLI, machine.SRAI, machine.SRLI:
		rd, rs1, imm, err := regRegImm(operands)
		if err != nil {
			return machine.Instruction{}, err
		}
		return machine.Instruction{Op: op, Rd: rd, Rs1: rs1, Imm: imm}, nil

	case machine.LUI, machine.AUIPC:
		if len(operands) != 2 {
			return machine.Instruction{}, fmt.Errorf("%s requires 2 operands, got %d", raw.mnemonic, len(operands))
		}
		rd, err := reg(operands[0])
		if err != nil {
			return machine.Instruction{}, err
		}
		imm, err := immediate(operands[1])
		if err != nil {
			return machine.Instruction{}, err
		}
		return machine.Instruction{Op: op, Rd: rd, Imm: imm}, nil

	case machine.BEQ, machine.BNE, machine.BLT, machine.BLTU, machine.BGE, machine.BGEU:
		if len(operands) != 3 {
			return machine.Instruction{}, fmt.Errorf("%s requires 3 operands, got %d", raw.mnemonic, len(operands))
		}
		rs1, err := reg(operands[0])
		if err != nil {
			return machine.Instruction{}, err
		}
		rs2, err := reg(operands[1])
		if err != nil {
			return machine.Instruction{}, err
		}
		return machine.Instruction{Op: op, Rs1: rs1, Rs2: rs2, Label: operands[2]}, nil

	case machine.JAL:
		if len(operands) != 2 {
			return machine.Instruction{}, fmt.Errorf("jal requires 2 operands, got %d", len(operands))
		}
		rd, err := reg(operands[0])
		if err != nil {
			return machine.Instruction{}, err
		}
		return machine.Instruction{Op: op, Rd: rd, Label: operands[1]}, nil

	case machine.JALR:
		rd, rs1, imm, err := regRegImm(operands)
		if err != nil {
			return machine.Instruction{}, err
		}
		return machine.Instruction{Op: op, Rd: rd, Rs1: rs1, Imm: imm}, nil

	case machine.LB, machine.LH, machine.LW:
		if len(operands) != 3 {
			return machine.Instruction{}, fmt.Errorf("%s requires 3 operands, got %d", raw.mnemonic, len(operands))
		}
		rd, err := reg(operands[0])
		if err != nil {
			return machine.Instruction{}, err
		}
		imm, err := immediate(operands[1])
		if err != nil {
			return machine.Instruction{}, err
		}
		rs1, err := reg(operands[2])
		if err != nil {
			return machine.Instruction{}, err
		}
		return machine.Instruction{Op: op, Rd: rd, Imm: imm, Rs1: rs1}, nil

	case machine.SB, machine.SH, machine.SW:
		return parseStore(op, operands, raw.mnemonic)

	case machine.NOP:
		return machine.Instruction{Op: op}, nil

	default:
		return machine.Instruction{}, fmt.Errorf("unhandled opcode: %s", raw.mnemonic)
	}
}

// parseStore accepts both the three-operand "reg, offset, rs1" form and the
// compact "sb rs2, imm(rs1)" form.
func parseStore(op machine.Opcode, operands []string, mnemonic string) (machine.Instruction, error) {
	if len(operands) == 2 {
		m := storeCompact.FindStringSubmatch(operands[1])
		if m == nil {
			return machine.Instruction{}, fmt.Errorf("%s: expected imm(rs1), got %q", mnemonic, operands[1])
		}
		rs2, err := reg(operands[0])
		if err != nil {
			return machine.Instruction{}, err
		}
		imm, err := immediate(m[1])
		if err != nil {
			return machine.Instruction{}, err
		}
		rs1, err := reg(m[2])
		if err != nil {
			return machine.Instruction{}, err
		}
		return machine.Instruction{Op: op, Rs2: rs2, Imm: imm, Rs1: rs1}, nil
	}

	if len(operands) != 3 {
		return machine.Instruction{}, fmt.Errorf("%s requires 2 or 3 operands, got %d", mnemonic, len(operands))
	}
	rs2, err := reg(operands[0])
	if err != nil {
		return machine.Instruction{}, err
	}
	imm, err := immediate(operands[1])
	if err != nil {
		return machine.Instruction{}, err
	}
	rs1, err := reg(operands[2])
	if err != nil {
		return machine.Instruction{}, err
	}
	return machine.Instruction{Op: op, Rs2: rs2, Imm: imm, Rs1: rs1}, nil
}

func regRegReg(operands []string) (rd, rs1, rs2 machine.Register, err error) {
	if len(operands) != 3 {
		return 0, 0, 0, fmt.Errorf("expected 3 operands, got %d", len(operands))
	}
	if rd, err = reg(operands[0]); err != nil {
		return
	}
	if rs1, err = reg(operands[1]); err != nil {
		return
	}
	rs2, err = reg(operands[2])
	return
}

func regRegImm(operands []string) (rd, rs1 machine.Register, imm int32, err error) {
	if len(operands) != 3 {
		return 0, 0, 0, fmt.Errorf("expected 3 operands, got %d", len(operands))
	}
	if rd, err = reg(operands[0]); err != nil {
		return
	}
	if rs1, err = reg(operands[1]); err != nil {
		return
	}
	imm, err = immediate(operands[2])
	return
}

func reg(token string) (machine.Register, error) {
	r, ok := machine.ParseRegister(token)
	if !ok {
		return 0, fmt.Errorf("unknown register: %s", token)
	}
	return r, nil
}

func immediate(token string) (int32, error) {
	v, err := strconv.ParseInt(token, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid immediate %q: %w", token, err)
	}
	return int32(v), nil
}

func splitOperands(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}
