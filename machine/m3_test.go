package machine

import "testing"

func runM3(t *testing.T, prog *Program) (int64, *Machine3) {
	t.Helper()
	m := NewMachine3(16)
	cycles, err := m.Run(prog)
	assert(t, err == nil, "Machine3.Run failed: %v", err)
	return cycles, m
}

func TestPipeliningSimple(t *testing.T) {
	prog := &Program{
		Instructions: []Instruction{
			{Op: ADDI, Rd: T0, Rs1: ZERO, Imm: 1},
		},
		Labels: map[string]int32{},
	}
	cycles, m := runM3(t, prog)
	assert(t, m.State().Reg(T0) == 1, "want t0=1, got %d", m.State().Reg(T0))
	assert(t, cycles == 54, "want 54 cycles, got %d", cycles)
}

func TestPipeliningMultiple(t *testing.T) {
	prog := &Program{
		Instructions: []Instruction{
			{Op: ADDI, Rd: T0, Rs1: ZERO, Imm: 1},
			{Op: ADDI, Rd: T1, Rs1: ZERO, Imm: 2},
			{Op: ADDI, Rd: T2, Rs1: ZERO, Imm: 3},
		},
		Labels: map[string]int32{},
	}
	cycles, m := runM3(t, prog)
	assert(t, m.State().Reg(T0) == 1, "want t0=1, got %d", m.State().Reg(T0))
	assert(t, m.State().Reg(T1) == 2, "want t1=2, got %d", m.State().Reg(T1))
	assert(t, m.State().Reg(T2) == 3, "want t2=3, got %d", m.State().Reg(T2))
	assert(t, cycles == 56, "want 56 cycles, got %d", cycles)
}

func TestPipeliningJal(t *testing.T) {
	// addi t0,zero,1 ; jal t2,foo ; addi t1,zero,2 ; foo: addi t2,zero,3
	prog := &Program{
		Instructions: []Instruction{
			{Op: ADDI, Rd: T0, Rs1: ZERO, Imm: 1},
			{Op: JAL, Rd: T2, Label: "foo"},
			{Op: ADDI, Rd: T1, Rs1: ZERO, Imm: 2},
			{Op: ADDI, Rd: T2, Rs1: ZERO, Imm: 3},
		},
		Labels: map[string]int32{"foo": 12},
	}
	cycles, m := runM3(t, prog)
	assert(t, m.State().Reg(T0) == 1, "want t0=1, got %d", m.State().Reg(T0))
	assert(t, m.State().Reg(T1) == 0, "want t1=0 (squashed), got %d", m.State().Reg(T1))
	assert(t, m.State().Reg(T2) == 3, "want t2=3, got %d", m.State().Reg(T2))
	assert(t, cycles == 59, "want 59 cycles, got %d", cycles)
}

func TestPipeliningConditionalBranchTaken(t *testing.T) {
	// addi t0,zero,1 ; addi t1,zero,1 ; beq t0,t1,foo ; addi t1,zero,2 ; foo: addi t2,zero,3
	prog := &Program{
		Instructions: []Instruction{
			{Op: ADDI, Rd: T0, Rs1: ZERO, Imm: 1},
			{Op: ADDI, Rd: T1, Rs1: ZERO, Imm: 1},
			{Op: BEQ, Rs1: T0, Rs2: T1, Label: "foo"},
			{Op: ADDI, Rd: T1, Rs1: ZERO, Imm: 2},
			{Op: ADDI, Rd: T2, Rs1: ZERO, Imm: 3},
		},
		Labels: map[string]int32{"foo": 16},
	}
	cycles, m := runM3(t, prog)
	assert(t, m.State().Reg(T0) == 1, "want t0=1, got %d", m.State().Reg(T0))
	assert(t, m.State().Reg(T1) == 1, "want t1=1 (branch taken, squashed), got %d", m.State().Reg(T1))
	assert(t, m.State().Reg(T2) == 3, "want t2=3, got %d", m.State().Reg(T2))
	assert(t, cycles == 61, "want 61 cycles, got %d", cycles)
}

func TestPipeliningConditionalBranchNotTaken(t *testing.T) {
	// Same program, but t0 starts at 0 so the branch is not taken -- the
	// static not-taken prediction is correct and no flush occurs.
	prog := &Program{
		Instructions: []Instruction{
			{Op: ADDI, Rd: T0, Rs1: ZERO, Imm: 0},
			{Op: ADDI, Rd: T1, Rs1: ZERO, Imm: 1},
			{Op: BEQ, Rs1: T0, Rs2: T1, Label: "foo"},
			{Op: ADDI, Rd: T1, Rs1: ZERO, Imm: 2},
			{Op: ADDI, Rd: T2, Rs1: ZERO, Imm: 3},
		},
		Labels: map[string]int32{"foo": 16},
	}
	cycles, m := runM3(t, prog)
	assert(t, m.State().Reg(T0) == 0, "want t0=0, got %d", m.State().Reg(T0))
	assert(t, m.State().Reg(T1) == 2, "want t1=2 (branch not taken), got %d", m.State().Reg(T1))
	assert(t, m.State().Reg(T2) == 3, "want t2=3, got %d", m.State().Reg(T2))
	assert(t, cycles == 59, "want 59 cycles, got %d", cycles)
}

func TestM3ScoreboardStallsOnHazard(t *testing.T) {
	// addi t0,zero,1 ; add t1,t0,t0 -- the second instruction reads t0
	// while the first's write is still in flight, forcing execute to
	// stall rather than race ahead with a stale value.
	prog := &Program{
		Instructions: []Instruction{
			{Op: ADDI, Rd: T0, Rs1: ZERO, Imm: 1},
			{Op: ADD, Rd: T1, Rs1: T0, Rs2: T0},
		},
		Labels: map[string]int32{},
	}
	_, m := runM3(t, prog)
	assert(t, m.State().Reg(T1) == 2, "want t1=2, got %d", m.State().Reg(T1))
}
