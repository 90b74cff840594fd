package machine

import (
	"fmt"
	"testing"
)

func assert(t *testing.T, cond bool, format string, args ...any) {
	t.Helper()
	if !cond {
		t.Fatalf(fmt.Sprintf("%v %s", cond, format), args...)
	}
}

// oneInstr builds a single-instruction program with an empty label table.
func oneInstr(instr Instruction) *Program {
	return &Program{Instructions: []Instruction{instr}, Labels: map[string]int32{}}
}
