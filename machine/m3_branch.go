package machine

// branchUnit implements the static not-taken predictor: every conditional
// branch is assumed not to jump, so fetch simply continues sequentially.
// A misprediction is detected only after the branch actually executes.
type branchUnit struct {
	expectedSequential *int32
	jump               bool
}

// assert peeks the head of the decode->execute bus (about to enter
// execute) and records what a correct not-taken prediction requires.
func (b *branchUnit) assert(pc int32, in *bus[Instruction]) {
	if !in.ContainsInQueue() {
		return
	}
	instr := in.Peek()
	if IsJump(instr.Op) {
		b.jump = true
	} else if IsBranch(instr.Op) {
		expected := pc + 4
		b.expectedSequential = &expected
	}
}

// shouldFlush is evaluated only in cycles where execute just wrote a new
// entry onto the write bus. It clears its own state either way.
func (b *branchUnit) shouldFlush(pc int32, writeBus *bus[executionResult]) bool {
	if !writeBus.ContainsInEntry() {
		return false
	}
	mispredictedBranch := b.expectedSequential != nil && *b.expectedSequential != pc
	flush := mispredictedBranch || b.jump
	b.expectedSequential = nil
	b.jump = false
	return flush
}
