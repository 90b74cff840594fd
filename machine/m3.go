package machine

import (
	"fmt"
	"io"
)

// Machine3 is the four-stage pipelined model: fetch, decode, execute and
// write-back connected by bounded one-slot buses, with an instruction
// cache, a static not-taken branch unit, and a write-register scoreboard
// enforcing read/write hazards.
type Machine3 struct {
	state *State

	fetch   *fetchUnit
	decode  decodeUnit
	execute *executeUnit
	write   writeUnit
	branch  branchUnit

	decodeBus  *bus[int32]
	executeBus *bus[Instruction]
	writeBus   *bus[executionResult]

	scoreboard *Scoreboard

	// Trace, if non-nil, receives one line per cycle with the cycle number
	// and the t0-t3 scratch registers; nil by default.
	Trace io.Writer
}

// NewMachine3 constructs an M3 pipeline over a memory of the given size.
func NewMachine3(memoryBytes int) *Machine3 {
	return &Machine3{
		state:      NewState(memoryBytes),
		fetch:      newFetchUnit(),
		decodeBus:  newBus[int32](),
		executeBus: newBus[Instruction](),
		writeBus:   newBus[executionResult](),
		execute:    &executeUnit{},
		scoreboard: newScoreboard(),
	}
}

// State exposes the machine's register file, memory and pc for test setup
// and inspection.
func (m *Machine3) State() *State { return m.state }

// Run executes prog to completion and returns the accumulated cycle
// count.
func (m *Machine3) Run(prog *Program) (int64, error) {
	n := int32(prog.Len())
	var cycles int64

	for {
		cycles++
		m.log(cycles)

		m.fetch.cycle(n, m.decodeBus)

		m.decodeBus.Connect()
		m.decode.cycle(prog, m.decodeBus, m.executeBus)

		m.executeBus.Connect()
		m.branch.assert(m.state.PC, m.executeBus)

		if err := m.execute.cycle(m.state, prog, m.executeBus, m.writeBus, m.scoreboard); err != nil {
			return cycles, err
		}

		flush := m.branch.shouldFlush(m.state.PC, m.writeBus)

		m.writeBus.Connect()
		m.write.cycle(m.state, m.writeBus, m.scoreboard)

		if flush {
			if m.writeBus.ContainsInBuffer() {
				cycles++
				m.writeBus.Connect()
				m.write.cycle(m.state, m.writeBus, m.scoreboard)
			}
			m.flushPipeline(m.state.PC)
		}

		if m.isComplete() {
			break
		}
	}

	return cycles, nil
}

func (m *Machine3) flushPipeline(pc int32) {
	m.fetch.flush(pc)
	m.execute.flush()
	m.decodeBus.Flush()
	m.executeBus.Flush()
	m.writeBus.Flush()
}

func (m *Machine3) isComplete() bool {
	return m.fetch.isEmpty() &&
		m.decode.isEmpty() &&
		m.execute.isEmpty() &&
		m.write.isEmpty() &&
		m.decodeBus.IsEmpty() &&
		m.executeBus.IsEmpty() &&
		m.writeBus.IsEmpty()
}

func (m *Machine3) log(cycle int64) {
	if m.Trace == nil {
		return
	}
	fmt.Fprintf(m.Trace, "cycle=%d t0=%d t1=%d t2=%d t3=%d\n",
		cycle,
		m.state.Registers.Get(T0), m.state.Registers.Get(T1),
		m.state.Registers.Get(T2), m.state.Registers.Get(T3))
}
