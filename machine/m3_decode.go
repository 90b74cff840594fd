package machine

// decodeUnit is a stateless single-cycle passthrough: it looks the fetched
// index up in the program and forwards the instruction itself. Since it
// never holds state across cycles it is always considered empty.
type decodeUnit struct{}

func (decodeUnit) cycle(prog *Program, in *bus[int32], out *bus[Instruction]) {
	if !in.ContainsInQueue() || out.IsFull() {
		return
	}
	idx := in.Get()
	out.Add(prog.Instructions[idx])
}

func (decodeUnit) isEmpty() bool { return true }
