package machine

// Program is an assembled, read-only unit of work: an ordered instruction
// sequence plus the label -> byte-address map resolved by the parser.
// Instruction i lives at byte address 4*i.
type Program struct {
	Instructions []Instruction
	Labels       map[string]int32
}

// Len returns the instruction count.
func (p *Program) Len() int {
	return len(p.Instructions)
}
