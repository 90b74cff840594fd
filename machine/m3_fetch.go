package machine

// fetchUnit owns its own running pc, independent of the execute stage's
// copy in State; the two are reconciled only by a flush.
type fetchUnit struct {
	pc         int32
	cache      icacheLine
	remaining  int64
	processing bool
	complete   bool
}

func newFetchUnit() *fetchUnit {
	return &fetchUnit{cache: newICacheLine(lineSizeM3)}
}

// cycle advances fetch by one tick, enqueuing an instruction index onto
// out when a fetch completes and the bus has room.
func (f *fetchUnit) cycle(n int32, out *bus[int32]) {
	if f.complete {
		return
	}

	if !f.processing {
		f.processing = true
		if f.cache.hit(f.pc) {
			f.remaining = cyclesL1Hit
		} else {
			f.remaining = cyclesL1Miss
			f.cache.refill(f.pc)
		}
	}

	f.remaining--
	if f.remaining != 0 {
		return
	}

	if out.IsFull() {
		f.remaining = 1
		return
	}

	f.processing = false
	current := f.pc
	f.pc += 4
	if f.pc/4 >= n {
		f.complete = true
	}
	out.Add(current / 4)
}

// flush resets fetch to pc after a misprediction.
func (f *fetchUnit) flush(pc int32) {
	f.processing = false
	f.complete = false
	f.pc = pc
}

func (f *fetchUnit) isEmpty() bool {
	return f.complete
}
